package orchestratornode

import (
	"fmt"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
	statex "github.com/tanpawarit/simrs-agent/agent/state"
)

func AppendUser(in *GraphState, session *statex.Session) (*GraphState, error) {
	if in == nil || session == nil {
		return nil, fmt.Errorf("%w: graph state or session is nil", contractx.ErrValidation)
	}

	session.AppendUser(in.Text)
	session.AppendHistory(schema.UserMessage(in.Text))
	return in, nil
}
