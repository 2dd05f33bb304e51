package orchestratornode

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
	statex "github.com/tanpawarit/simrs-agent/agent/state"
)

const FallbackReply = "The system has processed your request."

func FinalizeReply(in *GraphState, session *statex.Session) (GraphOutput, error) {
	if in == nil || session == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state or session is nil", contractx.ErrValidation)
	}

	reply := ""
	if in.Pending != nil {
		reply = strings.TrimSpace(in.Pending.Content)
	}
	if reply == "" {
		reply = FallbackReply
	}

	final := in.Pending
	if final == nil || strings.TrimSpace(final.Content) == "" {
		final = schema.AssistantMessage(reply, nil)
	}
	session.AppendHistory(final)
	session.AppendAssistant(reply)
	return GraphOutput{
		Reply:     reply,
		ToolCalls: in.ToolCalls,
		Rounds:    in.Round,
	}, nil
}
