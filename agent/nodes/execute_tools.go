package orchestratornode

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
	statex "github.com/tanpawarit/simrs-agent/agent/state"
	toolx "github.com/tanpawarit/simrs-agent/agent/tool"
)

// ExecuteTools runs the pending tool calls in request order. Each call gets a
// transcript event and a tool response carrying its call id. The model reply
// and all of its batch are committed to history in one append.
func ExecuteTools(
	ctx context.Context,
	in *GraphState,
	tools contractx.ToolGateway,
	session *statex.Session,
) (*GraphState, error) {
	if in == nil || in.Pending == nil || session == nil {
		return nil, fmt.Errorf("%w: no pending tool calls", contractx.ErrValidation)
	}

	calls := in.Pending.ToolCalls
	batch := make([]*schema.Message, 0, len(calls)+1)
	batch = append(batch, in.Pending)
	for _, call := range calls {
		name := call.Function.Name
		args, err := toolx.DecodeArgs(call.Function.Arguments)
		if err != nil {
			log.Warn().Err(err).Str("tool", name).Str("call_id", call.ID).Msg("malformed tool arguments, using empty args")
		}

		event := contractx.ToolCallEvent{Tool: name, Args: args}
		if in.Observer != nil {
			in.Observer(event)
		}
		in.ToolCalls = append(in.ToolCalls, event)

		res := tools.Execute(ctx, contractx.ToolRequest{CallID: call.ID, Tool: name, Args: args})
		session.AppendToolEvent(statex.ToolCall{
			CallID: call.ID,
			Name:   name,
			Args:   args,
			Result: res.Result,
		})

		content, err := json.Marshal(map[string]any{"result": res.Result})
		if err != nil {
			log.Error().Err(err).Str("tool", name).Msg("encode tool result")
			content = []byte(`{"result":{"status":"error","message":"tool result could not be encoded"}}`)
		}
		batch = append(batch, &schema.Message{
			Role:       schema.Tool,
			Content:    string(content),
			ToolCallID: call.ID,
		})
	}

	session.AppendHistory(batch...)
	in.Pending = nil
	return in, nil
}
