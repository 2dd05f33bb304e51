package orchestratornode

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
	llmx "github.com/tanpawarit/simrs-agent/agent/llm"
	statex "github.com/tanpawarit/simrs-agent/agent/state"
	metricsx "github.com/tanpawarit/simrs-agent/pkg/metrics"
)

type RoundPolicy struct {
	// MaxRounds bounds how many model replies in one turn may request tools.
	MaxRounds int
	// Timeout bounds a single model invocation. Zero disables it.
	Timeout time.Duration
}

// CallModel sends the session history to the model and keeps its reply in
// Pending. The reply reaches history only together with its tool responses
// (ExecuteTools) or as the final answer (FinalizeReply), so a turn stopped
// between nodes never leaves unanswered tool calls behind.
func CallModel(
	ctx context.Context,
	in *GraphState,
	chat model.BaseChatModel,
	session *statex.Session,
	policy RoundPolicy,
	metrics *metricsx.Recorder,
) (*GraphState, error) {
	if in == nil || session == nil {
		return nil, fmt.Errorf("%w: graph state or session is nil", contractx.ErrValidation)
	}

	in.Round++
	metrics.ObserveModelRound()

	roundCtx := ctx
	if policy.Timeout > 0 {
		var cancel context.CancelFunc
		roundCtx, cancel = context.WithTimeout(ctx, policy.Timeout)
		defer cancel()
	}

	msg, err := chat.Generate(roundCtx, session.History())
	if err != nil {
		log.Error().Err(err).Int("round", in.Round).Msg("model invocation failed")
		return nil, llmx.Classify(fmt.Errorf("%w: %w", contractx.ErrModelInvoke, err))
	}
	if msg == nil {
		return nil, fmt.Errorf("%w: model returned no message", contractx.ErrSchemaViolation)
	}

	if len(msg.ToolCalls) > 0 {
		if in.ToolRounds >= policy.MaxRounds {
			log.Warn().Int("round", in.Round).Int("max_rounds", policy.MaxRounds).Msg("tool round limit reached")
			return nil, fmt.Errorf("%w: model still requested %d tool call(s) after %d round(s)",
				contractx.ErrRoundLimit, len(msg.ToolCalls), in.ToolRounds)
		}
		in.ToolRounds++
	}

	log.Debug().
		Int("round", in.Round).
		Int("tool_calls", len(msg.ToolCalls)).
		Msg("model replied")

	in.Pending = msg
	return in, nil
}

// RouteAfterModel picks the next node from the latest model reply.
func RouteAfterModel(_ context.Context, in *GraphState) (string, error) {
	if in == nil || in.Pending == nil {
		return "", fmt.Errorf("%w: no model reply to route", contractx.ErrValidation)
	}
	if len(in.Pending.ToolCalls) > 0 {
		return NodeExecuteTools, nil
	}
	return NodeFinalizeReply, nil
}
