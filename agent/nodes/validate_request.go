package orchestratornode

import (
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
)

const (
	NodeValidateRequest = "validate_request"
	NodeAppendUser      = "append_user"
	NodeCallModel       = "call_model"
	NodeExecuteTools    = "execute_tools"
	NodeFinalizeReply   = "finalize_reply"
)

var ErrInvalidMessage = contractx.ErrEmptyMessage

// ToolCallObserver is notified before each tool runs.
type ToolCallObserver func(event contractx.ToolCallEvent)

type GraphInput struct {
	Text     string
	Observer ToolCallObserver
}

type GraphOutput struct {
	Reply     string
	ToolCalls []contractx.ToolCallEvent
	Rounds    int
}

type GraphState struct {
	Text     string
	Now      time.Time
	Observer ToolCallObserver

	// Round counts model invocations in this turn; ToolRounds counts the
	// ones that asked for tools.
	Round      int
	ToolRounds int

	// Pending is the latest model output, consumed by the next node.
	Pending   *schema.Message
	ToolCalls []contractx.ToolCallEvent
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: %w", contractx.ErrValidation, ErrInvalidMessage)
	}

	return &GraphState{
		Text:     text,
		Now:      nowFn().UTC(),
		Observer: in.Observer,
	}, nil
}
