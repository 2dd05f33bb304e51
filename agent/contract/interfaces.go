package contract

import "context"

// ToolGateway runs one tool call. Implementations report failures inside the
// returned envelope instead of returning an error.
type ToolGateway interface {
	Execute(ctx context.Context, req ToolRequest) ToolResult
}
