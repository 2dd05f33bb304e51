package anthropic

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/cloudwego/eino/schema"
	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
)

var ErrEmptyConversation = errors.New("anthropic: conversation has no user or assistant messages")

// toMessageParams splits eino history into the system prompt and the
// Messages API turns. Consecutive tool responses are folded into a single
// user turn, which is how the API expects a batch of tool results.
func toMessageParams(input []*schema.Message) (string, []sdk.MessageParam, error) {
	var (
		system   []string
		messages []sdk.MessageParam
		pending  []sdk.ContentBlockParamUnion
	)

	flushResults := func() {
		if len(pending) == 0 {
			return
		}
		messages = append(messages, sdk.MessageParam{
			Role:    sdk.F(sdk.MessageParamRoleUser),
			Content: sdk.F(pending),
		})
		pending = nil
	}

	for _, msg := range input {
		if msg == nil {
			continue
		}
		if msg.Role != schema.Tool {
			flushResults()
		}

		switch msg.Role {
		case schema.System:
			if s := strings.TrimSpace(msg.Content); s != "" {
				system = append(system, s)
			}
		case schema.User:
			messages = append(messages, sdk.NewUserMessage(sdk.NewTextBlock(msg.Content)))
		case schema.Assistant:
			blocks := make([]sdk.ContentBlockParamUnion, 0, len(msg.ToolCalls)+1)
			if strings.TrimSpace(msg.Content) != "" {
				blocks = append(blocks, sdk.NewTextBlock(msg.Content))
			}
			for _, call := range msg.ToolCalls {
				blocks = append(blocks, sdk.NewToolUseBlockParam(call.ID, call.Function.Name, rawArguments(call.Function.Arguments)))
			}
			if len(blocks) == 0 {
				continue
			}
			messages = append(messages, sdk.NewAssistantMessage(blocks...))
		case schema.Tool:
			pending = append(pending, sdk.NewToolResultBlock(msg.ToolCallID, msg.Content, false))
		default:
			return "", nil, fmt.Errorf("anthropic: unsupported role %q", msg.Role)
		}
	}
	flushResults()

	if len(messages) == 0 {
		return "", nil, ErrEmptyConversation
	}
	return strings.Join(system, "\n\n"), messages, nil
}

func rawArguments(args string) json.RawMessage {
	args = strings.TrimSpace(args)
	if args == "" || !json.Valid([]byte(args)) {
		return json.RawMessage("{}")
	}
	return json.RawMessage(args)
}

func fromResponse(resp *sdk.Message) (*schema.Message, error) {
	if resp == nil {
		return nil, errors.New("anthropic: empty response")
	}

	out := &schema.Message{Role: schema.Assistant}
	var text []string
	for _, block := range resp.Content {
		switch b := block.AsUnion().(type) {
		case sdk.TextBlock:
			text = append(text, b.Text)
		case sdk.ToolUseBlock:
			args := string(b.Input)
			if strings.TrimSpace(args) == "" {
				args = "{}"
			}
			out.ToolCalls = append(out.ToolCalls, schema.ToolCall{
				ID:   b.ID,
				Type: "function",
				Function: schema.FunctionCall{
					Name:      b.Name,
					Arguments: args,
				},
			})
		}
	}
	out.Content = strings.Join(text, "")
	out.ResponseMeta = &schema.ResponseMeta{
		FinishReason: string(resp.StopReason),
		Usage: &schema.TokenUsage{
			PromptTokens:     int(resp.Usage.InputTokens),
			CompletionTokens: int(resp.Usage.OutputTokens),
			TotalTokens:      int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
		},
	}
	return out, nil
}

// InputSchema renders an eino parameter table as the JSON Schema object the
// Messages API expects for tool input.
func InputSchema(params map[string]*schema.ParameterInfo) *jsonschema.Schema {
	root := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}
	for _, name := range slices.Sorted(maps.Keys(params)) {
		p := params[name]
		if p == nil {
			continue
		}
		root.Properties.Set(name, parameterSchema(p))
		if p.Required {
			root.Required = append(root.Required, name)
		}
	}
	return root
}

func parameterSchema(p *schema.ParameterInfo) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:        string(p.Type),
		Description: p.Desc,
	}
	for _, v := range p.Enum {
		s.Enum = append(s.Enum, v)
	}
	switch p.Type {
	case schema.Object:
		nested := InputSchema(p.SubParams)
		s.Properties = nested.Properties
		s.Required = nested.Required
	case schema.Array:
		if p.ElemInfo != nil {
			s.Items = parameterSchema(p.ElemInfo)
		}
	}
	return s
}
