package llm

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
)

var statusCodePattern = regexp.MustCompile(`status code: (\d{3})`)

// Classify maps a provider failure onto the contract error classes.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, contractx.ErrConfiguration) ||
		errors.Is(err, contractx.ErrRequest) ||
		errors.Is(err, contractx.ErrTransport) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", contractx.ErrTransport, err)
	}

	switch code := statusCode(err); {
	case code == 401 || code == 403:
		return fmt.Errorf("%w: %w", contractx.ErrConfiguration, err)
	case code == 400 || code == 404 || code == 422:
		return fmt.Errorf("%w: %w", contractx.ErrRequest, err)
	default:
		return fmt.Errorf("%w: %w", contractx.ErrTransport, err)
	}
}

func statusCode(err error) int {
	var apiErr *anthropicsdk.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	m := statusCodePattern.FindStringSubmatch(err.Error())
	if len(m) != 2 {
		return 0
	}
	code, _ := strconv.Atoi(m[1])
	return code
}

// Classified wraps m so that every Generate and Stream failure carries a
// contract error class.
func Classified(m model.ToolCallingChatModel) model.ToolCallingChatModel {
	if m == nil {
		return nil
	}
	if c, ok := m.(*classifiedModel); ok {
		return c
	}
	return &classifiedModel{inner: m}
}

type classifiedModel struct {
	inner model.ToolCallingChatModel
}

func (c *classifiedModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	out, err := c.inner.Generate(ctx, input, opts...)
	if err != nil {
		return nil, Classify(err)
	}
	return out, nil
}

func (c *classifiedModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	out, err := c.inner.Stream(ctx, input, opts...)
	if err != nil {
		return nil, Classify(err)
	}
	return out, nil
}

func (c *classifiedModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	bound, err := c.inner.WithTools(tools)
	if err != nil {
		return nil, Classify(err)
	}
	return &classifiedModel{inner: bound}, nil
}

// Unconfigured returns a model whose every call fails with ErrConfiguration.
func Unconfigured(reason string) model.ToolCallingChatModel {
	return unconfiguredModel{reason: reason}
}

type unconfiguredModel struct {
	reason string
}

func (u unconfiguredModel) err() error {
	return fmt.Errorf("%w: %s", contractx.ErrConfiguration, u.reason)
}

func (u unconfiguredModel) Generate(context.Context, []*schema.Message, ...model.Option) (*schema.Message, error) {
	return nil, u.err()
}

func (u unconfiguredModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, u.err()
}

func (u unconfiguredModel) WithTools([]*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return u, nil
}
