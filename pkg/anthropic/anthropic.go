package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

type Config struct {
	BaseURL     string        `envconfig:"BASE_URL" split_words:"true"`
	APIKey      string        `envconfig:"API_KEY" split_words:"true"`
	Model       string        `envconfig:"MODEL" split_words:"true" default:"claude-3-7-sonnet-20250219"`
	MaxTokens   int64         `envconfig:"MAX_TOKENS" split_words:"true" default:"2000"`
	Temperature float64       `envconfig:"TEMPERATURE" split_words:"true" default:"0.1"`
	Timeout     time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

// ParamsLookup resolves the parameter table of a tool by name. Tools it does
// not know are advertised with an empty object schema.
type ParamsLookup func(tool string) map[string]*schema.ParameterInfo

type Option func(*ChatModel)

func WithParams(lookup ParamsLookup) Option {
	return func(m *ChatModel) {
		m.params = lookup
	}
}

// WithRequestOptions appends raw SDK request options, e.g. a custom HTTP client.
func WithRequestOptions(opts ...option.RequestOption) Option {
	return func(m *ChatModel) {
		m.requestOpts = append(m.requestOpts, opts...)
	}
}

// ChatModel adapts the Anthropic Messages API to eino's tool-calling chat model.
type ChatModel struct {
	client      *sdk.Client
	cfg         Config
	params      ParamsLookup
	requestOpts []option.RequestOption
	tools       []sdk.ToolUnionUnionParam
}

var _ model.ToolCallingChatModel = (*ChatModel)(nil)

func New(cfg Config, opts ...Option) (*ChatModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("anthropic: api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("anthropic: model is required")
	}

	m := &ChatModel{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		option.WithMaxRetries(0),
	}
	if v := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); v != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(v+"/"))
	}
	if cfg.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(cfg.Timeout))
	}
	reqOpts = append(reqOpts, m.requestOpts...)

	m.client = sdk.NewClient(reqOpts...)
	return m, nil
}

func (m *ChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	converted := make([]sdk.ToolUnionUnionParam, 0, len(tools))
	for _, t := range tools {
		if t == nil || t.Name == "" {
			return nil, errors.New("anthropic: tool without name")
		}
		var params map[string]*schema.ParameterInfo
		if m.params != nil {
			params = m.params(t.Name)
		}
		converted = append(converted, sdk.ToolParam{
			Name:        sdk.F(t.Name),
			Description: sdk.F(t.Desc),
			InputSchema: sdk.F[interface{}](InputSchema(params)),
		})
	}

	clone := *m
	clone.tools = converted
	return &clone, nil
}

func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	params, err := m.buildParams(input, opts...)
	if err != nil {
		return nil, err
	}

	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic: create message: %w", err)
	}
	return fromResponse(resp)
}

// Stream is not supported by the Messages adapter; it yields the full reply
// as a single chunk.
func (m *ChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (m *ChatModel) buildParams(input []*schema.Message, opts ...model.Option) (sdk.MessageNewParams, error) {
	temperature := float32(m.cfg.Temperature)
	maxTokens := int(m.cfg.MaxTokens)
	modelName := m.cfg.Model
	common := model.GetCommonOptions(&model.Options{
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
		Model:       &modelName,
	}, opts...)

	system, messages, err := toMessageParams(input)
	if err != nil {
		return sdk.MessageNewParams{}, err
	}

	params := sdk.MessageNewParams{
		Model:     sdk.F(sdk.Model(*common.Model)),
		MaxTokens: sdk.Int(int64(*common.MaxTokens)),
		Messages:  sdk.F(messages),
	}
	if common.Temperature != nil {
		params.Temperature = sdk.Float(float64(*common.Temperature))
	}
	if system != "" {
		params.System = sdk.F([]sdk.TextBlockParam{sdk.NewTextBlock(system)})
	}
	if len(m.tools) > 0 {
		params.Tools = sdk.F(m.tools)
	}
	return params, nil
}
