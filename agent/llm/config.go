package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
	tool "github.com/tanpawarit/simrs-agent/agent/tool"
	anthropicx "github.com/tanpawarit/simrs-agent/pkg/anthropic"
	openrouterx "github.com/tanpawarit/simrs-agent/pkg/openrouter"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
)

// Config selects the model provider. Provider-specific settings are loaded
// from their own prefixes (OPENROUTER_*, ANTHROPIC_*).
type Config struct {
	Provider string `envconfig:"PROVIDER" split_words:"true" default:"openrouter"`

	OpenRouter openrouterx.Config `ignored:"true"`
	Anthropic  anthropicx.Config  `ignored:"true"`
}

func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Provider)) {
	case ProviderOpenRouter, ProviderAnthropic:
		return nil
	default:
		return fmt.Errorf("%w: unknown llm provider %q", contractx.ErrValidation, c.Provider)
	}
}

func (c Config) apiKey() string {
	if strings.EqualFold(strings.TrimSpace(c.Provider), ProviderAnthropic) {
		return strings.TrimSpace(c.Anthropic.APIKey)
	}
	return strings.TrimSpace(c.OpenRouter.APIKey)
}

// NewChatModel builds the tool-calling model for the configured provider.
// A missing API key is not fatal: the returned model fails every call with
// ErrConfiguration so the service can still start and report the problem.
func NewChatModel(ctx context.Context, cfg Config) (model.ToolCallingChatModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.apiKey() == "" {
		log.Warn().Str("provider", provider).Msg("model api key is missing, chat requests will fail")
		return Unconfigured(fmt.Sprintf("%s api key is not set", provider)), nil
	}

	var (
		m   model.ToolCallingChatModel
		err error
	)
	switch provider {
	case ProviderAnthropic:
		m, err = anthropicx.New(cfg.Anthropic, anthropicx.WithParams(tool.Parameters))
	default:
		m, err = cfg.OpenRouter.New(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrConfiguration, err)
	}

	log.Info().Str("provider", provider).Msg("chat model ready")
	return Classified(m), nil
}
