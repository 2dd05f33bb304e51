package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	orchestratorx "github.com/tanpawarit/simrs-agent/agent/agents/orchestrator"
	apix "github.com/tanpawarit/simrs-agent/agent/api"
	llmx "github.com/tanpawarit/simrs-agent/agent/llm"
	promptx "github.com/tanpawarit/simrs-agent/agent/prompt"
	recordsx "github.com/tanpawarit/simrs-agent/agent/records"
	statex "github.com/tanpawarit/simrs-agent/agent/state"
	toolx "github.com/tanpawarit/simrs-agent/agent/tool"
	anthropicx "github.com/tanpawarit/simrs-agent/pkg/anthropic"
	configx "github.com/tanpawarit/simrs-agent/pkg/config"
	_ "github.com/tanpawarit/simrs-agent/pkg/logger/autoload"
	metricsx "github.com/tanpawarit/simrs-agent/pkg/metrics"
	openrouterx "github.com/tanpawarit/simrs-agent/pkg/openrouter"
)

const shutdownTimeout = 10 * time.Second

func main() {
	apiCfg := configx.MustNew[apix.Config]("APP")
	toolCfg := configx.MustNew[toolx.Config]("APP")
	turnCfg := configx.MustNew[orchestratorx.Config]("APP")

	llmCfg := configx.MustNew[llmx.Config]("LLM")
	llmCfg.OpenRouter = *configx.MustNew[openrouterx.Config]("OPENROUTER")
	llmCfg.Anthropic = *configx.MustNew[anthropicx.Config]("ANTHROPIC")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chat, err := llmx.NewChatModel(ctx, *llmCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize chat model")
	}

	metrics := metricsx.New()
	store := recordsx.New(recordsx.DefaultSeed())
	catalog, executor := toolx.Build(store, *toolCfg, toolx.WithMetrics(metrics))
	prompts := promptx.LoadPromptSet()
	if err := prompts.Validate(); err != nil {
		log.Fatal().Err(err).Msg("failed to load prompts")
	}
	session := statex.NewSession(prompts.SystemFor(time.Now()))

	orchestrator, err := orchestratorx.New(chat, catalog, executor, session, *turnCfg, orchestratorx.WithMetrics(metrics))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build orchestrator")
	}

	server := &http.Server{
		Addr: apiCfg.Addr,
		Handler: apix.NewRouter(*apiCfg, apix.Deps{
			Chat:    orchestrator,
			Session: session,
			Store:   store,
			Catalog: catalog,
			Metrics: metrics.Handler(),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("provider", llmCfg.Provider).Msg("hospital assistant listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
