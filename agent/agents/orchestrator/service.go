package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
	nodex "github.com/tanpawarit/simrs-agent/agent/nodes"
	statex "github.com/tanpawarit/simrs-agent/agent/state"
	metricsx "github.com/tanpawarit/simrs-agent/pkg/metrics"
)

var ErrInvalidMessage = nodex.ErrInvalidMessage

const (
	DefaultMaxRounds    = 8
	DefaultRoundTimeout = 60 * time.Second
)

type Config struct {
	MaxRounds    int           `envconfig:"MAX_ROUNDS" split_words:"true" default:"8"`
	RoundTimeout time.Duration `envconfig:"ROUND_TIMEOUT" split_words:"true" default:"60s"`
}

type Option func(*Orchestrator)

func WithMetrics(m *metricsx.Recorder) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// Orchestrator drives one conversation. Turns are serialized: a message
// arriving while another turn runs is rejected, not queued.
type Orchestrator struct {
	model   model.BaseChatModel
	tools   contractx.ToolGateway
	session *statex.Session
	policy  nodex.RoundPolicy
	metrics *metricsx.Recorder

	turn sync.Mutex

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	now func() time.Time
}

// New binds the tool catalog to chat once and compiles the turn graph.
func New(
	chat model.ToolCallingChatModel,
	catalog []*schema.ToolInfo,
	tools contractx.ToolGateway,
	session *statex.Session,
	cfg Config,
	opts ...Option,
) (*Orchestrator, error) {
	if chat == nil {
		return nil, errors.New("chat model is required")
	}
	if tools == nil {
		return nil, errors.New("tool gateway is required")
	}
	if session == nil {
		return nil, errors.New("session is required")
	}

	bound, err := chat.WithTools(catalog)
	if err != nil {
		return nil, fmt.Errorf("bind tools: %w", err)
	}

	maxRounds := cfg.MaxRounds
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	timeout := cfg.RoundTimeout
	if timeout <= 0 {
		timeout = DefaultRoundTimeout
	}

	o := &Orchestrator{
		model:   bound,
		tools:   tools,
		session: session,
		policy:  nodex.RoundPolicy{MaxRounds: maxRounds, Timeout: timeout},
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	graphRunner, err := o.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

type Reply struct {
	Text      string                    `json:"reply"`
	ToolCalls []contractx.ToolCallEvent `json:"tool_calls"`
}

type TurnOption func(*nodex.GraphInput)

// WithToolCallObserver registers a callback fired before each tool runs.
func WithToolCallObserver(fn func(contractx.ToolCallEvent)) TurnOption {
	return func(in *nodex.GraphInput) {
		in.Observer = fn
	}
}

// HandleMessage runs one full turn. Messages appended before a failure stay
// in the session; nothing is retried.
func (o *Orchestrator) HandleMessage(ctx context.Context, text string, opts ...TurnOption) (Reply, error) {
	if !o.turn.TryLock() {
		return Reply{}, contractx.ErrTurnInFlight
	}
	defer o.turn.Unlock()

	in := nodex.GraphInput{Text: text}
	for _, opt := range opts {
		if opt != nil {
			opt(&in)
		}
	}

	start := o.now()
	out, err := o.graphRunner.Invoke(ctx, in)
	o.metrics.ObserveTurn(contractx.ErrorKind(err), o.now().Sub(start))
	if err != nil {
		log.Error().Err(err).Str("kind", contractx.ErrorKind(err)).Msg("turn failed")
		return Reply{}, err
	}

	log.Info().Int("rounds", out.Rounds).Int("tool_calls", len(out.ToolCalls)).Msg("turn completed")
	return Reply{Text: out.Reply, ToolCalls: out.ToolCalls}, nil
}

func (o *Orchestrator) Session() *statex.Session {
	return o.session
}
