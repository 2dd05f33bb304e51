package tool

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
	recordsx "github.com/tanpawarit/simrs-agent/agent/records"
	metricsx "github.com/tanpawarit/simrs-agent/pkg/metrics"
)

const (
	DefaultPatientID = "P001"

	msgInternalError = "An internal error occurred in the hospital subsystem."
)

type Config struct {
	// DefaultPatientID is used when a patient-scoped tool call names no
	// patient (check_status without patient_id, billing inquiries).
	DefaultPatientID string `envconfig:"DEFAULT_PATIENT_ID" split_words:"true" default:"P001"`
	// Latency simulates backend processing time before each tool returns.
	Latency time.Duration `envconfig:"TOOL_LATENCY" split_words:"true" default:"0s"`
}

type Option func(*Executor)

func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		if now != nil {
			e.now = now
		}
	}
}

func WithMetrics(m *metricsx.Recorder) Option {
	return func(e *Executor) {
		e.metrics = m
	}
}

type handler func(ctx context.Context, args map[string]any) contractx.Envelope

// Executor runs catalog tools against the record store.
type Executor struct {
	store            *recordsx.Store
	defaultPatientID string
	latency          time.Duration
	now              func() time.Time
	metrics          *metricsx.Recorder
	handlers         map[string]handler
}

var _ contractx.ToolGateway = (*Executor)(nil)

func NewExecutor(store *recordsx.Store, cfg Config, opts ...Option) *Executor {
	defaultPatientID := strings.TrimSpace(cfg.DefaultPatientID)
	if defaultPatientID == "" {
		defaultPatientID = DefaultPatientID
	}

	e := &Executor{
		store:            store,
		defaultPatientID: defaultPatientID,
		latency:          cfg.Latency,
		now:              time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	e.handlers = map[string]handler{
		ToolManagePatientData:      e.managePatientData,
		ToolScheduleMedicalService: e.scheduleMedicalService,
		ToolManageHospitalAdmin:    e.manageHospitalAdmin,
		ToolProvideMedicalInfo:     e.provideMedicalInfo,
	}
	return e
}

// Execute never fails: unknown tools, cancellations and internal faults are
// reported through the envelope status.
func (e *Executor) Execute(ctx context.Context, req contractx.ToolRequest) (res contractx.ToolResult) {
	res = contractx.ToolResult{CallID: req.CallID, Tool: req.Tool}
	logger := log.With().Str("tool", req.Tool).Str("call_id", req.CallID).Logger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("tool execution panicked")
			res.Result = errorEnvelope(msgInternalError)
		}
		e.metrics.ObserveTool(req.Tool, string(res.Result.Status))
		logger.Info().Str("status", string(res.Result.Status)).Msg("tool executed")
	}()

	logger.Debug().Interface("args", req.Args).Msg("executing tool")

	if err := e.wait(ctx); err != nil {
		res.Result = errorEnvelope(fmt.Sprintf("Tool execution was cancelled: %v", err))
		return res
	}

	h, ok := e.handlers[req.Tool]
	if !ok {
		res.Result = errorEnvelope(fmt.Sprintf("Unknown tool %q.", req.Tool))
		return res
	}

	args := req.Args
	if args == nil {
		args = map[string]any{}
	}
	res.Result = h(ctx, args)
	return res
}

func (e *Executor) wait(ctx context.Context) error {
	if e.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(e.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Executor) today() string {
	return e.now().Format("2006-01-02")
}

func successEnvelope(message string, data any) contractx.Envelope {
	return contractx.Envelope{Status: contractx.StatusSuccess, Message: message, Data: data}
}

func errorEnvelope(message string) contractx.Envelope {
	return contractx.Envelope{Status: contractx.StatusError, Message: message}
}

func infoEnvelope(message string) contractx.Envelope {
	return contractx.Envelope{Status: contractx.StatusInfo, Message: message}
}
