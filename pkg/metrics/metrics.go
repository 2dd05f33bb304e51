package metricsx

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "simrs_agent"

// Recorder owns a private registry. A nil *Recorder is valid and records
// nothing, so components can be built without metrics in tests.
type Recorder struct {
	registry *prometheus.Registry

	toolCalls   *prometheus.CounterVec
	modelRounds prometheus.Counter
	turns       *prometheus.CounterVec
	turnLatency prometheus.Histogram
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Tool executions by tool name and result status.",
		}, []string{"tool", "status"}),
		modelRounds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_rounds_total",
			Help:      "Model invocations across all turns.",
		}),
		turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Completed turns by outcome.",
		}, []string{"outcome"}),
		turnLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_duration_seconds",
			Help:      "Wall time of a turn from user message to reply or failure.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.toolCalls,
		r.modelRounds,
		r.turns,
		r.turnLatency,
	)
	return r
}

func (r *Recorder) ObserveTool(tool, status string) {
	if r == nil {
		return
	}
	if tool == "" {
		tool = "unknown"
	}
	r.toolCalls.WithLabelValues(tool, status).Inc()
}

func (r *Recorder) ObserveModelRound() {
	if r == nil {
		return
	}
	r.modelRounds.Inc()
}

// ObserveTurn records a finished turn. outcome is "ok" or an error kind.
func (r *Recorder) ObserveTurn(outcome string, d time.Duration) {
	if r == nil {
		return
	}
	if outcome == "" {
		outcome = "ok"
	}
	r.turns.WithLabelValues(outcome).Inc()
	r.turnLatency.Observe(d.Seconds())
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
