package metricsx

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilRecorderIsNoop(t *testing.T) {
	t.Parallel()

	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveTool("provide_medical_info", "success")
		r.ObserveModelRound()
		r.ObserveTurn("", time.Second)
	})
	assert.Nil(t, r.Registry())
	assert.NotNil(t, r.Handler())
}

func TestRecorderCounts(t *testing.T) {
	t.Parallel()

	r := New()
	r.ObserveTool("manage_patient_data", "success")
	r.ObserveTool("manage_patient_data", "success")
	r.ObserveTool("manage_patient_data", "error")
	r.ObserveModelRound()
	r.ObserveTurn("", 2*time.Second)
	r.ObserveTurn("transport", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.toolCalls.WithLabelValues("manage_patient_data", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.toolCalls.WithLabelValues("manage_patient_data", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.modelRounds))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.turns.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.turns.WithLabelValues("transport")))
}
