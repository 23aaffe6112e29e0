package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder_ObserveNoticeIncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObserveNotice("Testville", "ERROR")
	r.ObserveNotice("Testville", "ERROR")
	r.ObserveNotice("Testville", "WARNING")

	assert.Equal(t, float64(2), testutil.ToFloat64(r.notices.WithLabelValues("Testville", "ERROR")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.notices.WithLabelValues("Testville", "WARNING")))
}

func TestRecorder_TimerRecordsDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	done := r.Timer("Testville")
	done()

	assert.Equal(t, float64(1), testutil.ToFloat64(r.cities))
}
