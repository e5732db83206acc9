// Package metrics exposes Prometheus instrumentation for dataset updates.
package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// OutcomeLabel classifies a finished update run.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder registers and updates dataset refresh metrics.
type Recorder struct {
	once           sync.Once
	updateDuration prom.Histogram
	updateOutcome  *prom.CounterVec
	sourceResults  *prom.CounterVec
	fundCount      *prom.GaugeVec
	lastUpdate     prom.Gauge
}

// NewRecorder constructs and registers metrics on the given registry.
func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	r := &Recorder{}
	r.once.Do(func() {
		r.updateDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "indexfonder",
			Name:      "update_duration_seconds",
			Help:      "Total duration of dataset update runs",
			Buckets:   prom.DefBuckets,
		})
		r.updateOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "indexfonder",
			Name:      "update_outcomes_total",
			Help:      "Update run outcomes by final status",
		}, []string{"outcome"})
		r.sourceResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "indexfonder",
			Name:      "source_results_total",
			Help:      "Per-source fetch results",
		}, []string{"source", "result"})
		r.fundCount = prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "indexfonder",
			Name:      "fund_count",
			Help:      "Funds in the most recent dataset by group and share class",
		}, []string{"group", "class"})
		r.lastUpdate = prom.NewGauge(prom.GaugeOpts{
			Namespace: "indexfonder",
			Name:      "last_update_timestamp_seconds",
			Help:      "Unix time of the most recent successful update",
		})
		reg.MustRegister(r.updateDuration, r.updateOutcome, r.sourceResults, r.fundCount, r.lastUpdate)
	})
	return r
}

func (r *Recorder) ObserveUpdateDuration(d time.Duration) {
	if r == nil || r.updateDuration == nil {
		return
	}
	r.updateDuration.Observe(d.Seconds())
}

func (r *Recorder) IncOutcome(outcome OutcomeLabel) {
	if r == nil || r.updateOutcome == nil {
		return
	}
	r.updateOutcome.WithLabelValues(string(outcome)).Inc()
}

func (r *Recorder) IncSourceResult(source string, success bool) {
	if r == nil || r.sourceResults == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	r.sourceResults.WithLabelValues(source, res).Inc()
}

func (r *Recorder) SetFundCount(group, class string, n int) {
	if r == nil || r.fundCount == nil {
		return
	}
	r.fundCount.WithLabelValues(group, class).Set(float64(n))
}

func (r *Recorder) SetLastUpdate(t time.Time) {
	if r == nil || r.lastUpdate == nil {
		return
	}
	r.lastUpdate.Set(float64(t.Unix()))
}
