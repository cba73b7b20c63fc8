package resolver

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/maraichr/cdm/internal/entity"
	"github.com/maraichr/cdm/internal/merge"
	"github.com/maraichr/cdm/internal/records"
)

// Metrics holds the resolver's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	builds      *prometheus.CounterVec
	duration    prometheus.Histogram
	entities    *prometheus.GaugeVec
	conflicts   *prometheus.CounterVec
	filesLoaded prometheus.Counter
	cacheHits   prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cdm",
			Name:      "builds_total",
			Help:      "Completed builds by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cdm",
			Name:      "build_duration_seconds",
			Help:      "Wall time of library and project resolution.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "cdm",
			Name:      "entities",
			Help:      "Entities per kind in the last successful build.",
		}, []string{"kind"}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cdm",
			Name:      "merge_conflicts_total",
			Help:      "Redefinitions that differed and were passed to the conflict policy.",
		}, []string{"kind"}),
		filesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cdm",
			Name:      "files_loaded_total",
			Help:      "Data files read from a project source.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cdm",
			Name:      "decode_cache_hits_total",
			Help:      "Data files whose decoded form came from the cache.",
		}),
	}
	reg.MustRegister(m.builds, m.duration, m.entities, m.conflicts, m.filesLoaded, m.cacheHits)
	return m
}

// ObserveLoad records one loader pass.
func (m *Metrics) ObserveLoad(stats records.LoadStats) {
	if m == nil {
		return
	}
	m.filesLoaded.Add(float64(stats.Files))
	m.cacheHits.Add(float64(stats.CacheHits))
}

func (m *Metrics) countConflicts(p merge.Policy) merge.Policy {
	if m == nil {
		return p
	}
	return merge.Counting(p, func(c merge.Conflict) {
		m.conflicts.WithLabelValues(string(c.Kind)).Inc()
	})
}

func (m *Metrics) observeBuild(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.duration.Observe(d.Seconds())
	m.builds.WithLabelValues(Outcome(err)).Inc()
}

func (m *Metrics) observeResult(r *Result) {
	if m == nil {
		return
	}
	for k, n := range r.Library.Counts() {
		m.entities.WithLabelValues(string(k)).Set(float64(n))
	}
	for k, n := range r.Project.Counts() {
		m.entities.WithLabelValues(string(k)).Set(float64(n))
	}
}

// Outcome classifies a build error into a short label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, entity.ErrNoDefinitionFound):
		return "no_definition_found"
	case errors.Is(err, entity.ErrDefinitionProcessing):
		return "definition_processing"
	case errors.Is(err, entity.ErrNoContainedDefinitionFound):
		return "no_contained_definition_found"
	case errors.Is(err, entity.ErrDataMerge):
		return "data_merge"
	case errors.Is(err, merge.ErrUndecidedField):
		return "undecided_field"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
