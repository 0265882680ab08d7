package metrics

import (
	coremetrics "github.com/kilianp07/homeload/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records allocation plans in Prometheus metrics.
type PromSink struct {
	records     *prometheus.CounterVec
	runs        *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	unscheduled *prometheus.GaugeVec
}

// NewPromSink registers allocation metrics on the default Prometheus registerer.
// The HTTP endpoint is started separately with StartPromServer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	records := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "allocation_records_total",
		Help: "Total number of allocation records produced",
	}, []string{"strategy", "kind"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "allocation_runs_total",
		Help: "Total number of allocation runs by outcome",
	}, []string{"strategy", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "allocation_duration_seconds",
		Help:    "Time spent computing an allocation plan",
		Buckets: prometheus.DefBuckets,
	}, []string{"strategy"})
	unscheduled := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "allocation_unscheduled_capacity",
		Help: "Capacity left unused by the last plan",
	}, []string{"strategy"})

	var err error
	if records, err = register(reg, records); err != nil {
		return nil, err
	}
	if runs, err = register(reg, runs); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if unscheduled, err = register(reg, unscheduled); err != nil {
		return nil, err
	}
	return &PromSink{records: records, runs: runs, duration: duration, unscheduled: unscheduled}, nil
}

// register adds c to reg, reusing an already registered collector of the same shape.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordAllocation counts the records of the plan and observes its duration.
func (s *PromSink) RecordAllocation(ev coremetrics.AllocationEvent) error {
	strategy := ev.Strategy.String()
	for _, r := range ev.Records {
		s.records.WithLabelValues(strategy, r.Kind.String()).Inc()
	}
	s.runs.WithLabelValues(strategy, "success").Inc()
	s.duration.WithLabelValues(strategy).Observe(ev.Duration.Seconds())
	s.unscheduled.WithLabelValues(strategy).Set(ev.Unscheduled())
	return nil
}

// RecordFailure counts a failed run.
func (s *PromSink) RecordFailure(ev coremetrics.FailureEvent) error {
	s.runs.WithLabelValues(ev.Strategy.String(), "error").Inc()
	return nil
}
