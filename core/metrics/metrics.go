package metrics

import (
	"time"

	"github.com/kilianp07/homeload/core/model"
)

// AllocationEvent describes one finished allocation plan.
type AllocationEvent struct {
	PlanID    string
	Strategy  model.Strategy
	Records   []model.Allocation
	Resources int
	Slots     int // slots or series samples offered to the allocator
	Duration  time.Duration
	Time      time.Time
}

// Unscheduled returns the capacity reported by placeholder records.
func (e AllocationEvent) Unscheduled() float64 {
	total := 0.0
	for _, r := range e.Records {
		if r.IsPlaceholder() {
			total += r.Amount
		}
	}
	return total
}

// MetricsSink records allocation plans for observability purposes.
type MetricsSink interface {
	RecordAllocation(ev AllocationEvent) error
}

// FailureEvent captures an allocation run that returned an error.
type FailureEvent struct {
	Strategy model.Strategy
	Reason   string
	Time     time.Time
}

// FailureRecorder is implemented by sinks able to record failed runs.
type FailureRecorder interface {
	RecordFailure(ev FailureEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordAllocation(AllocationEvent) error { return nil }
func (NopSink) RecordFailure(FailureEvent) error       { return nil }
