package metrics

import (
	"errors"
	"testing"

	"github.com/kilianp07/homeload/core/model"
)

type recordSink struct {
	count    int
	failures int
	err      error
}

func (r *recordSink) RecordAllocation(AllocationEvent) error {
	r.count++
	return r.err
}

func (r *recordSink) RecordFailure(FailureEvent) error {
	r.failures++
	return nil
}

type allocationOnly struct{ count int }

func (a *allocationOnly) RecordAllocation(AllocationEvent) error {
	a.count++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	plain := &allocationOnly{}
	m := NewMultiSink(s1, s2, plain)
	if err := m.RecordAllocation(AllocationEvent{}); err != nil {
		t.Fatalf("record allocation: %v", err)
	}
	if err := m.RecordFailure(FailureEvent{}); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if s1.count != 1 || s2.count != 1 || plain.count != 1 {
		t.Fatalf("allocations not forwarded")
	}
	if s1.failures != 1 || s2.failures != 1 {
		t.Fatalf("failures not forwarded")
	}
}

func TestMultiSinkStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	s1 := &recordSink{err: boom}
	s2 := &recordSink{}
	if err := NewMultiSink(s1, s2).RecordAllocation(AllocationEvent{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom got %v", err)
	}
	if s2.count != 0 {
		t.Fatalf("second sink should not be called")
	}
}

func TestAllocationEventUnscheduled(t *testing.T) {
	ev := AllocationEvent{Records: []model.Allocation{
		{Resource: "A", Amount: 2},
		model.NewPlaceholder(model.Slot{Label: "s1"}, 1.5),
		model.NewPlaceholder(model.Slot{Label: "s2"}, 3),
	}}
	if got := ev.Unscheduled(); got != 4.5 {
		t.Fatalf("expected 4.5 got %v", got)
	}
}
