package model

import (
	"fmt"
	"sort"
	"time"
)

// NothingScheduled is the resource name carried by placeholder records.
const NothingScheduled = "Nothing Scheduled"

// RecordKind tells an assigned record apart from a placeholder.
type RecordKind int

const (
	Assigned RecordKind = iota
	Placeholder
)

// String returns a human-readable representation of the record kind.
func (k RecordKind) String() string {
	switch k {
	case Assigned:
		return "assigned"
	case Placeholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k RecordKind) MarshalText() ([]byte, error) {
	if k != Assigned && k != Placeholder {
		return nil, fmt.Errorf("invalid record kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *RecordKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "assigned":
		*k = Assigned
	case "placeholder":
		*k = Placeholder
	default:
		return fmt.Errorf("invalid record kind %q", string(b))
	}
	return nil
}

// Strategy identifies the allocator that produced a plan.
type Strategy int

const (
	StrategySequential Strategy = iota
	StrategyParallel
	StrategyRolling
)

// String returns a human-readable representation of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategySequential:
		return "sequential"
	case StrategyParallel:
		return "parallel"
	case StrategyRolling:
		return "rolling"
	default:
		return "unknown"
	}
}

// ParseStrategy returns the Strategy named s.
func ParseStrategy(s string) (Strategy, bool) {
	for _, st := range []Strategy{StrategySequential, StrategyParallel, StrategyRolling} {
		if st.String() == s {
			return st, true
		}
	}
	return 0, false
}

// Allocation is one output record of an allocator.
//
// Amount depends on the strategy: the slot capacity for sequential plans, the
// consumed (or, for placeholders, unused) budget for parallel plans and the
// window average for rolling plans. Time is only set by the rolling allocator;
// Slot is only set by the discrete allocators.
type Allocation struct {
	Kind     RecordKind `json:"kind"`
	Resource string     `json:"resource"`
	Slot     string     `json:"slot,omitempty"`
	Time     time.Time  `json:"time"`
	Amount   float64    `json:"amount"`
	Priority int        `json:"priority"`
}

// IsPlaceholder reports whether the record represents unused capacity.
func (a Allocation) IsPlaceholder() bool { return a.Kind == Placeholder }

// NewPlaceholder builds the record emitted for an unfilled slot or for its
// unused capacity.
func NewPlaceholder(slot Slot, amount float64) Allocation {
	return Allocation{Kind: Placeholder, Resource: NothingScheduled, Slot: slot.Label, Amount: amount}
}

// ByPriority stable-sorts records by ascending priority. Placeholders always
// sort after assigned records.
func ByPriority(recs []Allocation) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.IsPlaceholder() != b.IsPlaceholder() {
			return !a.IsPlaceholder()
		}
		return a.Priority < b.Priority
	})
}
