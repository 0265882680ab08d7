// Package planstore persists finished allocation plans so they can be
// listed and replayed later. Backends: plain JSONL, size-rotated JSONL and
// SQLite.
package planstore

import (
	"context"
	"time"

	"github.com/kilianp07/homeload/core/model"
)

// PlanRecord captures one finished allocation plan.
type PlanRecord struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Strategy  string             `json:"strategy"`
	Records   []model.Allocation `json:"records"`
}

// PlanQuery defines filters for retrieving records. Zero values match everything.
type PlanQuery struct {
	Start    time.Time
	End      time.Time
	Strategy string
	Resource string
}

// Match reports whether rec passes the query filters.
func (q PlanQuery) Match(rec PlanRecord) bool {
	if !q.Start.IsZero() && rec.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && rec.Timestamp.After(q.End) {
		return false
	}
	if q.Strategy != "" && rec.Strategy != q.Strategy {
		return false
	}
	if q.Resource == "" {
		return true
	}
	for _, a := range rec.Records {
		if !a.IsPlaceholder() && a.Resource == q.Resource {
			return true
		}
	}
	return false
}

// PlanStore persists PlanRecords and supports querying.
type PlanStore interface {
	Append(ctx context.Context, rec PlanRecord) error
	Query(ctx context.Context, q PlanQuery) ([]PlanRecord, error)
	Close() error
}
