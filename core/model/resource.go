package model

import (
	"fmt"

	"github.com/kilianp07/homeload/core/factory"
)

// Resource represents a home appliance that must be switched on for a number
// of whole hours and draws DemandPerHour from a slot while running.
type Resource struct {
	Name     string
	Priority int // lower value is scheduled first
	Hours    int // duration requirement in hours

	// DemandPerHour is the energy drawn per active hour. It is only
	// meaningful when DemandKnown is true; a resource without a known demand
	// never fits a slot with a finite budget.
	DemandPerHour float64
	DemandKnown   bool
}

// Fits reports whether the resource can run in a slot that still has
// remaining capacity. Exact fits are allowed.
func (r Resource) Fits(remaining float64) bool {
	return r.DemandKnown && remaining-r.DemandPerHour >= 0
}

// rawResource mirrors the raw field-set accepted by BuildResources.
type rawResource struct {
	Name          string   `json:"name"`
	Priority      int      `json:"priority"`
	Hours         int      `json:"hours"`
	DemandPerHour *float64 `json:"demand_per_hour"`
}

var requiredFields = []string{"name", "priority", "hours"}

// BuildResources converts raw field-sets into Resource values. The fields
// name, priority and hours are mandatory; demand_per_hour is optional.
// Hours are not range-checked here.
func BuildResources(records []map[string]any) ([]Resource, error) {
	out := make([]Resource, 0, len(records))
	for i, rec := range records {
		for _, f := range requiredFields {
			if v, ok := rec[f]; !ok || v == nil {
				return nil, &RecordError{Index: i, Field: f}
			}
		}
		var raw rawResource
		if err := factory.Decode(rec, &raw); err != nil {
			return nil, &RecordError{Index: i, Err: err}
		}
		r := Resource{Name: raw.Name, Priority: raw.Priority, Hours: raw.Hours}
		if raw.DemandPerHour != nil {
			r.DemandPerHour = *raw.DemandPerHour
			r.DemandKnown = true
		}
		out = append(out, r)
	}
	return out, nil
}

// RecordError describes a raw resource record that could not be converted.
// It matches ErrInvalidRecord with errors.Is.
type RecordError struct {
	Index int
	Field string
	Err   error
}

func (e *RecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%v: record %d: missing field %q", ErrInvalidRecord, e.Index, e.Field)
	}
	return fmt.Sprintf("%v: record %d: %v", ErrInvalidRecord, e.Index, e.Err)
}

func (e *RecordError) Is(target error) bool { return target == ErrInvalidRecord }

func (e *RecordError) Unwrap() error { return e.Err }
