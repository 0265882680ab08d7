// Package report summarizes series and allocation plans.
package report

import (
	"errors"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/homeload/core/model"
)

// ErrEmptySeries is returned when there is no data to summarize.
var ErrEmptySeries = errors.New("empty series")

// SeriesMean returns the arithmetic mean of the series values.
func SeriesMean(points []model.SeriesPoint) (float64, error) {
	if len(points) == 0 {
		return 0, ErrEmptySeries
	}
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	return stat.Mean(values, nil), nil
}

// SlotSummary aggregates the records of one slot.
type SlotSummary struct {
	Slot      string   `json:"slot"`
	Used      float64  `json:"used"`
	Unused    float64  `json:"unused"`
	Resources []string `json:"resources"`
}

// SlotUsage groups slot-based records by slot, in the order slots first
// appear. Records without a slot, such as rolling-window records, are ignored.
func SlotUsage(records []model.Allocation) []SlotSummary {
	var out []SlotSummary
	index := map[string]int{}
	for _, r := range records {
		if r.Slot == "" {
			continue
		}
		i, ok := index[r.Slot]
		if !ok {
			i = len(out)
			index[r.Slot] = i
			out = append(out, SlotSummary{Slot: r.Slot})
		}
		if r.IsPlaceholder() {
			out[i].Unused += r.Amount
			continue
		}
		out[i].Used += r.Amount
		out[i].Resources = append(out[i].Resources, r.Resource)
	}
	return out
}
