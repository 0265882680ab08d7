package allocator

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/homeload/core/model"
)

// WindowSize returns the number of samples, taken every interval, that cover
// the given number of hours. Partial samples round up.
func WindowSize(hours float64, interval time.Duration) (int, error) {
	if hours <= 0 {
		return 0, fmt.Errorf("%w: %v hours", model.ErrInvalidDuration, hours)
	}
	if interval <= 0 {
		return 0, fmt.Errorf("%w: %v", model.ErrInvalidInterval, interval)
	}
	return int(math.Ceil(hours * 60 / interval.Minutes())), nil
}

// RollingWindow finds, for every resource independently, the window of the
// series with the lowest average value. The series must be ordered by time
// and sampled every interval.
//
// Each resource yields two records carrying the window average: one at the
// window start then one at the window end. The end is the last sample of the
// window; the start lies Hours-1 whole hours before it. Windows of different
// resources may overlap.
func RollingWindow(resources []model.Resource, series []model.SeriesPoint, interval time.Duration) ([]model.Allocation, error) {
	values := make([]float64, len(series))
	for i, p := range series {
		values[i] = p.Value
	}

	out := make([]model.Allocation, 0, 2*len(resources))
	for _, r := range resources {
		size, err := WindowSize(float64(r.Hours), interval)
		if err != nil {
			return nil, fmt.Errorf("resource %s: %w", r.Name, err)
		}
		first, avg, err := minRollingMean(values, size)
		if err != nil {
			return nil, fmt.Errorf("resource %s: %w", r.Name, err)
		}
		end := series[first+size-1].Time
		start := end.Add(-time.Duration(r.Hours-1) * time.Hour)
		out = append(out,
			model.Allocation{Kind: model.Assigned, Resource: r.Name, Time: start, Amount: avg, Priority: r.Priority},
			model.Allocation{Kind: model.Assigned, Resource: r.Name, Time: end, Amount: avg, Priority: r.Priority},
		)
	}
	return out, nil
}

// minRollingMean computes the mean of every full window of size samples and
// returns the first sample index of the earliest window with the lowest mean.
// Positions before the first full window are never candidates. Each window is
// summed on its own so equal windows produce bit-identical means and a large
// outlier cannot leak into later windows.
func minRollingMean(values []float64, size int) (int, float64, error) {
	if size > len(values) {
		return 0, 0, fmt.Errorf("%w: need %d samples, have %d", model.ErrInsufficientSeries, size, len(values))
	}
	means := make([]float64, len(values)-size+1)
	for i := range means {
		means[i] = floats.Sum(values[i:i+size]) / float64(size)
	}
	idx := floats.MinIdx(means)
	return idx, means[idx], nil
}
