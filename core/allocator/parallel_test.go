package allocator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/homeload/core/model"
)

func demand(name string, priority, hours int, kw float64) model.Resource {
	return model.Resource{Name: name, Priority: priority, Hours: hours, DemandPerHour: kw, DemandKnown: true}
}

func TestParallelSingleResourceAcrossSlots(t *testing.T) {
	res := []model.Resource{demand("A", 1, 2, 1)}
	out, pending := Parallel(res, slots(5, 1))
	require.Len(t, out, 3)
	assert.Empty(t, pending)

	assert.Equal(t, model.Allocation{Kind: model.Assigned, Resource: "A", Slot: "Slot 1", Amount: 1, Priority: 1}, out[0])
	assert.True(t, out[1].IsPlaceholder())
	assert.Equal(t, "Slot 1", out[1].Slot)
	assert.Equal(t, 4.0, out[1].Amount)
	assert.Equal(t, "A", out[2].Resource)
	assert.Equal(t, "Slot 2", out[2].Slot)
	assert.Equal(t, 1.0, out[2].Amount)
}

func TestParallelMultipleResources(t *testing.T) {
	res := []model.Resource{demand("A", 1, 1, 1), demand("B", 2, 2, 2)}
	out, _ := Parallel(res, slots(6, 2))
	require.Len(t, out, 4)

	names := []string{out[0].Resource, out[1].Resource, out[2].Resource, out[3].Resource}
	assert.Equal(t, []string{"A", "B", model.NothingScheduled, "B"}, names)
	assert.Equal(t, 3.0, out[2].Amount)
	assert.Equal(t, "Slot 2", out[3].Slot)
}

func TestParallelUnknownDemandNeverScheduled(t *testing.T) {
	res := []model.Resource{{Name: "heater", Priority: 0, Hours: 1}, demand("lamp", 1, 1, 0.5)}
	out, pending := Parallel(res, slots(1000))
	require.Len(t, out, 2)
	assert.Equal(t, "lamp", out[0].Resource)
	assert.True(t, out[1].IsPlaceholder())
	require.Len(t, pending, 1)
	assert.Equal(t, "heater", pending[0].Name)
}

func TestParallelExactFitLeavesNoPlaceholder(t *testing.T) {
	out, _ := Parallel([]model.Resource{demand("A", 1, 1, 2), demand("B", 2, 1, 3)}, slots(5))
	require.Len(t, out, 2)
	for _, r := range out {
		assert.False(t, r.IsPlaceholder())
	}
}

func TestParallelSkipsOversizedButContinues(t *testing.T) {
	// B does not fit after A, but lower priority C still does.
	res := []model.Resource{demand("A", 1, 1, 3), demand("B", 2, 1, 3), demand("C", 3, 1, 1)}
	out, pending := Parallel(res, slots(4))
	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].Resource)
	assert.Equal(t, "C", out[1].Resource)
	require.Len(t, pending, 1)
	assert.Equal(t, "B", pending[0].Name)
}

func TestParallelCapacityConservation(t *testing.T) {
	res := []model.Resource{
		demand("oven", 1, 2, 2.5),
		demand("washer", 2, 3, 1.2),
		demand("ev", 3, 4, 3.7),
		demand("pump", 2, 5, 0.4),
	}
	ss := []model.Slot{{Label: "h0", Capacity: 4}, {Label: "h1", Capacity: 7}, {Label: "h2", Capacity: 0.5}, {Label: "h3", Capacity: 6}}
	out, _ := Parallel(res, ss)

	used := map[string]float64{}
	for _, r := range out {
		used[r.Slot] += r.Amount
	}
	for _, s := range ss {
		assert.InDelta(t, s.Capacity, used[s.Label], 1e-9, s.Label)
	}
	for _, r := range out {
		if r.IsPlaceholder() {
			assert.Greater(t, r.Amount, 0.0)
		}
	}
}

func TestParallelHoursNeverExceeded(t *testing.T) {
	res := []model.Resource{demand("A", 1, 2, 1), demand("B", 1, 1, 1)}
	out, pending := Parallel(res, slots(10, 10, 10, 10))
	counts := map[string]int{}
	for _, r := range out {
		if !r.IsPlaceholder() {
			counts[r.Resource]++
		}
	}
	assert.Equal(t, 2, counts["A"])
	assert.Equal(t, 1, counts["B"])
	assert.Empty(t, pending)
	// once exhausted a resource never reappears
	for _, r := range out {
		if r.Slot == "Slot 3" || r.Slot == "Slot 4" {
			assert.True(t, r.IsPlaceholder())
		}
	}
}

func TestParallelAtMostOncePerSlot(t *testing.T) {
	out, pending := Parallel([]model.Resource{demand("A", 1, 3, 1)}, slots(10))
	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].Resource)
	assert.Equal(t, 9.0, out[1].Amount)
	require.Len(t, pending, 1)
	assert.Equal(t, 2, pending[0].Hours)
}

func TestParallelDoesNotMutateInputAndChains(t *testing.T) {
	res := []model.Resource{demand("A", 1, 3, 1)}
	_, pending := Parallel(res, slots(1))
	assert.Equal(t, 3, res[0].Hours)
	require.Len(t, pending, 1)
	assert.Equal(t, 2, pending[0].Hours)

	out, pending := Parallel(pending, slots(1, 1))
	assert.Len(t, out, 2)
	assert.Empty(t, pending)
}

func TestParallelZeroCapacitySlot(t *testing.T) {
	out, _ := Parallel([]model.Resource{demand("A", 1, 1, 0)}, slots(0))
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].Resource)
	assert.Equal(t, 0.0, out[0].Amount)
}

func TestParallelIgnoresNonPositiveHours(t *testing.T) {
	out, pending := Parallel([]model.Resource{demand("A", 1, 0, 1)}, slots(2))
	require.Len(t, out, 1)
	assert.True(t, out[0].IsPlaceholder())
	assert.Empty(t, pending)
	assert.False(t, math.IsInf(out[0].Amount, 0))
}
