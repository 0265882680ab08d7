package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/homeload/core/model"
)

func slots(caps ...float64) []model.Slot {
	out := make([]model.Slot, len(caps))
	for i, c := range caps {
		out[i] = model.Slot{Label: "Slot " + string(rune('1'+i)), Capacity: c}
	}
	return out
}

func names(recs []model.Allocation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Resource
	}
	return out
}

func TestSequentialPriorityOrder(t *testing.T) {
	res := []model.Resource{
		{Name: "A", Priority: 3, Hours: 1},
		{Name: "B", Priority: 2, Hours: 1},
		{Name: "C", Priority: 1, Hours: 1},
	}
	out, err := Sequential(res, slots(1, 2, 3))
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"C", "B", "A"}, names(out))
	for i, r := range out {
		assert.Equal(t, float64(i+1), r.Amount, "slot capacity not carried over for record %d", i)
	}
}

func TestSequentialTiesKeepInputOrder(t *testing.T) {
	res := []model.Resource{
		{Name: "first", Priority: 1, Hours: 1},
		{Name: "second", Priority: 1, Hours: 1},
		{Name: "urgent", Priority: 0, Hours: 1},
	}
	out, err := Sequential(res, slots(1, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"urgent", "first", "second"}, names(out))
}

func TestSequentialPadsWithPlaceholders(t *testing.T) {
	res := []model.Resource{
		{Name: "A", Priority: 3, Hours: 1},
		{Name: "B", Priority: 2, Hours: 1},
		{Name: "C", Priority: 1, Hours: 1},
	}
	out, err := Sequential(res, slots(1, 2, 3, 4))
	require.NoError(t, err)
	require.Len(t, out, 4)

	last := out[3]
	assert.True(t, last.IsPlaceholder())
	assert.Equal(t, model.NothingScheduled, last.Resource)
	assert.Equal(t, "Slot 4", last.Slot)
	assert.Equal(t, 4.0, last.Amount)
}

func TestSequentialMultiHour(t *testing.T) {
	res := []model.Resource{
		{Name: "washer", Priority: 2, Hours: 2},
		{Name: "dryer", Priority: 1, Hours: 1},
	}
	ss := slots(1, 1, 1, 1, 1)
	out, err := Sequential(res, ss)
	require.NoError(t, err)
	assert.Equal(t, []string{"dryer", "washer", "washer", model.NothingScheduled, model.NothingScheduled}, names(out))
	for i, r := range out {
		assert.Equal(t, ss[i].Label, r.Slot, "slots must be consumed in order")
	}
}

func TestSequentialOverAllocation(t *testing.T) {
	res := []model.Resource{
		{Name: "A", Priority: 3, Hours: 1},
		{Name: "B", Priority: 2, Hours: 1},
		{Name: "C", Priority: 1, Hours: 1},
	}
	out, err := Sequential(res, slots(1, 2))
	assert.ErrorIs(t, err, model.ErrOverAllocation)
	assert.Nil(t, out, "no partial plan")
}

func TestSequentialOverAllocationByHours(t *testing.T) {
	res := []model.Resource{{Name: "A", Priority: 1, Hours: 3}}
	_, err := Sequential(res, slots(1, 1))
	assert.ErrorIs(t, err, model.ErrOverAllocation)
}

func TestSequentialDoesNotMutateInput(t *testing.T) {
	res := []model.Resource{
		{Name: "A", Priority: 2, Hours: 1},
		{Name: "B", Priority: 1, Hours: 1},
	}
	_, err := Sequential(res, slots(1, 1))
	require.NoError(t, err)
	assert.Equal(t, "A", res[0].Name)
	assert.Equal(t, "B", res[1].Name)
}

func TestSequentialNoResources(t *testing.T) {
	out, err := Sequential(nil, slots(1, 2))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].IsPlaceholder())
	assert.True(t, out[1].IsPlaceholder())
}
