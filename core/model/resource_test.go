package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildResources(t *testing.T) {
	res, err := BuildResources([]map[string]any{
		{"name": "dishwasher", "priority": 2, "hours": 2, "demand_per_hour": 1.5},
		{"name": "heater", "priority": 1, "hours": 3},
	})
	require.NoError(t, err)
	require.Len(t, res, 2)

	assert.Equal(t, Resource{Name: "dishwasher", Priority: 2, Hours: 2, DemandPerHour: 1.5, DemandKnown: true}, res[0])
	assert.Equal(t, "heater", res[1].Name)
	assert.False(t, res[1].DemandKnown)
}

func TestBuildResourcesMissingField(t *testing.T) {
	for _, field := range []string{"name", "priority", "hours"} {
		rec := map[string]any{"name": "A", "priority": 1, "hours": 1}
		delete(rec, field)
		_, err := BuildResources([]map[string]any{rec})
		require.Error(t, err, field)
		assert.True(t, errors.Is(err, ErrInvalidRecord))

		var recErr *RecordError
		require.True(t, errors.As(err, &recErr))
		assert.Equal(t, field, recErr.Field)
		assert.Equal(t, 0, recErr.Index)
	}
}

func TestBuildResourcesNilField(t *testing.T) {
	_, err := BuildResources([]map[string]any{
		{"name": "A", "priority": 1, "hours": 1},
		{"name": "B", "priority": nil, "hours": 1},
	})
	var recErr *RecordError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, 1, recErr.Index)
	assert.Equal(t, "priority", recErr.Field)
}

func TestBuildResourcesBadType(t *testing.T) {
	_, err := BuildResources([]map[string]any{{"name": "A", "priority": "high", "hours": 1}})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestBuildResourcesRejectsFractionalNumbers(t *testing.T) {
	cases := []map[string]any{
		{"name": "A", "priority": 1.0, "hours": 2.5},
		{"name": "A", "priority": 1.9, "hours": 1},
	}
	for _, rec := range cases {
		_, err := BuildResources([]map[string]any{rec})
		assert.ErrorIs(t, err, ErrInvalidRecord, "%v", rec)
		var recErr *RecordError
		require.True(t, errors.As(err, &recErr))
		assert.Equal(t, 0, recErr.Index)
	}

	res, err := BuildResources([]map[string]any{{"name": "A", "priority": 2.0, "hours": 3.0}})
	require.NoError(t, err)
	assert.Equal(t, 2, res[0].Priority)
	assert.Equal(t, 3, res[0].Hours)
}

func TestBuildResourcesKeepsNonPositiveHours(t *testing.T) {
	res, err := BuildResources([]map[string]any{{"name": "A", "priority": 1, "hours": 0}})
	require.NoError(t, err)
	assert.Equal(t, 0, res[0].Hours)
}

func TestResourceFits(t *testing.T) {
	r := Resource{DemandPerHour: 2, DemandKnown: true}
	assert.True(t, r.Fits(2))
	assert.True(t, r.Fits(5))
	assert.False(t, r.Fits(1.5))
	assert.False(t, Resource{}.Fits(100))
}
