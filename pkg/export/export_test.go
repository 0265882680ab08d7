package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/homeload/core/model"
)

func sample() []model.Allocation {
	at := time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)
	return []model.Allocation{
		{Kind: model.Assigned, Resource: "washer", Slot: "h0", Amount: 1.5, Priority: 1},
		model.NewPlaceholder(model.Slot{Label: "h0"}, 2),
		{Kind: model.Assigned, Resource: "heater", Time: at, Amount: 0.25, Priority: 3},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "kind,resource,slot,time,amount,priority", lines[0])
	assert.Equal(t, "assigned,washer,h0,,1.5,1", lines[1])
	assert.Equal(t, "placeholder,Nothing Scheduled,h0,,2,", lines[2])
	assert.Equal(t, "assigned,heater,,2024-03-01T02:00:00Z,0.25,3", lines[3])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sample()))
	var back []model.Allocation
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	require.Len(t, back, 3)
	assert.True(t, back[1].IsPlaceholder())
	assert.True(t, back[2].Time.Equal(sample()[2].Time))

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestWriteFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "csv", nil))
	assert.Equal(t, "kind,resource,slot,time,amount,priority\n", buf.String())
	assert.Error(t, Write(&buf, "xml", nil))
}
