package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestByPriorityPlaceholdersLast(t *testing.T) {
	recs := []Allocation{
		NewPlaceholder(Slot{Label: "s1"}, 4),
		{Resource: "B", Priority: 2},
		{Resource: "A", Priority: 1},
		{Resource: "C", Priority: 2},
	}
	ByPriority(recs)
	want := []string{"A", "B", "C", NothingScheduled}
	for i, w := range want {
		if recs[i].Resource != w {
			t.Fatalf("position %d: expected %s got %s", i, w, recs[i].Resource)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range []Strategy{StrategySequential, StrategyParallel, StrategyRolling} {
		got, ok := ParseStrategy(s.String())
		if !ok || got != s {
			t.Fatalf("round trip failed for %s", s)
		}
	}
	if _, ok := ParseStrategy("lp"); ok {
		t.Fatalf("expected unknown strategy")
	}
}

func TestRecordKindJSON(t *testing.T) {
	data, err := json.Marshal(NewPlaceholder(Slot{Label: "s1"}, 2))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"kind":"placeholder"`) {
		t.Fatalf("kind not encoded by name: %s", data)
	}
	var back Allocation
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.IsPlaceholder() || back.Slot != "s1" {
		t.Fatalf("unexpected record %+v", back)
	}
	if err := json.Unmarshal([]byte(`{"kind":"maybe"}`), &back); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
