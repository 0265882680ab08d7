package allocator

import (
	"fmt"
	"sort"

	"github.com/kilianp07/homeload/core/model"
)

// Sequential assigns each resource Hours consecutive slots, walking resources
// by ascending priority (ties keep input order) with a single slot cursor.
// Remaining slots are returned as placeholders so the plan always has one
// record per slot.
func Sequential(resources []model.Resource, slots []model.Slot) ([]model.Allocation, error) {
	if len(resources) > len(slots) {
		return nil, fmt.Errorf("%w: %d resources for %d slots", model.ErrOverAllocation, len(resources), len(slots))
	}
	needed := 0
	for _, r := range resources {
		if r.Hours > 0 {
			needed += r.Hours
		}
	}
	if needed > len(slots) {
		return nil, fmt.Errorf("%w: %d resource-hours for %d slots", model.ErrOverAllocation, needed, len(slots))
	}

	sorted := sortByPriority(resources)
	out := make([]model.Allocation, 0, len(slots))
	cursor := 0
	for _, r := range sorted {
		for h := 0; h < r.Hours; h++ {
			s := slots[cursor]
			out = append(out, model.Allocation{
				Kind:     model.Assigned,
				Resource: r.Name,
				Slot:     s.Label,
				Amount:   s.Capacity,
				Priority: r.Priority,
			})
			cursor++
		}
	}
	for _, s := range slots[cursor:] {
		out = append(out, model.NewPlaceholder(s, s.Capacity))
	}
	return out, nil
}

// sortByPriority returns a copy of resources stable-sorted by priority.
func sortByPriority(resources []model.Resource) []model.Resource {
	sorted := make([]model.Resource, len(resources))
	copy(sorted, resources)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })
	return sorted
}
