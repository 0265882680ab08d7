package allocator

import "github.com/kilianp07/homeload/core/model"

// working is the per-call state of one resource during a parallel pass.
type working struct {
	res       model.Resource
	remaining int
	done      bool
}

// Parallel shares each slot's capacity between resources in priority order.
//
// For every slot, each resource with hours left is offered the slot once; it
// is assigned when its demand fits what is left of the capacity. A resource
// whose hours run out is dropped after the slot pass, so it is never offered
// a later slot. Unused capacity of a slot is reported as a placeholder.
//
// The caller's resources are not modified. pending holds the resources that
// still need hours, with Hours reduced to what is left, in priority order; it
// can be fed into another Parallel call to continue the simulation.
func Parallel(resources []model.Resource, slots []model.Slot) (records []model.Allocation, pending []model.Resource) {
	sorted := sortByPriority(resources)
	arena := make([]*working, 0, len(sorted))
	for _, r := range sorted {
		arena = append(arena, &working{res: r, remaining: r.Hours, done: r.Hours <= 0})
	}
	active := arena

	for _, s := range slots {
		left := s.Capacity
		for _, w := range active {
			if w.remaining <= 0 || !w.res.Fits(left) {
				continue
			}
			records = append(records, model.Allocation{
				Kind:     model.Assigned,
				Resource: w.res.Name,
				Slot:     s.Label,
				Amount:   w.res.DemandPerHour,
				Priority: w.res.Priority,
			})
			w.remaining--
			left -= w.res.DemandPerHour
			if w.remaining == 0 {
				w.done = true
			}
		}
		active = prune(active)
		if left > 0 {
			records = append(records, model.NewPlaceholder(s, left))
		}
	}

	for _, w := range arena {
		if w.done {
			continue
		}
		r := w.res
		r.Hours = w.remaining
		pending = append(pending, r)
	}
	return records, pending
}

// prune compacts the active list, dropping exhausted resources. It allocates
// a new slice so the arena order is left intact.
func prune(active []*working) []*working {
	kept := make([]*working, 0, len(active))
	for _, w := range active {
		if !w.done {
			kept = append(kept, w)
		}
	}
	return kept
}
