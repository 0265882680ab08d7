// Package allocator places prioritized home resources onto a timeline.
//
// Three independent strategies share the model.Resource type:
//
//   - Sequential gives every slot to at most one resource, in ascending
//     priority order, and pads unused slots with placeholders.
//   - Parallel lets several resources share a slot as long as their demand
//     fits the slot capacity.
//   - RollingWindow picks, per resource, the contiguous window of a time
//     series with the lowest average value.
//
// Each strategy is a single deterministic pass. Nothing backtracks and no
// strategy logs; failures are returned as errors wrapping the sentinels of
// package model and no partial plan is returned alongside them.
package allocator
