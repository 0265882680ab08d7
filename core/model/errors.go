package model

import "errors"

var (
	// ErrOverAllocation is returned when the sequential allocator is given
	// more resources, or more resource-hours, than there are slots.
	ErrOverAllocation = errors.New("cannot allocate more resources than slots")
	// ErrInvalidDuration is returned for a non-positive duration requirement.
	ErrInvalidDuration = errors.New("duration must be positive")
	// ErrInvalidInterval is returned for a non-positive sampling interval.
	ErrInvalidInterval = errors.New("sampling interval must be positive")
	// ErrInvalidRecord is returned when a raw resource record is malformed.
	ErrInvalidRecord = errors.New("invalid resource record")
	// ErrInsufficientSeries is returned when a time series holds fewer
	// samples than the window a resource requires.
	ErrInsufficientSeries = errors.New("series shorter than window")
)
