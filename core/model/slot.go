package model

import "time"

// Slot is a discrete unit of schedulable capacity. The sequential allocator
// treats every slot as one resource-hour; the parallel allocator shares
// Capacity between resources.
type Slot struct {
	Label    string
	Capacity float64
}

// SeriesPoint is one sample of an evenly spaced time series, for instance a
// grid carbon intensity or price forecast.
type SeriesPoint struct {
	Time  time.Time
	Value float64
}
