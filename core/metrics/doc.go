// Package metrics defines the sink interface used to observe allocation
// plans. Sinks like PromSink and InfluxSink (package infra/metrics) record
// one AllocationEvent per finished plan and can be combined with
// NewMultiSink. NewMetricsSink builds sinks from configuration and returns a
// MultiSink automatically when several are configured.
package metrics
