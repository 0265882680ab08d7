// Package factory provides a small generic registry used to instantiate modules
// from configuration, plus the mapstructure-based Decode helper that turns raw
// field-sets into typed structs using their json tags.
//
// Metrics sinks are built through a Registry; raw resource records go through
// Decode before they become model.Resource values.
//
//	reg := factory.NewRegistry[metrics.MetricsSink]()
//	reg.Register("nop", func(map[string]any) (metrics.MetricsSink, error) {
//	    return metrics.NopSink{}, nil
//	})
//	sink, err := reg.Create(factory.ModuleConfig{Type: "nop"})
package factory
