package app

import (
	"fmt"

	"github.com/kilianp07/homeload/config"
	coremetrics "github.com/kilianp07/homeload/core/metrics"
	"github.com/kilianp07/homeload/core/planstore"
	"github.com/kilianp07/homeload/infra/logger"
	_ "github.com/kilianp07/homeload/infra/metrics" // registers the built-in sinks
	"github.com/kilianp07/homeload/infra/mqtt"
)

// New builds a Planner from the configuration: metrics sinks, plan store and,
// when a broker is configured, the MQTT publisher.
func New(cfg *config.Config) (*Planner, error) {
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	store, err := planstore.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("plan store: %w", err)
	}
	opts := []Option{
		WithMetrics(sink),
		WithStore(store),
		WithLogger(logger.New("planner")),
	}
	if cfg.MQTT.Enabled() {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		opts = append(opts, WithPublisher(pub))
	}
	return NewPlanner(opts...), nil
}
