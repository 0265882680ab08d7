// Package app runs allocation plans and fans the results out to metrics,
// plan storage, the in-process event bus and MQTT.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/homeload/core/allocator"
	coremetrics "github.com/kilianp07/homeload/core/metrics"
	"github.com/kilianp07/homeload/core/model"
	coremon "github.com/kilianp07/homeload/core/monitoring"
	coremqtt "github.com/kilianp07/homeload/core/mqtt"
	"github.com/kilianp07/homeload/core/planstore"
	"github.com/kilianp07/homeload/infra/logger"
	"github.com/kilianp07/homeload/internal/eventbus"
)

// PlanEvent is published on the planner bus after a plan has been stored.
type PlanEvent struct {
	Plan planstore.PlanRecord
	// Pending lists resources a parallel run could not finish.
	Pending []model.Resource
}

// Planner runs one allocation strategy per call.
type Planner struct {
	sink      coremetrics.MetricsSink
	store     planstore.PlanStore
	publisher coremqtt.PlanPublisher
	bus       *eventbus.Bus[PlanEvent]
	log       logger.Logger
	now       func() time.Time
	newID     func() string
}

// Option customizes a Planner.
type Option func(*Planner)

func WithMetrics(s coremetrics.MetricsSink) Option { return func(p *Planner) { p.sink = s } }

func WithStore(s planstore.PlanStore) Option { return func(p *Planner) { p.store = s } }

// WithPublisher enables MQTT delivery of finished plans.
func WithPublisher(pub coremqtt.PlanPublisher) Option {
	return func(p *Planner) { p.publisher = pub }
}

func WithBus(b *eventbus.Bus[PlanEvent]) Option { return func(p *Planner) { p.bus = b } }

func WithLogger(l logger.Logger) Option { return func(p *Planner) { p.log = l } }

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option { return func(p *Planner) { p.now = now } }

// WithIDGenerator replaces the uuid plan id source.
func WithIDGenerator(f func() string) Option { return func(p *Planner) { p.newID = f } }

// NewPlanner returns a Planner. Unset collaborators fall back to no-ops;
// without a store plans are only published.
func NewPlanner(opts ...Option) *Planner {
	p := &Planner{
		sink:  coremetrics.NopSink{},
		bus:   eventbus.New[PlanEvent](),
		log:   logger.New("planner"),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Events exposes the bus on which finished plans are announced.
func (p *Planner) Events() *eventbus.Bus[PlanEvent] { return p.bus }

// RunSequential assigns whole slots in priority order.
func (p *Planner) RunSequential(ctx context.Context, resources []model.Resource, slots []model.Slot) (planstore.PlanRecord, error) {
	start := p.now()
	p.log.Infow("allocation started", map[string]any{"strategy": "sequential", "resources": len(resources), "slots": len(slots)})
	records, err := allocator.Sequential(resources, slots)
	if err != nil {
		return planstore.PlanRecord{}, p.fail(model.StrategySequential, err)
	}
	return p.finish(ctx, run{
		strategy:  model.StrategySequential,
		records:   records,
		resources: len(resources),
		slots:     len(slots),
		start:     start,
	})
}

// RunParallel shares slot capacity between resources. The returned resources
// still have hours left and can be passed to another run.
func (p *Planner) RunParallel(ctx context.Context, resources []model.Resource, slots []model.Slot) (planstore.PlanRecord, []model.Resource, error) {
	start := p.now()
	p.log.Infow("allocation started", map[string]any{"strategy": "parallel", "resources": len(resources), "slots": len(slots)})
	records, pending := allocator.Parallel(resources, slots)
	rec, err := p.finish(ctx, run{
		strategy:  model.StrategyParallel,
		records:   records,
		pending:   pending,
		resources: len(resources),
		slots:     len(slots),
		start:     start,
	})
	return rec, pending, err
}

// RunRolling picks the cheapest contiguous window of the series for each
// resource.
func (p *Planner) RunRolling(ctx context.Context, resources []model.Resource, series []model.SeriesPoint, interval time.Duration) (planstore.PlanRecord, error) {
	start := p.now()
	p.log.Infow("allocation started", map[string]any{"strategy": "rolling", "resources": len(resources), "samples": len(series), "interval": interval.String()})
	records, err := allocator.RollingWindow(resources, series, interval)
	if err != nil {
		return planstore.PlanRecord{}, p.fail(model.StrategyRolling, err)
	}
	return p.finish(ctx, run{
		strategy:  model.StrategyRolling,
		records:   records,
		resources: len(resources),
		slots:     len(series),
		start:     start,
	})
}

type run struct {
	strategy  model.Strategy
	records   []model.Allocation
	pending   []model.Resource
	resources int
	slots     int
	start     time.Time
}

// fail reports an allocator error and returns it unchanged.
func (p *Planner) fail(strategy model.Strategy, err error) error {
	p.log.Errorw("allocation failed", err, map[string]any{"strategy": strategy.String()})
	if fr, ok := p.sink.(coremetrics.FailureRecorder); ok {
		if rerr := fr.RecordFailure(coremetrics.FailureEvent{Strategy: strategy, Reason: err.Error(), Time: p.now()}); rerr != nil {
			p.log.Warnf("record failure metric: %v", rerr)
		}
	}
	coremon.CaptureException(err, map[string]string{"strategy": strategy.String(), "module": "planner"})
	return err
}

func (p *Planner) finish(ctx context.Context, r run) (planstore.PlanRecord, error) {
	now := p.now()
	plan := planstore.PlanRecord{
		ID:        p.newID(),
		Timestamp: now,
		Strategy:  r.strategy.String(),
		Records:   r.records,
	}
	ev := coremetrics.AllocationEvent{
		PlanID:    plan.ID,
		Strategy:  r.strategy,
		Records:   r.records,
		Resources: r.resources,
		Slots:     r.slots,
		Duration:  now.Sub(r.start),
		Time:      now,
	}
	if err := p.sink.RecordAllocation(ev); err != nil {
		p.log.Warnf("record allocation metric: %v", err)
	}
	if p.store != nil {
		if err := p.store.Append(ctx, plan); err != nil {
			err = fmt.Errorf("store plan %s: %w", plan.ID, err)
			coremon.CaptureException(err, map[string]string{"plan_id": plan.ID, "module": "planstore"})
			return plan, err
		}
	}
	p.bus.Publish(PlanEvent{Plan: plan, Pending: r.pending})
	if p.publisher != nil {
		if err := p.publisher.PublishPlan(ctx, plan); err != nil {
			return plan, fmt.Errorf("publish plan %s: %w", plan.ID, err)
		}
	}
	p.log.Infow("allocation finished", map[string]any{
		"strategy":    plan.Strategy,
		"plan_id":     plan.ID,
		"records":     len(plan.Records),
		"unscheduled": ev.Unscheduled(),
		"pending":     len(r.pending),
	})
	return plan, nil
}

// Close releases the store, the publisher and closable sinks.
func (p *Planner) Close() error {
	var errs []error
	p.bus.Close()
	if p.store != nil {
		errs = append(errs, p.store.Close())
	}
	for _, c := range []any{p.publisher, p.sink} {
		if closer, ok := c.(io.Closer); ok {
			errs = append(errs, closer.Close())
		}
	}
	return errors.Join(errs...)
}
