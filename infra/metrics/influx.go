package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/homeload/core/metrics"
	"github.com/kilianp07/homeload/infra/logger"
)

// InfluxSink writes allocation records to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordAllocation writes one point per allocation record in a single batch.
// Records without their own timestamp use the plan time.
func (s *InfluxSink) RecordAllocation(ev coremetrics.AllocationEvent) error {
	if len(ev.Records) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	points := make([]*write.Point, 0, len(ev.Records))
	for _, r := range ev.Records {
		ts := r.Time
		if ts.IsZero() {
			ts = ev.Time
		}
		p := write.NewPointWithMeasurement("allocation_record").
			AddTag("plan_id", ev.PlanID).
			AddTag("strategy", ev.Strategy.String()).
			AddTag("resource", r.Resource).
			AddTag("kind", r.Kind.String())
		if r.Slot != "" {
			p = p.AddTag("slot", r.Slot)
		}
		p = p.AddField("amount", round3(r.Amount)).
			AddField("priority", r.Priority).
			SetTime(ts)
		points = append(points, p)
	}
	return s.writeAPI.WritePoint(ctx, points...)
}

// RecordFailure writes a failed allocation run.
func (s *InfluxSink) RecordFailure(ev coremetrics.FailureEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("allocation_failure").
		AddTag("strategy", ev.Strategy.String()).
		AddField("reason", ev.Reason).
		AddField("count", 1).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close flushes and releases the InfluxDB client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
