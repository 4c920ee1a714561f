package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "screenctl"

// Metrics holds the metric instruments. All counters are monotonic and safe
// for concurrent use.
type Metrics struct {
	Commands        metric.Int64Counter
	CommandFailures metric.Int64Counter
	SessionsListed  metric.Int64Counter
}

// NewMetrics creates the instruments. They are no-ops when no MeterProvider
// is registered.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Commands, err = meter.Int64Counter("screen.commands",
		metric.WithDescription("Shell commands run against screen, by variant"))
	if err != nil {
		return nil, err
	}

	m.CommandFailures, err = meter.Int64Counter("screen.command_failures",
		metric.WithDescription("Shell commands that failed to spawn or exited non-zero"))
	if err != nil {
		return nil, err
	}

	m.SessionsListed, err = meter.Int64Counter("screen.sessions_listed",
		metric.WithDescription("Sessions returned by listings"),
		metric.WithUnit("{session}"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordCommand records one finished command.
func (m *Metrics) RecordCommand(ctx context.Context, variant string, ok bool) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("command.variant", variant))
	m.Commands.Add(ctx, 1, attrs)
	if !ok {
		m.CommandFailures.Add(ctx, 1, attrs)
	}
}

// RecordListing records the number of sessions a listing produced.
func (m *Metrics) RecordListing(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.SessionsListed.Add(ctx, int64(n))
}
