package automaton

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("github.com/geange/automaton/v2")
	meter  = otel.Meter("github.com/geange/automaton/v2")
)

var (
	operationLatency metric.Float64Histogram
	operationTotal   metric.Int64Counter
	statesProduced   metric.Int64Histogram
	refinementPasses metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		operationLatency, err = meter.Float64Histogram(
			"automaton_operation_duration_seconds",
			metric.WithDescription("Duration of determinization and minimization"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		operationTotal, err = meter.Int64Counter(
			"automaton_operation_total",
			metric.WithDescription("Total number of determinization and minimization runs"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		statesProduced, err = meter.Int64Histogram(
			"automaton_states_produced",
			metric.WithDescription("Number of states in the resulting automaton"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		refinementPasses, err = meter.Int64Histogram(
			"automaton_minimize_passes",
			metric.WithDescription("Number of table filling passes until the fixpoint"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func recordOperationMetrics(ctx context.Context, operation string, duration time.Duration, states int, err error) {
	if initMetrics() != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("success", err == nil),
	)
	operationLatency.Record(ctx, duration.Seconds(), attrs)
	operationTotal.Add(ctx, 1, attrs)
	if err == nil {
		statesProduced.Record(ctx, int64(states), metric.WithAttributes(attribute.String("operation", operation)))
	}
}

func recordRefinementPasses(ctx context.Context, passes int) {
	if initMetrics() != nil {
		return
	}
	refinementPasses.Record(ctx, int64(passes))
}

// loggerWithTrace returns the default logger with the active span ids added.
func loggerWithTrace(ctx context.Context) *slog.Logger {
	logger := slog.Default()
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return logger
	}
	return logger.With(
		slog.String("trace_id", spanCtx.TraceID().String()),
		slog.String("span_id", spanCtx.SpanID().String()),
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
