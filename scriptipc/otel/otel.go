// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

// Package scriptotel provides OpenTelemetry instrumentation for scriptipc
// servers. It implements the [scriptipc.DispatchHook] interface to add
// tracing and metrics to request dispatch.
//
// Usage:
//
//	ch := proc.Channel()
//	scriptotel.InstrumentChannel(ch, scriptotel.DefaultConfig())
//	err := ch.Execute(ctx, world.NewWorldServer(impl))
package scriptotel

import (
	"context"
	"fmt"
	"time"

	"github.com/Query-farm/script-ipc/scriptipc"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "script_ipc"

// Config configures OpenTelemetry instrumentation for a scriptipc channel.
type Config struct {
	// TracerProvider supplies the tracer. Defaults to otel.GetTracerProvider().
	TracerProvider trace.TracerProvider
	// MeterProvider supplies the meter. Defaults to otel.GetMeterProvider().
	MeterProvider metric.MeterProvider
	// EnableTracing enables span creation. Default true.
	EnableTracing bool
	// EnableMetrics enables counter and histogram recording. Default true.
	EnableMetrics bool
	// RecordExceptions calls RecordError on the span for failed dispatches.
	// Default true.
	RecordExceptions bool
	// CustomAttributes are added to every span.
	CustomAttributes []attribute.KeyValue
}

// DefaultConfig returns a Config with tracing, metrics and exception
// recording on. Providers are resolved from the global SDK when the
// channel is instrumented.
func DefaultConfig() Config {
	return Config{
		EnableTracing:    true,
		EnableMetrics:    true,
		RecordExceptions: true,
	}
}

// InstrumentChannel installs a dispatch hook on ch that traces and counts
// every request Execute serves.
func InstrumentChannel(ch *scriptipc.Channel, cfg Config) {
	ch.SetDispatchHook(NewHook(cfg))
}

// NewHook returns the dispatch hook InstrumentChannel installs.
func NewHook(cfg Config) scriptipc.DispatchHook {
	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}
	if cfg.MeterProvider == nil {
		cfg.MeterProvider = otel.GetMeterProvider()
	}

	hook := &otelHook{
		cfg:    cfg,
		tracer: cfg.TracerProvider.Tracer(instrumentationName),
	}

	if cfg.EnableMetrics {
		meter := cfg.MeterProvider.Meter(instrumentationName)
		hook.requestCounter, _ = meter.Int64Counter("rpc.server.requests",
			metric.WithUnit("{request}"),
			metric.WithDescription("Number of IPC requests"),
		)
		hook.durationHistogram, _ = meter.Float64Histogram("rpc.server.duration",
			metric.WithUnit("s"),
			metric.WithDescription("Duration of IPC requests"),
		)
	}
	return hook
}

type otelHook struct {
	cfg               Config
	tracer            trace.Tracer
	requestCounter    metric.Int64Counter
	durationHistogram metric.Float64Histogram
}

type spanToken struct {
	span      trace.Span
	startTime time.Time
}

// OnDispatchStart starts a server span named after the method.
func (h *otelHook) OnDispatchStart(ctx context.Context, info scriptipc.DispatchInfo) (context.Context, scriptipc.HookToken) {
	if !h.cfg.EnableTracing {
		return ctx, &spanToken{startTime: time.Now()}
	}

	attrs := []attribute.KeyValue{
		attribute.String("rpc.system", "script_ipc"),
		attribute.String("rpc.service", info.Service),
		attribute.String("rpc.method", info.Method),
		attribute.Int64("rpc.script_ipc.method_id", int64(info.MethodID)),
		attribute.String("rpc.script_ipc.server_id", info.ServerID),
	}
	attrs = append(attrs, h.cfg.CustomAttributes...)

	ctx, span := h.tracer.Start(ctx, fmt.Sprintf("script_ipc/%s", info.Method),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attrs...),
	)
	return ctx, &spanToken{span: span, startTime: time.Now()}
}

// OnDispatchEnd records metrics and ends the span.
func (h *otelHook) OnDispatchEnd(ctx context.Context, token scriptipc.HookToken, info scriptipc.DispatchInfo, stats *scriptipc.CallStatistics, err error) {
	st, ok := token.(*spanToken)
	if !ok {
		return
	}
	duration := time.Since(st.startTime)

	status := "ok"
	if err != nil {
		status = "error"
	}

	if h.cfg.EnableMetrics {
		metricAttrs := metric.WithAttributes(
			attribute.String("rpc.system", "script_ipc"),
			attribute.String("rpc.service", info.Service),
			attribute.String("rpc.method", info.Method),
			attribute.String("status", status),
		)
		if h.requestCounter != nil {
			h.requestCounter.Add(ctx, 1, metricAttrs)
		}
		if h.durationHistogram != nil {
			h.durationHistogram.Record(ctx, duration.Seconds(), metricAttrs)
		}
	}

	if st.span == nil || !st.span.IsRecording() {
		return
	}
	if stats != nil {
		st.span.SetAttributes(
			attribute.Int64("rpc.script_ipc.request_bytes", stats.RequestBytes),
			attribute.Int64("rpc.script_ipc.response_bytes", stats.ResponseBytes),
			attribute.Int64("rpc.script_ipc.error_code", int64(stats.ErrorCode)),
		)
	}
	if err != nil {
		st.span.SetStatus(codes.Error, err.Error())
		if h.cfg.RecordExceptions {
			st.span.RecordError(err)
		}
		st.span.SetAttributes(attribute.String("rpc.script_ipc.error_type", scriptipc.CodeOf(err).String()))
	} else {
		st.span.SetStatus(codes.Ok, "")
	}
	st.span.End()
}
