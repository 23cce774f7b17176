package telemetry

import (
	"context"
	"log/slog"
	"os"
	"time"

	"dekamer-scraper/lib/configutil"

	"github.com/lmittmann/tint"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// InitSlog replaces the default slog logger with a tint handler writing to
// stderr, keeping stdout free for command output.
func InitSlog() {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
}

type OtlpConnConfig struct {
	GrpcEndpoint string            `json:"grpc_endpoint"`
	HttpEndpoint string            `json:"http_endpoint"`
	Headers      map[string]string `json:"headers"`
}

type OtlpConfig struct {
	Traces OtlpConnConfig `json:"traces"`
}

type Config struct {
	Otlp OtlpConfig `json:"otlp"`
}

// SetupFromEnv searches up the filesystem from the cwd for a telemetry.json5
// file and sets up an OTLP trace provider from it. Without a config file the
// global tracer stays a no-op, which is the normal mode for one-shot runs.
// The returned function flushes and shuts down the provider.
func SetupFromEnv(ctx context.Context, serviceName string) func(context.Context) {
	noop := func(context.Context) {}

	config, err := configutil.ReadRecursively[Config]("telemetry.json5")
	if os.IsNotExist(err) {
		return noop
	}
	if err != nil {
		slog.Warn("failed to read telemetry config", "err", err)
		return noop
	}

	provider, err := newTraceProvider(ctx, serviceName, config)
	if err != nil {
		slog.Warn("failed to setup trace provider", "err", err)
		return noop
	}
	otel.SetTracerProvider(provider)

	return func(ctx context.Context) {
		if err := provider.Shutdown(ctx); err != nil {
			slog.Warn("failed to shutdown trace provider", "err", err)
		}
	}
}

func newTraceProvider(ctx context.Context, serviceName string, config Config) (*trace.TracerProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*3)
	defer cancel()

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, err
	}

	exporter, err := newTraceExporter(ctx, config)
	if err != nil {
		return nil, err
	}

	return trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(r),
	), nil
}

func newTraceExporter(ctx context.Context, c Config) (trace.SpanExporter, error) {
	if c.Otlp.Traces.GrpcEndpoint != "" {
		return otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpointURL(c.Otlp.Traces.GrpcEndpoint),
			otlptracegrpc.WithHeaders(c.Otlp.Traces.Headers),
		)
	}
	return otlptracehttp.New(
		ctx,
		otlptracehttp.WithEndpointURL(c.Otlp.Traces.HttpEndpoint),
		otlptracehttp.WithHeaders(c.Otlp.Traces.Headers),
	)
}
