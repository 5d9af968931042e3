package telemetry

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type Telemetry struct {
	TracerProvider *trace.TracerProvider
}

func (t Telemetry) Shutdown(ctx context.Context) error {
	if t.TracerProvider == nil {
		return nil
	}
	return t.TracerProvider.Shutdown(ctx)
}

type OtlpConnConfig struct {
	GrpcEndpoint string            `json:"grpc_endpoint"`
	HttpEndpoint string            `json:"http_endpoint"`
	Headers      map[string]string `json:"headers"`
}

type Config struct {
	Traces OtlpConnConfig `json:"traces"`
}

// Setup installs a global tracer provider for the process. Without a
// configured OTLP endpoint spans are still created but never exported.
func Setup(ctx context.Context, serviceName string, config Config) (Telemetry, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*15)
	defer cancel()

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return Telemetry{}, err
	}

	opts := []trace.TracerProviderOption{trace.WithResource(r)}

	switch {
	case config.Traces.GrpcEndpoint != "":
		exporter, err := otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpoint(config.Traces.GrpcEndpoint),
			otlptracegrpc.WithHeaders(config.Traces.Headers),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return Telemetry{}, err
		}
		opts = append(opts, trace.WithBatcher(exporter))
	case config.Traces.HttpEndpoint != "":
		exporter, err := otlptracehttp.New(
			ctx,
			otlptracehttp.WithEndpoint(config.Traces.HttpEndpoint),
			otlptracehttp.WithHeaders(config.Traces.Headers),
			otlptracehttp.WithInsecure(),
		)
		if err != nil {
			return Telemetry{}, err
		}
		opts = append(opts, trace.WithBatcher(exporter))
	}

	tracerProvider := trace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tracerProvider)

	return Telemetry{TracerProvider: tracerProvider}, nil
}

var setupTestEnvironments = map[string]bool{}

// sets up telemetry in a testing environment, ensuring that it isn't
// set up more than once per service name
func SetupForTesting(t testing.TB, serviceName string) func() {
	if setupTestEnvironments[serviceName] {
		return func() {}
	}
	setupTestEnvironments[serviceName] = true

	tel, err := Setup(context.Background(), serviceName, Config{})
	if err != nil {
		t.Fatal(err)
	}
	return func() {
		err := tel.Shutdown(context.Background())
		if err != nil {
			t.Fatal(err)
		}
	}
}
