// Package opentelemetry exports the traces of the http api to an otel collector.
package opentelemetry

import (
	"context"

	"github.com/LambdaTest/knapsack/config"
	"github.com/LambdaTest/knapsack/pkg/constants"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
)

// InitTracer registers a global tracer provider exporting to the configured collector.
// The returned func flushes and stops the provider.
func InitTracer(ctx context.Context, cfg *config.Config, logger lumber.Logger) func(context.Context) error {
	client := otlptracegrpc.NewClient(
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(cfg.Tracing.OtelEndpoint),
	)
	exporter, err := otlptrace.New(ctx, client)
	if err != nil {
		logger.Errorf("failed to create otel exporter, error: %v", err)
		return func(context.Context) error { return nil }
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(serviceResource(cfg)),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	logger.Infof("Tracing enabled, exporting to %s", cfg.Tracing.OtelEndpoint)
	return provider.Shutdown
}

func serviceResource(cfg *config.Config) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(constants.ServiceName),
		semconv.ServiceVersionKey.String(constants.BinaryVersion),
		semconv.DeploymentEnvironmentKey.String(cfg.Env),
	)
}
