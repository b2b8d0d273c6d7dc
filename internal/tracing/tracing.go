package tracing

import (
	"context"

	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Controller owns the global tracer provider.
type Controller struct {
	traceProvider *sdktrace.TracerProvider
}

// MustInit sets up the jaeger-backed tracer provider.
func MustInit() *Controller {
	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(
		jaeger.WithEndpoint(viper.GetString("tracing.jaeger_endpoint")),
	))
	if err != nil {
		panic(err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("storefront-svc"),
		)),
	)

	otel.SetTracerProvider(tp)

	return &Controller{
		traceProvider: tp,
	}
}

func (c *Controller) Shutdown() error {
	return c.traceProvider.Shutdown(context.Background())
}
