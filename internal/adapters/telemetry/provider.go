package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/npmwrap/internal/core/ports"
)

// InstrumentationName names the tracer used for launches.
const InstrumentationName = "go.trai.ch/npmwrap"

// Setup installs a global tracer provider. When logger is not nil, finished
// spans are reported through it. The returned function flushes and stops the
// provider.
func Setup(logger ports.Logger) func(context.Context) error {
	opts := []sdktrace.TracerProviderOption{}
	if logger != nil {
		opts = append(opts, sdktrace.WithSpanProcessor(NewBridge(logger)))
	}
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}
