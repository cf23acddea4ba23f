package app

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vk/take"

// tracing owns the tracer provider selected by the trace exporter flag.
type tracing struct {
	provider *sdktrace.TracerProvider
}

func newTracing(exporter string, w io.Writer) (*tracing, error) {
	if exporter != TraceExporterStdout {
		return &tracing{}, nil
	}
	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
	}
	return &tracing{provider: sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))}, nil
}

func (t *tracing) tracer() trace.Tracer {
	if t.provider == nil {
		return otel.Tracer(tracerName)
	}
	return t.provider.Tracer(tracerName)
}

// shutdown flushes pending spans.
func (t *tracing) shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
