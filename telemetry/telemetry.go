// Package telemetry records traces of find calls with OpenTelemetry. Tracing is disabled unless an exporter is
// configured, in which case every task walk becomes a span.
package telemetry

import (
	"context"
	"io"
	"os"

	"github.com/gruntwork-io/fglob/internal/errors"
	"github.com/gruntwork-io/fglob/pkg/env"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TraceExporterEnvName selects the trace exporter: `none` (default) or `console`.
	TraceExporterEnvName = "FGLOB_TELEMETRY_TRACE_EXPORTER"
	// TracePrettyPrintEnvName makes the console exporter indent its output.
	TracePrettyPrintEnvName = "FGLOB_TELEMETRY_TRACE_PRETTY_PRINT"
)

var (
	traceProvider *sdktrace.TracerProvider
	rootTracer    trace.Tracer
)

// Options configures telemetry.
type Options struct {
	// Vars holds environment variables, usually from os.Environ.
	Vars map[string]string
	// Writer receives the spans of the console exporter.
	Writer     io.Writer
	AppName    string
	AppVersion string
}

// Configure sets up trace collection according to the options.
func Configure(ctx context.Context, opts *Options) error {
	exp, err := NewTraceExporter(ctx, opts)
	if err != nil {
		return err
	}

	if exp == nil {
		return nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", opts.AppName),
			attribute.String("service.version", opts.AppVersion),
		),
	)
	if err != nil {
		return errors.WithStackTrace(err)
	}

	traceProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(traceProvider)
	rootTracer = traceProvider.Tracer(opts.AppName)

	return nil
}

// Shutdown flushes the pending spans and stops trace collection.
func Shutdown(ctx context.Context) error {
	if traceProvider == nil {
		return nil
	}

	err := traceProvider.Shutdown(ctx)

	traceProvider = nil
	rootTracer = nil

	return errors.WithStackTrace(err)
}

// EnvVars returns the process environment as a map.
func EnvVars() map[string]string {
	return env.Parse(os.Environ())
}
