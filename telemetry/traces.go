package telemetry

import (
	"context"
	"fmt"
	"strings"

	"github.com/gruntwork-io/fglob/internal/errors"
	"github.com/gruntwork-io/fglob/pkg/env"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type traceExporterType string

const (
	noneTraceExporterType    traceExporterType = "none"
	consoleTraceExporterType traceExporterType = "console"
)

// Trace runs fn inside a span with the given name and attributes. Without a configured exporter fn is
// invoked directly.
func Trace(ctx context.Context, name string, attrs map[string]any, fn func(childCtx context.Context) error) error {
	if rootTracer == nil {
		return fn(ctx)
	}

	ctx, span := rootTracer.Start(ctx, name)
	defer span.End()

	span.SetAttributes(mapToAttributes(attrs)...)

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return err
	}

	return nil
}

// NewTraceExporter creates the exporter selected by the options, or nil when tracing is disabled.
func NewTraceExporter(_ context.Context, opts *Options) (sdktrace.SpanExporter, error) {
	exporterType := traceExporterType(strings.ToLower(env.GetStringEnv(opts.Vars, TraceExporterEnvName, "")))

	switch exporterType {
	case consoleTraceExporterType:
		exporterOpts := []stdouttrace.Option{stdouttrace.WithWriter(opts.Writer)}

		if env.GetBoolEnv(opts.Vars, TracePrettyPrintEnvName, false) {
			exporterOpts = append(exporterOpts, stdouttrace.WithPrettyPrint())
		}

		exp, err := stdouttrace.New(exporterOpts...)
		if err != nil {
			return nil, errors.WithStackTrace(err)
		}

		return exp, nil
	case noneTraceExporterType, "":
		return nil, nil
	}

	return nil, errors.Errorf("invalid %s value %q, supported values: %s, %s",
		TraceExporterEnvName, exporterType, noneTraceExporterType, consoleTraceExporterType)
}

// mapToAttributes converts map to attributes to pass to span.SetAttributes.
func mapToAttributes(data map[string]any) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(data))

	for k, v := range data {
		switch val := v.(type) {
		case string:
			attrs = append(attrs, attribute.String(k, val))
		case int:
			attrs = append(attrs, attribute.Int(k, val))
		case bool:
			attrs = append(attrs, attribute.Bool(k, val))
		case []string:
			attrs = append(attrs, attribute.StringSlice(k, val))
		default:
			attrs = append(attrs, attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}

	return attrs
}
