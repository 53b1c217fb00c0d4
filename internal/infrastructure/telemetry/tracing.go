package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the tracer of service-level spans.
const TracerName = "trustchain-api"

// Span attribute keys of service-level spans.
var (
	AttrRecordID    = attribute.Key("resource.id")
	AttrResultCount = attribute.Key("result.count")
)

// StartServiceSpan starts an internal span named "<service>.<method>" on the
// global tracer provider.
//
//	ctx, span := telemetry.StartServiceSpan(ctx, "subsidy", "update", telemetry.AttrRecordID.String(id))
//	defer span.End()
func StartServiceSpan(ctx context.Context, service, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, service+"."+method,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// RecordError marks span failed with err. A nil err leaves span untouched.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
