package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("automatic-tournament/internal/interfaces/httpapi")

// startSpan opens a child span for handler methods only. Helpers, and
// routes without a request span such as /healthz, get a no-op span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !shouldCreateHTTPAPISpan(name) || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noop.Span{}
	}
	return apiTracer.Start(ctx, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}
