package telemetry

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const meterName = "github.com/jsamuelsen/quotebook/internal/platform/telemetry"

// HeaderTraceID carries the request's trace ID back to the caller.
const HeaderTraceID = "X-Trace-ID"

// opsPrefix marks probe and scrape routes, which are neither traced nor
// counted.
const opsPrefix = "/-/"

type serverInstruments struct {
	duration metric.Float64Histogram
	requests metric.Int64Counter
	inFlight metric.Int64UpDownCounter
}

func newServerInstruments() (*serverInstruments, error) {
	meter := otel.Meter(meterName)

	var (
		in  serverInstruments
		err error
	)

	in.duration, err = meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("Time spent serving page, form and API requests"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	in.requests, err = meter.Int64Counter("http.server.request.total",
		metric.WithDescription("Requests served, by route and status"))
	if err != nil {
		return nil, err
	}

	in.inFlight, err = meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("Requests currently being served"))
	if err != nil {
		return nil, err
	}

	return &in, nil
}

// Middleware returns the tracing handler followed by the metrics handler.
// Spans come from otelgin; the metrics handler also echoes the trace ID in
// HeaderTraceID.
func Middleware(serviceName string) []gin.HandlerFunc {
	tracing := otelgin.Middleware(serviceName, otelgin.WithFilter(func(r *http.Request) bool {
		return !isOps(r.URL.Path)
	}))

	return []gin.HandlerFunc{tracing, metricsHandler()}
}

func metricsHandler() gin.HandlerFunc {
	in, err := newServerInstruments()
	if err != nil {
		// Requests are still served; only the instruments are lost.
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			c.Header(HeaderTraceID, sc.TraceID().String())
		}

		if in == nil || isOps(c.Request.URL.Path) {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		start := time.Now()
		route := metric.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", c.FullPath()),
		)

		in.inFlight.Add(ctx, 1, route)
		defer in.inFlight.Add(ctx, -1, route)

		c.Next()

		done := metric.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", c.FullPath()),
			attribute.Int("http.status_code", c.Writer.Status()),
		)
		in.duration.Record(ctx, time.Since(start).Seconds(), done)
		in.requests.Add(ctx, 1, done)
	}
}

func isOps(path string) bool {
	return strings.HasPrefix(path, opsPrefix)
}
