package telemetry

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/jsamuelsen/networker-service/telemetry"

	// HeaderTraceID echoes the trace of a sampled request.
	HeaderTraceID = "X-Trace-ID"

	unmatchedRoute = "unmatched"
)

// Prometheus collectors served on /-/metrics. They are always populated,
// so request rates are visible without an OTLP collector.
var (
	promRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "networker_gateway",
		Name:      "http_requests_total",
		Help:      "HTTP requests handled, by method, route and status.",
	}, []string{"method", "route", "status"})

	promDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "networker_gateway",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency, including any refresh wait.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"method", "route"})
)

// Metrics holds the OpenTelemetry HTTP server instruments.
type Metrics struct {
	requestDuration metric.Float64Histogram
	activeRequests  metric.Int64UpDownCounter
}

// NewMetrics creates the instruments on the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		requestDuration: requestDuration,
		activeRequests:  activeRequests,
	}, nil
}

// Middleware returns the tracing handler followed by the metrics handler.
// Register both, in order, on the engine.
func Middleware(serviceName string) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		TracingMiddleware(serviceName),
		MetricsMiddleware(),
	}
}

// TracingMiddleware starts a server span per request with otelgin.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// MetricsMiddleware records request metrics to OpenTelemetry and Prometheus
// and sets X-Trace-ID when the request is traced. Instrument creation
// failures go to otel.Handle and leave only the Prometheus metrics.
func MetricsMiddleware() gin.HandlerFunc {
	metrics, err := NewMetrics()
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		start := time.Now()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}

		routeAttrs := metric.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
		)

		if metrics != nil {
			metrics.activeRequests.Add(c.Request.Context(), 1, routeAttrs)
			defer metrics.activeRequests.Add(c.Request.Context(), -1, routeAttrs)
		}

		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			c.Header(HeaderTraceID, sc.TraceID().String())
		}

		c.Next()

		elapsed := time.Since(start).Seconds()
		status := c.Writer.Status()

		promRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		promDuration.WithLabelValues(c.Request.Method, route).Observe(elapsed)

		if metrics != nil {
			metrics.requestDuration.Record(c.Request.Context(), elapsed, metric.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
				attribute.Int("http.status_code", status),
			))
		}
	}
}
