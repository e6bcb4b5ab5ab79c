package clients

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/networker-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/networker-service/internal/domain"
	"github.com/jsamuelsen/networker-service/internal/platform/logging"
)

const (
	// instrumentationName is used for OpenTelemetry tracer and meter.
	instrumentationName = "github.com/jsamuelsen/networker-service/internal/adapters/clients"

	// httpStatusCategoryDivisor divides status code to get category (2xx, 4xx, 5xx).
	httpStatusCategoryDivisor = 100

	// defaultTimeout is the default request timeout if not configured.
	defaultTimeout = 30 * time.Second

	// defaultServiceName identifies Networker in logs and spans.
	defaultServiceName = "networker"

	contentTypeJSON = "application/json"
)

// Config configures a Networker client instance.
type Config struct {
	// Hostname is the absolute URL of the Networker server (e.g., "https://networker:9090").
	Hostname string

	// Username and Password are sent with every request using Basic authentication.
	Username string
	Password string

	// InsecureSkipVerify disables TLS certificate validation.
	InsecureSkipVerify bool

	// APIBasePath and APIVersion override the endpoint defaults ("nwrestapi", "v3").
	APIBasePath string
	APIVersion  string

	// ServiceName identifies the downstream service for logging and tracing.
	ServiceName string

	// Timeout bounds a single request. Zero uses the default.
	Timeout time.Duration

	// Logger is an optional logger. If nil, a default logger is used.
	Logger *slog.Logger
}

// Client issues authenticated requests against the Networker REST API.
// It is immutable after construction and keeps no state between requests,
// so one Client may be shared by sequential operations.
//
// It provides:
//   - Endpoint composition (base path and version)
//   - Basic authentication and JSON headers
//   - Response classification into Outcomes
//   - OpenTelemetry tracing and metrics
//   - Request/correlation ID propagation
type Client struct {
	http        *http.Client
	hostname    string
	username    string
	password    string
	basePath    string
	version     string
	serviceName string
	logger      *slog.Logger

	tracer trace.Tracer

	// Metrics
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// New creates a new Networker client.
// Missing hostname, username or password yields an access denied error
// without contacting the server.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Hostname == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, domain.NewAccessDeniedError(MissingCredentialsMessage)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	// Set up logger
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(
		slog.String("component", "clients.Client"),
		slog.String("downstream", serviceName),
	)

	// Initialize telemetry
	tracer := otel.Tracer(instrumentationName)
	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of Networker API requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requestTotal, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Total number of Networker API requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via validate_certs=false
	}

	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		hostname:        cfg.Hostname,
		username:        cfg.Username,
		password:        cfg.Password,
		basePath:        cfg.APIBasePath,
		version:         cfg.APIVersion,
		serviceName:     serviceName,
		logger:          logger,
		tracer:          tracer,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

// Request describes a single Networker API call.
type Request struct {
	// Method defaults to GET.
	Method string

	// Path is the resource path below /{base path}/{version}/.
	Path string

	// Body is serialised as JSON for POST, PUT and PATCH when non-nil.
	Body any

	// Params replaces the query string when non-empty.
	Params url.Values

	// Headers override the default headers, including Authorization.
	Headers map[string]string
}

// Send executes exactly one request and classifies the response.
//
// A 200 response must carry JSON; anything else is reported as ErrInvalidJSON.
// 201 and 204 yield an empty Outcome without reading the body. Every other
// status, and transport failures without a response, yield a failed Outcome
// for the caller to classify. Send never retries.
func (c *Client) Send(ctx context.Context, r Request) (*Outcome, error) {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("downstream", c.serviceName),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	// Create span
	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("HTTP %s %s", req.Method, c.serviceName),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	// Propagate trace context
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.recordMetrics(ctx, req.Method, 0, time.Since(startTime), "error")
		logger.Warn("request failed", slog.Any("error", err))

		return &Outcome{Kind: OutcomeFailure, Message: err.Error()}, nil
	}
	defer func() { _ = resp.Body.Close() }()

	duration := time.Since(startTime)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	statusCategory := fmt.Sprintf("%dxx", resp.StatusCode/httpStatusCategoryDivisor)
	c.recordMetrics(ctx, req.Method, resp.StatusCode, duration, statusCategory)

	logger.Debug("request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
	)

	outcome, err := classify(resp)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if outcome.Kind == OutcomeFailure {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	return outcome, nil
}

// newRequest builds the HTTP request for r, including URL, body and headers.
func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	method := strings.ToUpper(r.Method)
	if method == "" {
		method = http.MethodGet
	}

	endpoint, err := c.Endpoint(r.Path, r.Params)
	if err != nil {
		return nil, err
	}

	body := io.Reader(http.NoBody)
	if r.Body != nil && hasBody(method) {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.injectHeaders(ctx, req, r.Headers)

	return req, nil
}

// Endpoint returns the absolute URL for a resource path using the client's base path and version.
func (c *Client) Endpoint(path string, params url.Values) (string, error) {
	return BuildEndpoint(c.hostname, path, params,
		WithAPIBasePath(c.basePath),
		WithAPIVersion(c.version),
	)
}

// Hostname returns the configured Networker URL.
func (c *Client) Hostname() string {
	return c.hostname
}

// ServiceName returns the downstream service name used in logs and spans.
func (c *Client) ServiceName() string {
	return c.serviceName
}

// injectHeaders adds JSON headers, credentials, request ID and correlation ID.
// Caller-supplied headers are applied last and win.
func (c *Client) injectHeaders(ctx context.Context, req *http.Request, extra map[string]string) {
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("Content-Type", contentTypeJSON)
	req.SetBasicAuth(c.username, c.password)

	// Propagate request ID
	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}

	// Propagate correlation ID
	if correlationID := middleware.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set(middleware.HeaderCorrelationID, correlationID)
	}

	for k, v := range extra {
		req.Header.Set(k, v)
	}
}

// recordMetrics records request metrics.
func (c *Client) recordMetrics(ctx context.Context, method string, statusCode int, duration time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}

	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	c.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	c.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// hasBody reports whether a JSON body is sent for the method.
func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}
