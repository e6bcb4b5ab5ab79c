package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jsamuelsen/networker-service/internal/adapters/clients"
	"github.com/jsamuelsen/networker-service/internal/domain"
	"github.com/jsamuelsen/networker-service/internal/platform/logging"
)

// BaseAdapter provides common functionality for ACL adapters.
// Embed this in service-specific adapters.
type BaseAdapter struct {
	client *clients.Client
}

// NewBaseAdapter creates a new base adapter around the given client.
func NewBaseAdapter(client *clients.Client) BaseAdapter {
	return BaseAdapter{client: client}
}

// Client returns the underlying HTTP client.
func (a *BaseAdapter) Client() *clients.Client {
	return a.client
}

// ServiceName returns the name of the external service.
func (a *BaseAdapter) ServiceName() string {
	return a.client.ServiceName()
}

// Send executes a request and converts failed outcomes into domain errors.
// Successful and empty outcomes are returned to the caller.
func (a *BaseAdapter) Send(ctx context.Context, req clients.Request, operation string) (*clients.Outcome, error) {
	logger := logging.FromContext(ctx)
	logger.Log(ctx, logging.LevelTrace, "starting request",
		slog.String("operation", operation),
		slog.String("method", req.Method),
		slog.String("path", req.Path))

	outcome, err := a.client.Send(ctx, req)
	if err != nil {
		return nil, err
	}

	logger.Log(ctx, logging.LevelTrace, "request complete",
		slog.String("operation", operation),
		slog.String("outcome", outcome.Kind.String()),
		slog.Int("status", outcome.StatusCode))

	if outcome.Kind == clients.OutcomeFailure {
		classified := ClassifyFailure(outcome)
		logger.WarnContext(ctx, "networker request failed",
			slog.String("operation", operation),
			slog.Int("status", outcome.StatusCode),
			slog.Any("error", classified))

		return nil, classified
	}

	return outcome, nil
}

// Get performs a GET request.
func (a *BaseAdapter) Get(ctx context.Context, path string, params url.Values, operation string) (*clients.Outcome, error) {
	return a.Send(ctx, clients.Request{Method: http.MethodGet, Path: path, Params: params}, operation)
}

// Post performs a POST request. A nil body sends no payload.
func (a *BaseAdapter) Post(ctx context.Context, path string, body any, operation string) (*clients.Outcome, error) {
	return a.Send(ctx, clients.Request{Method: http.MethodPost, Path: path, Body: body}, operation)
}

// DecodeResponse decodes a successful outcome into the target type.
// A missing payload yields a zero value.
func DecodeResponse[T any](outcome *clients.Outcome) (*T, error) {
	var result T
	if outcome == nil {
		return &result, nil
	}

	if err := outcome.Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// ValidateRequired checks that a required field is not empty.
// Returns a domain.ValidationError if the field is empty.
func ValidateRequired(value, fieldName string) error {
	if value == "" {
		return domain.NewValidationError(fieldName, "is required")
	}

	return nil
}

// Translator is a function type that translates an external DTO to a domain type.
// The function should validate the external data and return a domain error
// if validation fails.
type Translator[External any, Domain any] func(ext *External) (*Domain, error)

// TranslateSlice applies a translator function to a slice of external DTOs.
// If any translation fails, returns the first error encountered.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]*D, error) {
	result := make([]*D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, translated)
	}

	return result, nil
}
