// Package api provides the HTTP client for the remote glossary service.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/glosso-dev/glosso/internal/glossary"
)

//go:generate mockgen -source=client.go -destination=../../mocks/glossaryapi/mock_client.go -package=mock_glossaryapi Client

// Client defines the operations the glossary service exposes.
type Client interface {
	GetAll(ctx context.Context) ([]glossary.Entry, error)
	Search(ctx context.Context, query string, scope glossary.Language) ([]glossary.Entry, error)
	Create(ctx context.Context, entry glossary.Entry) (glossary.Entry, error)
	Update(ctx context.Context, id string, entry glossary.Entry) (glossary.Entry, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) error
	Export(ctx context.Context) ([]byte, error)
}

// APIError is a business error reported by the server in a {message} body.
// The edit session shows the message inline and stays open for a retry.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("glossary api error %d: %s", e.StatusCode, e.Message)
}

// HTTPClient implements Client against the /api/glossary HTTP collaborator.
type HTTPClient struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
}

// NewHTTPClient creates a client for the glossary service. baseURL must
// include the /api/glossary base path.
func NewHTTPClient(baseURL string, timeout time.Duration, retryAttempts uint) *HTTPClient {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{
		httpClient:       client,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *HTTPClient) Close() error {
	return client.httpClient.Close()
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	return false
}

// withRetry retries read-only calls with exponential backoff. Mutations are
// never routed through here: the server re-fetch discipline makes a blind
// retry of a create or delete unsafe.
func (client *HTTPClient) withRetry(ctx context.Context, call func() error) error {
	return retry.Do(
		func() error {
			if err := call(); err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

// GetAll returns every entry. Used for the initial load and for the refresh
// after every successful mutation.
func (client *HTTPClient) GetAll(ctx context.Context) ([]glossary.Entry, error) {
	var entries []glossary.Entry
	if err := client.withRetry(ctx, func() error {
		response, err := client.httpClient.R().
			SetContext(ctx).
			SetResult(&[]glossary.Entry{}).
			Get("/getAll")
		if err != nil {
			return fmt.Errorf("httpClient.Get(/getAll) > %w", err)
		}
		if response.IsError() {
			return responseError(response)
		}
		entries = *response.Result().(*[]glossary.Entry)
		return nil
	}); err != nil {
		return nil, err
	}
	return entries, nil
}

// Search returns entries whose words contain the query in the given scope.
func (client *HTTPClient) Search(ctx context.Context, query string, scope glossary.Language) ([]glossary.Entry, error) {
	var entries []glossary.Entry
	if err := client.withRetry(ctx, func() error {
		response, err := client.httpClient.R().
			SetContext(ctx).
			SetQueryParam("q", query).
			SetQueryParam("lang", string(scope)).
			SetResult(&[]glossary.Entry{}).
			Get("/search")
		if err != nil {
			return fmt.Errorf("httpClient.Get(/search) > %w", err)
		}
		if response.IsError() {
			return responseError(response)
		}
		entries = *response.Result().(*[]glossary.Entry)
		return nil
	}); err != nil {
		return nil, err
	}
	return entries, nil
}

type itemResponse struct {
	Item glossary.Entry `json:"item"`
}

// Create stores a new entry and returns the server's copy with its assigned
// id.
func (client *HTTPClient) Create(ctx context.Context, entry glossary.Entry) (glossary.Entry, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(entry).
		SetResult(&itemResponse{}).
		Post("/create")
	if err != nil {
		return glossary.Entry{}, fmt.Errorf("httpClient.Post(/create) > %w", err)
	}
	if response.IsError() {
		return glossary.Entry{}, responseError(response)
	}
	return response.Result().(*itemResponse).Item, nil
}

// Update replaces the entry with the given id.
func (client *HTTPClient) Update(ctx context.Context, id string, entry glossary.Entry) (glossary.Entry, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(entry).
		SetResult(&itemResponse{}).
		Put("/update/" + id)
	if err != nil {
		return glossary.Entry{}, fmt.Errorf("httpClient.Put(/update/%s) > %w", id, err)
	}
	if response.IsError() {
		return glossary.Entry{}, responseError(response)
	}
	return response.Result().(*itemResponse).Item, nil
}

// Delete removes a single entry.
func (client *HTTPClient) Delete(ctx context.Context, id string) error {
	response, err := client.httpClient.R().
		SetContext(ctx).
		Delete("/delete/" + id)
	if err != nil {
		return fmt.Errorf("httpClient.Delete(/delete/%s) > %w", id, err)
	}
	if response.IsError() {
		return responseError(response)
	}
	return nil
}

type deleteManyRequest struct {
	IDs []string `json:"ids"`
}

// DeleteMany removes all entries with the given ids in one call.
func (client *HTTPClient) DeleteMany(ctx context.Context, ids []string) error {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(deleteManyRequest{IDs: ids}).
		Post("/delete-multiple")
	if err != nil {
		return fmt.Errorf("httpClient.Post(/delete-multiple) > %w", err)
	}
	if response.IsError() {
		return responseError(response)
	}
	return nil
}

// Export returns the server's JSON export blob unparsed.
func (client *HTTPClient) Export(ctx context.Context) ([]byte, error) {
	var blob []byte
	if err := client.withRetry(ctx, func() error {
		response, err := client.httpClient.R().
			SetContext(ctx).
			Get("/export")
		if err != nil {
			return fmt.Errorf("httpClient.Get(/export) > %w", err)
		}
		if response.IsError() {
			return responseError(response)
		}
		blob = response.Bytes()
		return nil
	}); err != nil {
		return nil, err
	}
	return blob, nil
}

// responseError converts a non-2xx response into an error. A 4xx body
// carrying {message} becomes an *APIError so dialogs can surface it inline.
func responseError(response *resty.Response) error {
	status := response.StatusCode()
	if status >= 400 && status < 500 {
		var body struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(response.Bytes(), &body); err == nil && body.Message != "" {
			return &APIError{StatusCode: status, Message: body.Message}
		}
	}
	return fmt.Errorf("response error %d: %s", status, response.String())
}
