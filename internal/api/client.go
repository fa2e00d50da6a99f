// Package api is the HTTP implementation of the workflow collaborators: the
// Registrar behind the registration wizard and the Enroller behind the
// assignment wizard. The wizards themselves never import this package; they
// see only the interfaces it satisfies.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/aerotrain/flightdeck/internal/account"
	"github.com/aerotrain/flightdeck/internal/enroll"
	"github.com/aerotrain/flightdeck/internal/jsonutil"
)

const defaultTimeout = 30 * time.Second

// Client talks JSON to the marketplace API. It implements account.Registrar
// and enroll.Enroller.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying http.Client. Useful in tests with
// httptest servers and custom transports.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithClientLogger attaches a structured logger. When nil the client is silent.
func WithClientLogger(logger *log.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client for the API at baseURL (no trailing slash).
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// registerResponse is the success payload of POST /accounts.
type registerResponse struct {
	Message string `json:"message"`
}

// errorResponse is the error payload shape the API uses for all non-2xx
// responses.
type errorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Register implements account.Registrar against POST /accounts. A 409 is
// returned as *ConflictError so the registration workflow can pin the
// duplicate-email message to the email field.
func (c *Client) Register(ctx context.Context, req account.Request) (string, error) {
	var resp registerResponse
	if err := c.post(ctx, "/accounts", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// AssignTraining implements enroll.Enroller against POST /assignments.
func (c *Client) AssignTraining(ctx context.Context, req enroll.Request) error {
	return c.post(ctx, "/assignments", req, nil)
}

// post sends payload as JSON and decodes a 2xx body into out (when non-nil).
// Non-2xx responses become *ConflictError (409) or *APIError; the server's
// message is recovered even from wrapped or non-JSON bodies.
func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("api: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("api: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	// The idempotency key is derived from the payload so an unchanged retry
	// after a network failure is deduplicated server-side.
	req.Header.Set("Idempotency-Key", idempotencyKey(body))

	c.log("api request", "path", path, "bytes", len(body))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("api: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("api: decoding response: %w", err)
		}
	}
	return nil
}

// decodeError maps a non-2xx response to a typed error. Bodies that are not
// clean JSON go through jsonutil extraction before falling back to a generic
// status message.
func (c *Client) decodeError(status int, raw []byte) error {
	var er errorResponse
	if err := json.Unmarshal(raw, &er); err != nil {
		// Proxies sometimes wrap the payload; try to dig the object out.
		if exErr := jsonutil.ExtractInto(string(raw), &er); exErr != nil {
			er = errorResponse{}
		}
	}

	c.log("api error response", "status", status, "message", er.Message, "field", er.Field)

	if status == http.StatusConflict {
		return &ConflictError{Field: er.Field, Message: er.Message}
	}
	if er.Message == "" {
		er.Message = fmt.Sprintf("the service returned status %d", status)
	}
	return &APIError{StatusCode: status, Message: er.Message}
}

// idempotencyKey hashes the canonical request body with xxhash.
func idempotencyKey(body []byte) string {
	return strconv.FormatUint(xxhash.Sum64(body), 16)
}

func (c *Client) log(msg string, kvs ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Debug(msg, kvs...)
}
