// Package ledgerhttp is a Ledger Store that talks to a remote ledger service over REST.
package ledgerhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
	"github.com/SscSPs/retail_ledger/internal/models"
	"github.com/sony/gobreaker"
)

const (
	defaultTimeout  = 10 * time.Second
	maxResponseBody = 4 << 20
	maxErrorMessage = 1024
)

// Client calls the remote ledger service. Every request goes through one circuit
// breaker; requests are never retried.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBreakerSettings replaces the default circuit breaker settings
func WithBreakerSettings(settings gobreaker.Settings) ClientOption {
	return func(c *Client) {
		c.breaker = gobreaker.NewCircuitBreaker(settings)
	}
}

// WithLogger sets the logger used for breaker state changes
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the ledger service at baseURL. A zero timeout
// selects a 10 second default.
func NewClient(baseURL string, timeout time.Duration, options ...ClientOption) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid ledger store URL %q", apperrors.ErrValidation, baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
		logger:     slog.Default(),
	}
	for _, option := range options {
		option(c)
	}
	if c.breaker == nil {
		c.breaker = gobreaker.NewCircuitBreaker(DefaultBreakerSettings("ledger-store", c.logger))
	}
	return c, nil
}

// DefaultBreakerSettings trips after 5 consecutive failures, or when at least half
// of 10 or more requests in the window failed. It half-opens after 10 seconds.
func DefaultBreakerSettings(name string, logger *slog.Logger) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    2 * time.Minute,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= 5 {
				return true
			}
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Ledger store circuit breaker changed state",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}
}

// response is what survives the breaker: the status and a body for the caller to decode.
type response struct {
	status int
	body   []byte
}

// do sends one request. Only network failures and 5xx answers count against the
// breaker; 4xx answers are the caller's problem, not the store's.
func (c *Client) do(ctx context.Context, op, method string, path string, in any) (*response, error) {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return nil, fmt.Errorf("failed to encode %s request: %w", op, err)
		}
	}
	target := c.baseURL.JoinPath(path)

	result, err := c.breaker.Execute(func() (interface{}, error) {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
		if err != nil {
			return nil, err
		}
		r := &response{status: resp.StatusCode, body: data}
		if resp.StatusCode >= http.StatusInternalServerError {
			return r, statusError(op, r)
		}
		return r, nil
	})
	if err != nil {
		var te *apperrors.TransportError
		if errors.As(err, &te) {
			return nil, te
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, apperrors.NewTransportError(op, err)
	}

	r := result.(*response)
	switch {
	case r.status >= 200 && r.status < 300:
		return r, nil
	case r.status == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, op, path)
	case r.status == http.StatusConflict:
		return nil, fmt.Errorf("%w: %s: %s", apperrors.ErrDuplicate, op, errorMessage(r.body))
	default:
		return nil, statusError(op, r)
	}
}

func statusError(op string, r *response) *apperrors.TransportError {
	return &apperrors.TransportError{
		Op:         op,
		StatusCode: r.status,
		Message:    errorMessage(r.body),
	}
}

// errorMessage pulls the message field out of an error body, falling back to the raw text.
func errorMessage(body []byte) string {
	var e models.ErrorResponse
	if err := json.Unmarshal(body, &e); err == nil {
		if e.Message != "" {
			return e.Message
		}
		if e.Error != "" {
			return e.Error
		}
	}
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorMessage {
		text = text[:maxErrorMessage]
	}
	return text
}

// call sends a request and decodes a JSON answer into out when out is not nil.
func (c *Client) call(ctx context.Context, op, method, path string, in, out any) error {
	r, err := c.do(ctx, op, method, path, in)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(r.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.body, out); err != nil {
		return &apperrors.TransportError{Op: op, StatusCode: r.status, Message: "undecodable response body", Err: err}
	}
	return nil
}

// invalidRecord reports an answer that decoded but failed store-boundary validation.
// The result matches both ErrTransport and ErrValidation.
func invalidRecord(op string, err error) error {
	return apperrors.NewTransportError(op, err)
}

func segment(s string) string {
	return url.PathEscape(s)
}
