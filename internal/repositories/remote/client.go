// Package remote talks to the remote accounting service that owns accounts,
// journals and journal entries.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/ledger_desk/internal/apperrors"
	portsrepo "github.com/SscSPs/ledger_desk/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_desk/internal/utils/envelope"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 8 << 20

// Client is a thin JSON client. Every call returns either a 2xx body or an error
// already classified into the apperrors taxonomy.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sends token as a bearer credential on every call.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-call timeout of the underlying http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("remote base URL cannot be empty")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid remote base URL: %w", err)
	}
	c := &Client{baseURL: u, httpClient: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ portsrepo.RawFetcher = (*Client)(nil)

// FetchRaw implements portsrepo.RawFetcher.
func (c *Client) FetchRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, "GET "+path)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any, op string) ([]byte, error) {
	u, err := url.Parse(c.baseURL.String() + "/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("%s: invalid path: %w", op, err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &apperrors.TransientFetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &apperrors.TransientFetchError{Op: op, Err: err}
	}
	if err := classify(op, resp.StatusCode, data); err != nil {
		return nil, err
	}
	return data, nil
}

// classify maps a response to the error taxonomy. A 2xx body carrying an
// explicit not-found signal counts as not found. Conflicts stay neutral here;
// callers that know what a conflict means refine it.
func classify(op string, status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		if envelope.IsNotFound(body) {
			return &apperrors.NotFoundError{Resource: op}
		}
		return nil
	case status == http.StatusNotFound:
		return &apperrors.NotFoundError{Resource: op}
	case status == http.StatusConflict || envelope.IsDuplicateKey(body):
		return &apperrors.ConflictError{Op: op, Status: status, Message: envelope.ErrorMessage(body)}
	case status >= 500:
		return &apperrors.TransientFetchError{Op: op, Status: status}
	default:
		return &apperrors.RemoteError{Op: op, Status: status, Message: envelope.ErrorMessage(body)}
	}
}
