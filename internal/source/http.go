package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gcbaptista/inverted-index/internal/errors"
	"github.com/gcbaptista/inverted-index/model"
	"github.com/gcbaptista/inverted-index/services"
)

const (
	// DefaultFetchTimeout is the default timeout for HTTP requests.
	DefaultFetchTimeout = 10 * time.Second
	// DefaultMaxBodyBytes caps the size of a remote payload.
	DefaultMaxBodyBytes int64 = 32 << 20
)

// Ensure HTTPSource implements services.DocumentSource at compile time.
var _ services.DocumentSource = (*HTTPSource)(nil)

// HTTPSource retrieves document collections with HTTP GET requests.
type HTTPSource struct {
	client       *http.Client
	timeout      time.Duration
	maxBodyBytes int64
}

// Option configures an HTTPSource.
type Option func(*HTTPSource)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *HTTPSource) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxBodyBytes caps the number of bytes read from a response.
func WithMaxBodyBytes(n int64) Option {
	return func(s *HTTPSource) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithHTTPClient replaces the underlying client. Its Timeout is overwritten
// with the configured timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(s *HTTPSource) {
		if client != nil {
			s.client = client
		}
	}
}

// NewHTTPSource creates a new HTTPSource.
func NewHTTPSource(opts ...Option) *HTTPSource {
	s := &HTTPSource{
		client:       &http.Client{},
		timeout:      DefaultFetchTimeout,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.client.Timeout = s.timeout
	return s
}

// Fetch downloads and parses the JSON document at url.
// The whole body is read before parsing.
func (s *HTTPSource) Fetch(ctx context.Context, url string) (model.Collection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewNetworkError(url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewHTTPStatusError(url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodyBytes+1))
	if err != nil {
		return nil, errors.NewNetworkError(url, err)
	}
	if int64(len(body)) > s.maxBodyBytes {
		return nil, errors.NewInvalidJSONError(url, fmt.Sprintf("payload exceeds %d bytes", s.maxBodyBytes), nil)
	}
	return parse(url, body)
}
