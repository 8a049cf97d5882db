// Package testing provides utilities and helpers for testing the engine and the API.
package testing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/inverted-index/internal/engine"
	"github.com/gcbaptista/inverted-index/internal/query"
	"github.com/gcbaptista/inverted-index/internal/source"
	"github.com/gcbaptista/inverted-index/model"
	"github.com/gcbaptista/inverted-index/services"
)

// BooksJSON is a small collection used across tests.
const BooksJSON = `{
	"1": {
		"title": "Alice in Wonderland",
		"text": "Alice falls into a rabbit hole and enters a world full of imagination."
	},
	"2": {
		"title": "The Lord of the Rings: The Fellowship of the Ring.",
		"text": "An unusual alliance of man, elf, dwarf, wizard and hobbit seek to destroy a powerful ring."
	}
}`

// HelloJSON is the single-document collection {"doc1": "Hello World" / "a quick test"}.
const HelloJSON = `{"doc1": {"title": "Hello World", "text": "a quick test"}}`

// MockSource is a services.DocumentSource driven by FetchFn.
type MockSource struct {
	FetchFn func(ctx context.Context, location string) (model.Collection, error)

	mu    sync.Mutex
	calls []string
}

var _ services.DocumentSource = (*MockSource)(nil)

// Fetch records the call and delegates to FetchFn.
func (m *MockSource) Fetch(ctx context.Context, location string) (model.Collection, error) {
	m.mu.Lock()
	m.calls = append(m.calls, location)
	m.mu.Unlock()
	return m.FetchFn(ctx, location)
}

// Calls returns the locations fetched so far.
func (m *MockSource) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// StaticSource returns a MockSource serving parsed JSON payloads by location.
// Unknown locations fail with the error produced by a FileSource for a missing file.
func StaticSource(t *testing.T, payloads map[string]string) *MockSource {
	t.Helper()
	collections := make(map[string]model.Collection, len(payloads))
	for location, payload := range payloads {
		docs, err := model.ParseCollection([]byte(payload))
		require.NoError(t, err, "invalid fixture for %s", location)
		collections[location] = docs
	}
	missingDir := t.TempDir()
	return &MockSource{
		FetchFn: func(ctx context.Context, location string) (model.Collection, error) {
			if docs, ok := collections[location]; ok {
				return docs, nil
			}
			return source.NewFileSource().Fetch(ctx, filepath.Join(missingDir, "missing.json"))
		},
	}
}

// WriteCollectionFile writes content to a temporary file named name and returns its path.
func WriteCollectionFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "Failed to write fixture")
	return path
}

// NewCollectionServer starts an HTTP server serving payloads keyed by URL path.
// Unknown paths answer 404. The server is closed when the test ends.
func NewCollectionServer(t *testing.T, payloads map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, ok := payloads[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// CreateTestEngine creates an engine reading from the real file and HTTP sources.
func CreateTestEngine(t *testing.T, opts ...engine.Option) *engine.Engine {
	t.Helper()
	router := source.NewRouter(source.NewFileSource(), source.NewHTTPSource())
	eng := engine.NewEngine(router, opts...)
	t.Cleanup(eng.Close)
	return eng
}

// CreateTestIndex builds an index for content stored in a temporary file and returns its location.
func CreateTestIndex(t *testing.T, eng *engine.Engine, name, content string) string {
	t.Helper()
	location := WriteCollectionFile(t, name, content)
	_, err := eng.CreateIndex(context.Background(), location)
	require.NoError(t, err, "Failed to create test index")
	return location
}

// SearchTestCase represents a test case for search operations
type SearchTestCase struct {
	Name     string
	Terms    []query.Node
	Location string // empty searches the most recent index
	Expected []string
}

// RunSearchTests runs a suite of search tests against an engine
func RunSearchTests(t *testing.T, eng *engine.Engine, tests []SearchTestCase) {
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			var results []string
			var err error
			if tt.Location == "" {
				results, err = eng.SearchIndex(tt.Terms...)
			} else {
				results, err = eng.SearchSpecificIndex(query.List(tt.Terms...), tt.Location)
			}
			require.NoError(t, err, "Search should not fail")
			assert.Equal(t, tt.Expected, results)
		})
	}
}
