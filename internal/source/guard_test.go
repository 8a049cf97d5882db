package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gcbaptista/inverted-index/internal/errors"
	"github.com/gcbaptista/inverted-index/internal/source"
	"github.com/gcbaptista/inverted-index/model"
)

func TestGuardSource_LocalRoots(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	inside := filepath.Join(root, "books.json")
	require.NoError(t, os.WriteFile(inside, []byte(booksJSON), 0o600))
	secret := filepath.Join(outside, "secret.json")
	require.NoError(t, os.WriteFile(secret, []byte(booksJSON), 0o600))
	link := filepath.Join(root, "link.json")
	require.NoError(t, os.Symlink(secret, link))

	tests := []struct {
		name     string
		location string
		allowed  bool
	}{
		{"file under root", inside, true},
		{"missing file under root", filepath.Join(root, "missing.json"), true},
		{"file outside root", secret, false},
		{"missing file outside root", filepath.Join(outside, "missing.json"), false},
		{"traversal out of root", root + "/../" + filepath.Base(outside) + "/secret.json", false},
		{"symlink escaping root", link, false},
		{"root prefix is not a parent", root + "-other/books.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := &stubSource{docs: model.Collection{{ID: "doc"}}}
			guard, err := source.NewGuardSource(inner, source.Policy{AllowedRoots: []string{root}})
			require.NoError(t, err)

			_, err = guard.Fetch(context.Background(), tt.location)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.location, inner.location)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrSourceNotAllowed), "got %v", err)
			assert.Empty(t, inner.location, "rejected locations are never read")
		})
	}
}

func TestGuardSource_Remote(t *testing.T) {
	tests := []struct {
		name     string
		policy   source.Policy
		location string
		allowed  bool
	}{
		{"remote disabled", source.Policy{}, "http://example.com/books.json", false},
		{"any host", source.Policy{AllowRemote: true}, "http://10.0.0.1/books.json", true},
		{"listed host", source.Policy{AllowRemote: true, AllowedHosts: []string{"Example.com"}}, "https://example.com:8443/books.json", true},
		{"unlisted host", source.Policy{AllowRemote: true, AllowedHosts: []string{"example.com"}}, "http://169.254.169.254/latest", false},
		{"unsupported scheme", source.Policy{AllowRemote: true}, "ftp://example.com/books.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := &stubSource{docs: model.Collection{{ID: "doc"}}}
			guard, err := source.NewGuardSource(inner, tt.policy)
			require.NoError(t, err)

			_, err = guard.Fetch(context.Background(), tt.location)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.location, inner.location)
				return
			}
			assert.True(t, errors.Is(err, apperrors.ErrSourceNotAllowed), "got %v", err)
			assert.Empty(t, inner.location)
		})
	}
}

func TestGuardSource_EmptyRootsAllowAnyPath(t *testing.T) {
	inner := &stubSource{docs: model.Collection{{ID: "doc"}}}
	guard, err := source.NewGuardSource(inner, source.Policy{})
	require.NoError(t, err)

	_, err = guard.Fetch(context.Background(), "/var/data/books.json")
	require.NoError(t, err)
	assert.Equal(t, "/var/data/books.json", inner.location)
}

func TestNewGuardSource_MissingRoot(t *testing.T) {
	_, err := source.NewGuardSource(&stubSource{}, source.Policy{
		AllowedRoots: []string{filepath.Join(t.TempDir(), "absent")},
	})
	assert.Error(t, err)
}
