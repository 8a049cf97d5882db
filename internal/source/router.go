package source

import (
	"context"
	"net/url"

	"github.com/gcbaptista/inverted-index/model"
	"github.com/gcbaptista/inverted-index/services"
)

// Ensure Router implements services.DocumentSource at compile time.
var _ services.DocumentSource = (*Router)(nil)

// IsRemote reports whether location is a URL with a non-empty host.
// Anything else is treated as a local path.
func IsRemote(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	return u.Host != ""
}

// Router dispatches each fetch to the local or the remote source according to IsRemote.
type Router struct {
	local  services.DocumentSource
	remote services.DocumentSource
}

// NewRouter creates a Router over the given local and remote sources.
func NewRouter(local, remote services.DocumentSource) *Router {
	return &Router{local: local, remote: remote}
}

// Fetch delegates to the source that handles location.
func (r *Router) Fetch(ctx context.Context, location string) (model.Collection, error) {
	if IsRemote(location) {
		return r.remote.Fetch(ctx, location)
	}
	return r.local.Fetch(ctx, location)
}
