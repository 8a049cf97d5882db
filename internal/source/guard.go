package source

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gcbaptista/inverted-index/internal/errors"
	"github.com/gcbaptista/inverted-index/model"
	"github.com/gcbaptista/inverted-index/services"
)

// Ensure GuardSource implements services.DocumentSource at compile time.
var _ services.DocumentSource = (*GuardSource)(nil)

// Policy restricts the locations a GuardSource lets through.
type Policy struct {
	// AllowedRoots lists directories local paths must resolve under.
	// Empty allows any local path.
	AllowedRoots []string
	// AllowRemote permits URL locations at all.
	AllowRemote bool
	// AllowedHosts lists the hosts URL locations may name.
	// Empty allows any host.
	AllowedHosts []string
}

// GuardSource rejects locations outside its Policy before the wrapped
// source reads anything.
type GuardSource struct {
	next         services.DocumentSource
	roots        []string
	allowRemote  bool
	allowedHosts map[string]struct{}
}

// NewGuardSource creates a GuardSource. Every allowed root must exist.
func NewGuardSource(next services.DocumentSource, policy Policy) (*GuardSource, error) {
	g := &GuardSource{next: next, allowRemote: policy.AllowRemote}

	for _, root := range policy.AllowedRoots {
		resolved, err := resolvePath(root)
		if err != nil {
			return nil, fmt.Errorf("allowed root %s: %w", root, err)
		}
		g.roots = append(g.roots, resolved)
	}
	if len(policy.AllowedHosts) > 0 {
		g.allowedHosts = make(map[string]struct{}, len(policy.AllowedHosts))
		for _, host := range policy.AllowedHosts {
			g.allowedHosts[strings.ToLower(host)] = struct{}{}
		}
	}
	return g, nil
}

// Fetch checks location against the policy and delegates when it passes.
func (g *GuardSource) Fetch(ctx context.Context, location string) (model.Collection, error) {
	var err error
	if IsRemote(location) {
		err = g.checkRemote(location)
	} else {
		err = g.checkLocal(location)
	}
	if err != nil {
		return nil, err
	}
	return g.next.Fetch(ctx, location)
}

func (g *GuardSource) checkRemote(location string) error {
	if !g.allowRemote {
		return errors.NewSourceNotAllowedError(location, "remote sources are disabled")
	}
	u, err := url.Parse(location)
	if err != nil {
		return errors.NewSourceNotAllowedError(location, "malformed URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.NewSourceNotAllowedError(location, "scheme must be http or https")
	}
	if g.allowedHosts == nil {
		return nil
	}
	if _, ok := g.allowedHosts[strings.ToLower(u.Hostname())]; !ok {
		return errors.NewSourceNotAllowedError(location, "host is not in the allowed hosts")
	}
	return nil
}

// checkLocal follows symlinks so a link inside a root cannot point outside
// it. A missing file is checked against its resolved parent directory.
func (g *GuardSource) checkLocal(location string) error {
	if len(g.roots) == 0 {
		return nil
	}
	path, err := filepath.Abs(location)
	if err != nil {
		return errors.NewSourceNotAllowedError(location, "invalid path")
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	} else if dir, err := filepath.EvalSymlinks(filepath.Dir(path)); err == nil {
		path = filepath.Join(dir, filepath.Base(path))
	}
	for _, root := range g.roots {
		if within(root, path) {
			return nil
		}
	}
	return errors.NewSourceNotAllowedError(location, "path is outside the allowed roots")
}

func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
