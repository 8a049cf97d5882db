package source

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gcbaptista/inverted-index/internal/errors"
	"github.com/gcbaptista/inverted-index/model"
	"github.com/gcbaptista/inverted-index/services"
)

// Ensure FileSource implements services.DocumentSource at compile time.
var _ services.DocumentSource = (*FileSource)(nil)

// FileSource reads document collections from the local filesystem.
type FileSource struct{}

// NewFileSource creates a new FileSource.
func NewFileSource() *FileSource {
	return &FileSource{}
}

// Fetch reads and parses the JSON file at path.
func (s *FileSource) Fetch(ctx context.Context, path string) (model.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- reading caller-named sources is the purpose of this type
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewSourceNotFoundError(path, err)
		}
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return parse(path, data)
}
