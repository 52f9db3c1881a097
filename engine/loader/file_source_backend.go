package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// fileSourceBackend reads shader sources from disk, optionally relative to a root directory.
type fileSourceBackend struct {
	root string
}

var _ sourceBackend = &fileSourceBackend{}

func newFileSourceBackend(root string) *fileSourceBackend {
	return &fileSourceBackend{root: root}
}

func (b *fileSourceBackend) Fetch(ctx context.Context, location string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := location
	if rest, ok := strings.CutPrefix(location, "file://"); ok {
		path = filepath.FromSlash(rest)
	}
	if b.root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(b.root, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "loader: read %s", path)
	}
	return string(data), nil
}
