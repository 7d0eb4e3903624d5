package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Dir serves resources from a directory tree.
type Dir struct {
	root string
	fsys fs.FS
}

func NewDir(root string) *Dir {
	return &Dir{root: root, fsys: os.DirFS(root)}
}

func (d *Dir) Root() string { return d.root }

func (d *Dir) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fs.ValidPath(path) {
		return nil, fmt.Errorf("fetch %s: %w", path, fs.ErrInvalid)
	}

	data, err := fs.ReadFile(d.fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("fetch %s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	return data, nil
}
