package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir archives generated files under a base directory. A Dir with an empty
// base discards everything.
type Dir struct {
	base string
}

func NewDir(base string) *Dir {
	return &Dir{base: strings.TrimSpace(base)}
}

func (d *Dir) Enabled() bool {
	return d.base != ""
}

// Save writes content to base/name and returns the written path.
func (d *Dir) Save(ctx context.Context, name string, content []byte) (string, error) {
	if !d.Enabled() {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := filepath.Base(filepath.Clean("/" + name))
	if clean == "/" || clean == "." {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if err := os.MkdirAll(d.base, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	path := filepath.Join(d.base, clean)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", clean, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("rename %s: %w", clean, err)
	}
	return path, nil
}
