package mapfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/coffmap/coffmap/internal/layout"
)

// WriteFile renders the map file for sections and publishes it
// atomically at path. An empty path is a silent no-op: map file output
// is opt-in, and an unset destination means "don't write one".
//
// Either the destination ends up containing exactly the rendered report,
// or it is left unmodified; no intermediate state is visible at the
// destination path, and no temporary file survives a failure.
func WriteFile(path string, sections []*layout.OutputSection, opts ...RendererOption) error {
	if path == "" {
		return nil
	}
	return writeFileAtomic(path, func(w io.Writer) error {
		return NewRenderer(w, opts...).Render(sections)
	})
}

// writeFileAtomic streams write's output into a randomly named file in
// the destination directory, then renames it onto path. Same-directory
// placement keeps the rename a same-filesystem atomic operation.
//
// The temporary file is removed on every exit path that does not reach
// the rename; a successful rename cancels the cleanup.
func writeFileAtomic(path string, write func(w io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := write(tmp); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", tmp.Name(), path, err)
	}
	committed = true

	return nil
}
