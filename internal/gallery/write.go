package gallery

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/pkg/browser"

	"github.com/lepinkainen/marquee/internal/fileutil"
)

// openFile is swapped out in tests so no browser is launched.
var openFile = browser.OpenFile

// Write renders page and stores it at path. It returns the absolute path of
// the written file.
func Write(path string, page Page, overwrite bool) (string, error) {
	content, err := Render(page)
	if err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path: %w", err)
	}

	written, err := fileutil.WriteFileWithOverwrite(absPath, content, 0o644, overwrite)
	if err != nil {
		return "", fmt.Errorf("failed to write gallery: %w", err)
	}
	if !written {
		slog.Warn("Gallery already exists, not overwriting", "path", absPath)
		return absPath, nil
	}

	slog.Info("Wrote gallery", "path", absPath, "movies", len(page.Tiles))
	return absPath, nil
}

// Open shows the gallery at path in the default browser.
func Open(path string) error {
	if err := openFile(path); err != nil {
		return fmt.Errorf("failed to open %s in browser: %w", path, err)
	}
	return nil
}
