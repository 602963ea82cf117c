package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/lepinkainen/marquee/internal/fileutil"
	"github.com/lepinkainen/marquee/internal/movie"
)

// PosterDir is the directory, relative to the gallery file, that holds
// downloaded posters.
const PosterDir = "posters"

const posterMaxWidth = 342

// unsafeFilenameChars are dropped from poster filenames; several of them
// also end or break a relative URL.
var unsafeFilenameChars = strings.NewReplacer(
	"?", "", "#", "", "%", "", `"`, "", "<", "", ">", "", "|", "", "*", "",
)

// ImageDownloader fetches an image and stores a resized copy at savePath.
type ImageDownloader interface {
	DownloadAndResizeImage(ctx context.Context, imageURL, savePath string, maxWidth int) error
}

// LocalizePosters downloads every poster into PosterDir under baseDir and
// points the returned records at the local copies. Records whose download
// fails keep their remote URL.
func LocalizePosters(ctx context.Context, dl ImageDownloader, records []movie.Record, baseDir string) ([]movie.Record, error) {
	dir := filepath.Join(baseDir, PosterDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create poster directory: %w", err)
	}

	out := make([]movie.Record, len(records))
	copy(out, records)

	downloaded := 0
	for i, rec := range out {
		if rec.PosterURL == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return out, err
		}

		filename := posterFilename(rec.Title, i)
		savePath := filepath.Join(dir, filename)

		if !fileutil.FileExists(savePath) {
			if err := dl.DownloadAndResizeImage(ctx, rec.PosterURL, savePath, posterMaxWidth); err != nil {
				slog.Warn("Failed to download poster", "title", rec.Title, "url", rec.PosterURL, "error", err)
				continue
			}
			downloaded++
		}

		// Forward slashes keep the relative URL valid on every platform.
		out[i].PosterURL = PosterDir + "/" + url.PathEscape(filename)
	}

	slog.Debug("Localized posters", "downloaded", downloaded, "dir", dir)
	return out, nil
}

// posterFilename is unique per position so remakes sharing a title get their
// own files.
func posterFilename(title string, index int) string {
	name := strings.TrimSpace(unsafeFilenameChars.Replace(fileutil.SanitizeFilename(title)))
	if name == "" {
		return fmt.Sprintf("%02d - poster.jpg", index+1)
	}
	return fmt.Sprintf("%02d - %s - poster.jpg", index+1, name)
}
