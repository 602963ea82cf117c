// Package gallery runs the genre → movies → trailers → HTML pipeline.
package gallery

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lepinkainen/marquee/internal/config"
	"github.com/lepinkainen/marquee/internal/errors"
	site "github.com/lepinkainen/marquee/internal/gallery"
	"github.com/lepinkainen/marquee/internal/movie"
	"github.com/lepinkainen/marquee/internal/selector"
	"github.com/lepinkainen/marquee/internal/tmdb"
	"github.com/lepinkainen/marquee/internal/tui"
)

const (
	hangInThere = "Hang in there while we fetch some movies we think you'll love"
	farewell    = "BYE!"
)

// Catalog is the movie service the pipeline talks to. *tmdb.Client satisfies it.
type Catalog interface {
	Genres(ctx context.Context) ([]tmdb.Genre, error)
	MoviesByGenre(ctx context.Context, genreID int) ([]tmdb.RawMovie, error)
	movie.Source
	site.ImageDownloader
}

// Deps are the collaborators of a pipeline run.
type Deps struct {
	Catalog Catalog
	In      io.Reader
	Out     io.Writer
	Now     func() time.Time
}

// Options select the optional pipeline stages.
type Options struct {
	Config config.Config

	// TUI picks the genre with the interactive list instead of the numbered menu.
	TUI bool
	// DownloadPosters stores posters next to the gallery file.
	DownloadPosters bool
	// Screenshot is the PNG path for a headless browser snapshot; empty disables it.
	Screenshot string

	JSON       bool
	JSONOutput string

	Datasette Datasette
}

var (
	openGallery  = site.Open
	takeSnapshot = site.Snapshot
	pickWithTUI  = tui.SelectGenre
)

// Run executes one pipeline pass. Network failures are reported on Out and
// end the run early with a nil error; local failures such as an unwritable
// output file and a cancelled ctx are returned. The farewell line is always
// printed.
func Run(ctx context.Context, deps Deps, opts Options) error {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	in := deps.In
	if in == nil {
		in = os.Stdin
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	defer func() { _, _ = fmt.Fprintln(out, farewell) }()

	genres, err := deps.Catalog.Genres(ctx)
	if err != nil {
		return reportFetchError(ctx, out, "genres", err)
	}
	if len(genres) == 0 {
		slog.Warn("Movie service returned no genres")
		_, _ = fmt.Fprintln(out, "No genres available.")
		return nil
	}

	genre, err := chooseGenre(genres, in, out, opts.TUI)
	switch {
	case stdErrors.Is(err, errors.ErrNoInput):
		slog.Info("Input closed before a genre was chosen")
		return nil
	case errors.IsStopProcessingError(err):
		slog.Info("Genre selection cancelled", "reason", err)
		return nil
	case err != nil:
		return err
	}
	slog.Debug("Genre selected", "id", genre.ID, "name", genre.Name)

	raws, err := deps.Catalog.MoviesByGenre(ctx, genre.ID)
	if err != nil {
		return reportFetchError(ctx, out, "movies", err)
	}

	_, _ = fmt.Fprintln(out, hangInThere)
	records := movie.ExtractAll(ctx, deps.Catalog, raws, out)
	if err := ctx.Err(); err != nil {
		return err
	}

	outputFile := opts.Config.OutputFile
	if outputFile == "" {
		outputFile = config.DefaultOutputFile
	}

	if opts.DownloadPosters {
		localized, err := site.LocalizePosters(ctx, deps.Catalog, records, filepath.Dir(outputFile))
		if err != nil {
			return fmt.Errorf("failed to download posters: %w", err)
		}
		records = localized
	}

	generatedAt := now()
	page := site.Page{
		Title:       pageTitle(genre),
		Genre:       genre.Name,
		Tiles:       records,
		GeneratedAt: generatedAt,
	}
	path, err := site.Write(outputFile, page, opts.Config.Overwrite)
	if err != nil {
		return err
	}

	if opts.Config.OpenBrowser {
		if err := openGallery(path); err != nil {
			slog.Warn("Could not open gallery in browser", "path", path, "error", err)
		}
	}

	if opts.Screenshot != "" {
		if err := takeSnapshot(ctx, path, opts.Screenshot, site.SnapshotOptions{}); err != nil {
			slog.Warn("Gallery snapshot failed", "error", err)
		}
	}

	return exportRecords(opts, path, genre, records, generatedAt)
}

func chooseGenre(genres []tmdb.Genre, in io.Reader, out io.Writer, useTUI bool) (tmdb.Genre, error) {
	if !useTUI {
		selector.PrintMenu(out, genres)
		return selector.New(in, out).Select(genres)
	}

	result, err := pickWithTUI(genres)
	if err != nil {
		return tmdb.Genre{}, fmt.Errorf("genre picker failed: %w", err)
	}
	if result.Action != tui.ActionSelected || result.Selection == nil {
		return tmdb.Genre{}, errors.NewStopProcessingError("picker closed without a selection")
	}
	_, _ = fmt.Fprintf(out, "You selected %s\n", result.Selection.Name)
	return *result.Selection, nil
}

// reportFetchError prints the console line for a failed fetch. Cancellation
// is returned as is and prints nothing.
func reportFetchError(ctx context.Context, out io.Writer, what string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		slog.Debug("Fetch cancelled", "what", what, "error", err)
		return ctxErr
	}
	if errors.IsOffline(err) {
		slog.Debug("Movie service unreachable", "what", what, "error", err)
	} else {
		slog.Warn("Fetch failed", "what", what, "error", err)
	}
	_, _ = fmt.Fprintln(out, errors.UserMessage(err))
	return nil
}

func pageTitle(genre tmdb.Genre) string {
	name := strings.TrimSpace(genre.Name)
	if name == "" {
		return site.DefaultTitle
	}
	return fmt.Sprintf("%s: %s", site.DefaultTitle, name)
}
