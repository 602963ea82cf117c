// Package genres prints the movie genre catalog.
package genres

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/selector"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

// Formats lists the accepted output formats.
var Formats = []string{"text", "json", "yaml"}

// Lister fetches the genre catalog.
type Lister interface {
	Genres(ctx context.Context) ([]tmdb.Genre, error)
}

// Run writes the catalog to out in format. A failed fetch is reported with
// the same console message the gallery pipeline uses and is not an error.
func Run(ctx context.Context, lister Lister, out io.Writer, format string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "text"
	}

	genres, err := lister.Genres(ctx)
	if err != nil {
		slog.Debug("Genre fetch failed", "error", err)
		_, _ = fmt.Fprintln(out, errors.UserMessage(err))
		return nil
	}

	return write(out, genres, format)
}

func write(out io.Writer, genres []tmdb.Genre, format string) error {
	switch format {
	case "text":
		selector.PrintMenu(out, genres)
		return nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(genres); err != nil {
			return fmt.Errorf("failed to encode genres as JSON: %w", err)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(genres); err != nil {
			return fmt.Errorf("failed to encode genres as YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}
