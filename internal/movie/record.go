// Package movie turns TMDB listings into display-ready gallery records.
package movie

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

// Record is one gallery tile. Empty Year, PosterURL or TrailerURL means TMDB
// had no value for it.
type Record struct {
	Title      string `json:"title" yaml:"title"`
	Year       string `json:"year,omitempty" yaml:"year,omitempty"`
	PosterURL  string `json:"poster_url,omitempty" yaml:"poster_url,omitempty"`
	TrailerURL string `json:"trailer_url,omitempty" yaml:"trailer_url,omitempty"`
}

// HasTrailer reports whether the record links to a trailer.
func (r Record) HasTrailer() bool {
	return r.TrailerURL != ""
}

// Source is what Extract needs from the movie service.
type Source interface {
	TrailerKey(ctx context.Context, movieID int) (string, error)
	ImageURL(posterPath string) string
	VideoURL(key string) string
}

// Extract maps one raw movie into a Record, resolving its trailer. A failed
// trailer lookup is reported on out and leaves the trailer empty.
func Extract(ctx context.Context, src Source, raw tmdb.RawMovie, out io.Writer) Record {
	title := raw.DisplayTitle()

	key, err := src.TrailerKey(ctx, raw.ID)
	switch {
	case err == nil:
	case ctx.Err() != nil:
		slog.Debug("Trailer lookup cancelled", "movie_id", raw.ID, "title", title)
		key = ""
	default:
		slog.Debug("Trailer lookup failed", "movie_id", raw.ID, "title", title, "error", err)
		_, _ = fmt.Fprintln(out, errors.UserMessage(err))
		key = ""
	}

	verb := "does not have"
	if key != "" {
		verb = "has"
	}
	_, _ = fmt.Fprintf(out, "Movie '%s' %s a YouTube trailer...\n", title, verb)

	return Record{
		Title:      title,
		Year:       raw.Year(),
		PosterURL:  src.ImageURL(raw.PosterPath),
		TrailerURL: src.VideoURL(key),
	}
}

// ExtractAll maps a listing in order, one trailer lookup at a time.
func ExtractAll(ctx context.Context, src Source, raws []tmdb.RawMovie, out io.Writer) []Record {
	records := make([]Record, 0, len(raws))
	for _, raw := range raws {
		if ctx.Err() != nil {
			break
		}
		records = append(records, Extract(ctx, src, raw, out))
	}
	return records
}
