package datastore

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/lepinkainen/marquee/internal/movie"
)

const (
	// DatabaseName is the Datasette database galleries are written to.
	DatabaseName = "marquee"
	// GalleryTable holds one row per rendered tile.
	GalleryTable = "gallery_movies"
)

// GallerySchema creates GalleryTable.
const GallerySchema = `CREATE TABLE IF NOT EXISTS gallery_movies (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	genre TEXT NOT NULL,
	position INTEGER NOT NULL,
	title TEXT NOT NULL,
	year TEXT,
	poster_url TEXT,
	trailer_url TEXT,
	has_trailer BOOLEAN NOT NULL,
	generated_at TEXT NOT NULL
)`

// GalleryRows converts records into rows for GalleryTable. Empty URLs become NULL.
func GalleryRows(genre string, records []movie.Record, generatedAt time.Time) []map[string]any {
	stamp := generatedAt.UTC().Format(time.RFC3339)
	rows := make([]map[string]any, len(records))
	for i, rec := range records {
		rows[i] = map[string]any{
			"genre":        genre,
			"position":     i + 1,
			"title":        rec.Title,
			"year":         nullable(rec.Year),
			"poster_url":   nullable(rec.PosterURL),
			"trailer_url":  nullable(rec.TrailerURL),
			"has_trailer":  rec.HasTrailer(),
			"generated_at": stamp,
		}
	}
	return rows
}

// ExportGallery writes records to store, creating the table first.
func ExportGallery(store Store, genre string, records []movie.Record, generatedAt time.Time) error {
	if err := store.Connect(); err != nil {
		return fmt.Errorf("failed to connect to datastore: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.CreateTable(GallerySchema); err != nil {
		return err
	}

	rows := GalleryRows(genre, records, generatedAt)
	if err := store.BatchInsert(DatabaseName, GalleryTable, rows); err != nil {
		return fmt.Errorf("failed to export gallery: %w", err)
	}

	slog.Info("Exported gallery", "table", GalleryTable, "genre", genre, "rows", len(rows))
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
