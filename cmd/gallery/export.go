package gallery

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/lepinkainen/marquee/internal/datastore"
	"github.com/lepinkainen/marquee/internal/fileutil"
	"github.com/lepinkainen/marquee/internal/movie"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

// Datasette configures the optional export of gallery rows.
type Datasette struct {
	Enabled bool
	// Mode is "local" for a SQLite file or "remote" for the insert API.
	Mode      string
	DBFile    string
	RemoteURL string
	APIToken  string
}

// newStore returns the configured store.
func (d Datasette) newStore() (datastore.Store, error) {
	switch strings.ToLower(d.Mode) {
	case "", "local":
		path := d.DBFile
		if path == "" {
			path = "marquee.db"
		}
		return datastore.NewSQLiteStore(path), nil
	case "remote":
		return datastore.NewDatasetteClient(d.RemoteURL, d.APIToken), nil
	default:
		return nil, fmt.Errorf("unknown datasette mode %q (want local or remote)", d.Mode)
	}
}

func exportRecords(opts Options, galleryPath string, genre tmdb.Genre, records []movie.Record, generatedAt time.Time) error {
	if opts.JSON {
		path := opts.JSONOutput
		if path == "" {
			path = strings.TrimSuffix(galleryPath, filepath.Ext(galleryPath)) + ".json"
		}
		if _, err := fileutil.WriteJSONFile(records, path, opts.Config.Overwrite); err != nil {
			return err
		}
	}

	if opts.Datasette.Enabled {
		store, err := opts.Datasette.newStore()
		if err != nil {
			return err
		}
		slog.Info("Writing gallery to Datasette", "mode", opts.Datasette.Mode)
		if err := datastore.ExportGallery(store, genre.Name, records, generatedAt); err != nil {
			return err
		}
	}

	return nil
}
