package cmd

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/marquee/cmd/gallery"
	"github.com/lepinkainen/marquee/cmd/genres"
	"github.com/lepinkainen/marquee/internal/config"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

var (
	runGallery = gallery.Run
	runGenres  = genres.Run
	exit       = os.Exit
)

// CLI represents the complete command structure for the marquee application
type CLI struct {
	Debug  bool   `help:"Enable debug logging"`
	Config string `short:"c" help:"Path to config file (defaults to ./config.yaml when present)" type:"path"`

	Gallery GalleryCmd `cmd:"" default:"withargs" help:"Pick a genre and open a trailer gallery for it"`
	Genres  GenresCmd  `cmd:"" help:"List the available movie genres"`
}

// GalleryCmd represents the gallery command
type GalleryCmd struct {
	Output          string `short:"o" help:"Path of the generated HTML gallery (defaults to gallery.outputfile in config)"`
	NoBrowser       bool   `help:"Do not open the gallery in a browser"`
	NoOverwrite     bool   `help:"Keep an existing gallery file instead of replacing it"`
	TUI             bool   `help:"Pick the genre from an interactive list"`
	DownloadPosters bool   `help:"Download posters next to the gallery so it works offline"`
	Screenshot      string `help:"Save a full-page PNG of the gallery to this path (requires Chrome)"`
	JSON            bool   `help:"Also write the gallery records as JSON"`
	JSONOutput      string `help:"Path to JSON output file (defaults to the gallery path with a .json extension)"`

	Datasette     bool   `help:"Export the gallery to Datasette"`
	DatasetteMode string `help:"Datasette mode: local SQLite file or remote insert API" enum:"local,remote" default:"local"`
	DatasetteDB   string `help:"Path to SQLite database file for local mode (defaults to datasette.dbfile in config)"`
}

// GenresCmd represents the genres command
type GenresCmd struct {
	Format string `short:"f" help:"Output format" enum:"text,json,yaml" default:"text"`
}

// App carries what every command needs once startup has finished.
type App struct {
	Ctx    context.Context
	Config config.Config
	In     io.Reader
	Out    io.Writer
}

// Execute runs the Kong-based CLI
func Execute() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("marquee"),
		kong.Description("Pick a movie genre and browse its trailers in a generated HTML gallery."),
		kong.UsageOnError(),
	)

	initLogging(cli.Debug)

	if err := initConfig(cli.Config); err != nil {
		slog.Error("Failed to read config file", "error", err)
		exit(1)
		return
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		exit(1)
		return
	}

	app := &App{Ctx: context.Background(), Config: cfg, In: os.Stdin, Out: os.Stdout}
	if err := ctx.Run(app); err != nil {
		slog.Error("Command failed", "error", err)
		exit(1)
	}
}

func initConfig(path string) error {
	config.SetDefaults(viper.GetViper())

	viper.SetDefault("datasette.mode", "local")
	viper.SetDefault("datasette.dbfile", "./marquee.db")

	// Enable environment variable support
	viper.AutomaticEnv()
	// Bind specific environment variables to config keys
	if err := viper.BindEnv("TMDBAPIKey", "TMDB_API_KEY"); err != nil {
		return fmt.Errorf("failed to bind environment variable: %w", err)
	}

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && stdErrors.As(err, &notFound) {
			slog.Debug("No config file found, using defaults and environment")
			return nil
		}
		return err
	}

	slog.Debug("Loaded config file", "path", viper.ConfigFileUsed())
	return nil
}

// Run methods for each command

func (g *GalleryCmd) Run(app *App) error {
	cfg := app.Config
	if g.Output != "" {
		cfg.OutputFile = g.Output
	}
	if g.NoBrowser {
		cfg.OpenBrowser = false
	}
	if g.NoOverwrite {
		cfg.Overwrite = false
	}

	opts := gallery.Options{
		Config:          cfg,
		TUI:             g.TUI,
		DownloadPosters: g.DownloadPosters,
		Screenshot:      g.Screenshot,
		JSON:            g.JSON,
		JSONOutput:      g.JSONOutput,
		Datasette:       g.datasette(),
	}

	deps := gallery.Deps{
		Catalog: tmdb.NewFromConfig(cfg),
		In:      app.In,
		Out:     app.Out,
	}

	return runGallery(app.Ctx, deps, opts)
}

func (g *GalleryCmd) datasette() gallery.Datasette {
	// Read from config if value not provided via flag
	dbFile := g.DatasetteDB
	if dbFile == "" {
		dbFile = viper.GetString("datasette.dbfile")
	}

	return gallery.Datasette{
		Enabled:   g.Datasette || viper.GetBool("datasette.enabled"),
		Mode:      g.DatasetteMode,
		DBFile:    dbFile,
		RemoteURL: viper.GetString("datasette.remote_url"),
		APIToken:  viper.GetString("datasette.api_token"),
	}
}

func (c *GenresCmd) Run(app *App) error {
	return runGenres(app.Ctx, tmdb.NewFromConfig(app.Config), app.Out, c.Format)
}

func initLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: level,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
