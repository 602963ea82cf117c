package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/kong"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/marquee/cmd/gallery"
	"github.com/lepinkainen/marquee/cmd/genres"
	"github.com/lepinkainen/marquee/internal/config"
	"github.com/lepinkainen/marquee/internal/testutil"
)

func resetCmdState(t *testing.T) {
	testutil.ResetViper(t)
	t.Setenv("TMDB_API_KEY", "")
}

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	originalArgs := os.Args
	os.Args = append([]string{"marquee"}, args...)
	t.Cleanup(func() { os.Args = originalArgs })

	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("marquee"),
		kong.Description("Pick a movie genre and browse its trailers in a generated HTML gallery."),
		kong.UsageOnError(),
		kong.Exit(func(code int) {
			t.Fatalf("unexpected Kong exit %d", code)
		}),
	)

	return cli, ctx
}

func stubGallery(t *testing.T) *gallery.Options {
	t.Helper()
	orig := runGallery
	t.Cleanup(func() { runGallery = orig })

	got := &gallery.Options{}
	runGallery = func(_ context.Context, deps gallery.Deps, opts gallery.Options) error {
		require.NotNil(t, deps.Catalog)
		*got = opts
		return nil
	}
	return got
}

func testApp() *App {
	return &App{
		Ctx:    context.Background(),
		Config: config.Config{APIKey: "key", OutputFile: "fresh_tomatoes.html", OpenBrowser: true, Overwrite: true},
		In:     bytes.NewReader(nil),
		Out:    io.Discard,
	}
}

func TestGalleryIsDefaultCommand(t *testing.T) {
	resetCmdState(t)

	_, ctx := parseCLI(t)
	assert.Equal(t, "gallery", ctx.Command())
}

func TestGalleryCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, ctx := parseCLI(t, "--debug", "gallery",
		"-o", "out/picks.html",
		"--no-browser",
		"--tui",
		"--download-posters",
		"--screenshot", "shot.png",
		"--json",
		"--datasette",
		"--datasette-mode", "remote")

	assert.Equal(t, "gallery", ctx.Command())
	assert.True(t, cli.Debug)
	assert.Equal(t, "out/picks.html", cli.Gallery.Output)
	assert.True(t, cli.Gallery.NoBrowser)
	assert.True(t, cli.Gallery.TUI)
	assert.True(t, cli.Gallery.DownloadPosters)
	assert.Equal(t, "shot.png", cli.Gallery.Screenshot)
	assert.True(t, cli.Gallery.JSON)
	assert.True(t, cli.Gallery.Datasette)
	assert.Equal(t, "remote", cli.Gallery.DatasetteMode)
}

func TestGenresCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, ctx := parseCLI(t, "genres", "-f", "yaml")
	assert.Equal(t, "genres", ctx.Command())
	assert.Equal(t, "yaml", cli.Genres.Format)

	cli, _ = parseCLI(t, "genres")
	assert.Equal(t, "text", cli.Genres.Format)
}

func TestGalleryRunAppliesFlags(t *testing.T) {
	resetCmdState(t)
	got := stubGallery(t)

	cmd := &GalleryCmd{
		Output:        "picks.html",
		NoBrowser:     true,
		NoOverwrite:   true,
		TUI:           true,
		Screenshot:    "shot.png",
		Datasette:     true,
		DatasetteMode: "local",
		DatasetteDB:   "/tmp/picks.db",
	}
	require.NoError(t, cmd.Run(testApp()))

	assert.Equal(t, "picks.html", got.Config.OutputFile)
	assert.False(t, got.Config.OpenBrowser)
	assert.False(t, got.Config.Overwrite)
	assert.True(t, got.TUI)
	assert.Equal(t, "shot.png", got.Screenshot)
	assert.Equal(t, gallery.Datasette{Enabled: true, Mode: "local", DBFile: "/tmp/picks.db"}, got.Datasette)
}

func TestGalleryRunReadsDatasetteConfig(t *testing.T) {
	resetCmdState(t)
	got := stubGallery(t)

	testutil.SetViperValue(t, "datasette.enabled", true)
	testutil.SetViperValue(t, "datasette.dbfile", "./from-config.db")
	testutil.SetViperValue(t, "datasette.remote_url", "https://datasette.example")
	testutil.SetViperValue(t, "datasette.api_token", "secret")

	cmd := &GalleryCmd{DatasetteMode: "remote"}
	require.NoError(t, cmd.Run(testApp()))

	assert.Equal(t, "fresh_tomatoes.html", got.Config.OutputFile)
	assert.True(t, got.Config.OpenBrowser)
	assert.Equal(t, gallery.Datasette{
		Enabled:   true,
		Mode:      "remote",
		DBFile:    "./from-config.db",
		RemoteURL: "https://datasette.example",
		APIToken:  "secret",
	}, got.Datasette)
}

func TestGenresRunUsesFormat(t *testing.T) {
	resetCmdState(t)
	orig := runGenres
	t.Cleanup(func() { runGenres = orig })

	var format string
	runGenres = func(_ context.Context, lister genres.Lister, _ io.Writer, f string) error {
		require.NotNil(t, lister)
		format = f
		return nil
	}

	require.NoError(t, (&GenresCmd{Format: "json"}).Run(testApp()))
	assert.Equal(t, "json", format)
}

func TestInitConfigWithoutFile(t *testing.T) {
	resetCmdState(t)
	env := testutil.NewTestEnv(t)
	env.Chdir(".")
	t.Setenv("TMDB_API_KEY", "env-key")

	require.NoError(t, initConfig(""))

	cfg, err := config.Load(viper.GetViper())
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, config.DefaultOutputFile, cfg.OutputFile)
	assert.Equal(t, "local", viper.GetString("datasette.mode"))
	assert.Equal(t, "./marquee.db", viper.GetString("datasette.dbfile"))
}

func TestInitConfigReadsFile(t *testing.T) {
	resetCmdState(t)
	env := testutil.NewTestEnv(t)
	env.WriteFileString("marquee.yaml", `TMDBAPIKey: file-key
tmdb:
  language: fi-FI
gallery:
  outputfile: elokuvat.html
`)

	require.NoError(t, initConfig(filepath.Join(env.RootDir(), "marquee.yaml")))

	cfg, err := config.Load(viper.GetViper())
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "fi-FI", cfg.Language)
	assert.Equal(t, "elokuvat.html", cfg.OutputFile)
}

func TestInitConfigExplicitMissingFile(t *testing.T) {
	resetCmdState(t)
	env := testutil.NewTestEnv(t)

	err := initConfig(filepath.Join(env.RootDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvironmentOverridesConfigFile(t *testing.T) {
	resetCmdState(t)
	env := testutil.NewTestEnv(t)
	env.WriteFileString("config.yaml", "TMDBAPIKey: file-key\n")
	t.Setenv("TMDB_API_KEY", "env-key")

	require.NoError(t, initConfig(filepath.Join(env.RootDir(), "config.yaml")))
	assert.Equal(t, "env-key", viper.GetString("TMDBAPIKey"))
}

func TestInitLogging(t *testing.T) {
	for _, debug := range []bool{false, true} {
		require.NotPanics(t, func() {
			initLogging(debug)
		})
	}
}
