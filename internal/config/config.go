// Package config builds the explicit configuration value handed to every marquee component.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultBaseURL        = "https://api.themoviedb.org/3"
	DefaultImageBaseURL   = "https://image.tmdb.org/t/p/w500"
	DefaultVideoURLFormat = "https://www.youtube.com/watch?v=%s"
	DefaultLanguage       = "en-US"
	DefaultSortBy         = "popularity.desc"
	DefaultOutputFile     = "fresh_tomatoes.html"
	DefaultTimeout        = 10 * time.Second
)

// ErrMissingAPIKey is returned by Load when no TMDB API key is configured.
var ErrMissingAPIKey = errors.New("TMDB API key is required (set TMDB_API_KEY or TMDBAPIKey in config)")

// Config holds everything the pipeline needs. It is built once at startup
// and passed by value; nothing reads viper after Load.
type Config struct {
	APIKey         string
	BaseURL        string
	ImageBaseURL   string
	VideoURLFormat string
	Language       string
	SortBy         string
	IncludeAdult   bool
	OutputFile     string
	OpenBrowser    bool
	Overwrite      bool
	Timeout        time.Duration
}

// SetDefaults registers marquee's default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("tmdb.baseurl", DefaultBaseURL)
	v.SetDefault("tmdb.imagebaseurl", DefaultImageBaseURL)
	v.SetDefault("tmdb.videourlformat", DefaultVideoURLFormat)
	v.SetDefault("tmdb.language", DefaultLanguage)
	v.SetDefault("tmdb.sortby", DefaultSortBy)
	v.SetDefault("tmdb.includeadult", false)
	v.SetDefault("tmdb.timeout", DefaultTimeout.String())
	v.SetDefault("gallery.outputfile", DefaultOutputFile)
	v.SetDefault("gallery.openbrowser", true)
	v.SetDefault("gallery.overwrite", true)
}

// Load reads the configuration from v. The API key is the only required value.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	cfg := Config{
		APIKey:         strings.TrimSpace(v.GetString("TMDBAPIKey")),
		BaseURL:        strings.TrimSuffix(v.GetString("tmdb.baseurl"), "/"),
		ImageBaseURL:   strings.TrimSuffix(v.GetString("tmdb.imagebaseurl"), "/"),
		VideoURLFormat: v.GetString("tmdb.videourlformat"),
		Language:       v.GetString("tmdb.language"),
		SortBy:         v.GetString("tmdb.sortby"),
		IncludeAdult:   v.GetBool("tmdb.includeadult"),
		OutputFile:     v.GetString("gallery.outputfile"),
		OpenBrowser:    v.GetBool("gallery.openbrowser"),
		Overwrite:      v.GetBool("gallery.overwrite"),
	}

	if cfg.APIKey == "" {
		return Config{}, ErrMissingAPIKey
	}

	timeoutStr := v.GetString("tmdb.timeout")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid tmdb.timeout %q: %w", timeoutStr, err)
	}
	cfg.Timeout = timeout

	if !strings.Contains(cfg.VideoURLFormat, "%s") {
		return Config{}, fmt.Errorf("tmdb.videourlformat %q must contain %%s", cfg.VideoURLFormat)
	}

	return cfg, nil
}
