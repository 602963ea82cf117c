package testutil

import (
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/lepinkainen/marquee/internal/config"
)

// ResetViper resets the global viper instance now and when the test completes.
func ResetViper(t *testing.T) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
	})
}

// TestConfig returns a configuration pointing at baseURL, writing the gallery
// inside env and never opening a browser.
func TestConfig(env *TestEnv, baseURL string) config.Config {
	return config.Config{
		APIKey:         "test-tmdb-key",
		BaseURL:        baseURL,
		ImageBaseURL:   "https://image.tmdb.org/t/p/w500",
		VideoURLFormat: config.DefaultVideoURLFormat,
		Language:       config.DefaultLanguage,
		SortBy:         config.DefaultSortBy,
		OutputFile:     env.Path(config.DefaultOutputFile),
		OpenBrowser:    false,
		Overwrite:      true,
		Timeout:        5 * time.Second,
	}
}
