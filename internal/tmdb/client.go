// Package tmdb provides a client for TheMovieDB API.
package tmdb

import (
	"net/http"
	"strings"
	"time"

	"github.com/lepinkainen/marquee/internal/config"
)

const (
	defaultBaseURL        = config.DefaultBaseURL
	defaultImageBaseURL   = config.DefaultImageBaseURL
	defaultVideoURLFormat = config.DefaultVideoURLFormat
	defaultLanguage       = config.DefaultLanguage
	defaultSortBy         = config.DefaultSortBy
	defaultMaxWidth       = 500
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a TMDB API client. Every call is a single blocking GET.
type Client struct {
	apiKey         string
	baseURL        string
	imageBaseURL   string
	videoURLFormat string
	language       string
	sortBy         string
	includeAdult   bool
	httpClient     HTTPDoer
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:         apiKey,
		baseURL:        defaultBaseURL,
		imageBaseURL:   defaultImageBaseURL,
		videoURLFormat: defaultVideoURLFormat,
		language:       defaultLanguage,
		sortBy:         defaultSortBy,
		httpClient:     &http.Client{Timeout: config.DefaultTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// NewFromConfig creates a client from the loaded configuration. Extra
// options are applied after the configured values.
func NewFromConfig(cfg config.Config, opts ...Option) *Client {
	base := []Option{
		WithBaseURL(cfg.BaseURL),
		WithImageBaseURL(cfg.ImageBaseURL),
		WithVideoURLFormat(cfg.VideoURLFormat),
		WithLanguage(cfg.Language),
		WithSortBy(cfg.SortBy),
		WithIncludeAdult(cfg.IncludeAdult),
	}
	base = append(base, WithTimeout(cfg.Timeout))
	return NewClient(cfg.APIKey, append(base, opts...)...)
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithTimeout replaces the HTTP client with one using the given timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		if timeout > 0 {
			client.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithBaseURL sets a custom base URL for the TMDB API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithImageBaseURL sets a custom base URL for TMDB images.
func WithImageBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.imageBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithVideoURLFormat sets the format used to turn a video key into a URL.
func WithVideoURLFormat(format string) Option {
	return func(client *Client) {
		if format != "" {
			client.videoURLFormat = format
		}
	}
}

// WithLanguage sets the language query parameter sent with every request.
func WithLanguage(language string) Option {
	return func(client *Client) {
		if language != "" {
			client.language = language
		}
	}
}

// WithSortBy sets the sort order for the movies-by-genre listing.
func WithSortBy(sortBy string) Option {
	return func(client *Client) {
		if sortBy != "" {
			client.sortBy = sortBy
		}
	}
}

// WithIncludeAdult toggles adult titles in the movies-by-genre listing.
func WithIncludeAdult(include bool) Option {
	return func(client *Client) {
		client.includeAdult = include
	}
}
