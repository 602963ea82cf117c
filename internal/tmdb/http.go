package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/lepinkainen/marquee/internal/errors"
)

// endpoint builds an API URL carrying the credentials and language every call needs.
func (c *Client) endpoint(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	return fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
}

// getJSON performs one GET and decodes the body into target. Failures are
// reported as *errors.FetchError tagged with op.
func (c *Client) getJSON(ctx context.Context, op, endpoint string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("tmdb: build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// A cancelled call is the caller giving up, not the network failing.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("tmdb: %s: %w", op, ctxErr)
		}
		return errors.NewOfflineError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.NewStatusError(op, resp.StatusCode, statusMessage(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return errors.NewMalformedError(op, err)
	}
	return nil
}

// statusMessage extracts TMDB's status_message from an error body, falling
// back to the trimmed raw body.
func statusMessage(body []byte) string {
	var payload struct {
		StatusMessage string `json:"status_message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.StatusMessage != "" {
		return payload.StatusMessage
	}
	return strings.TrimSpace(string(body))
}
