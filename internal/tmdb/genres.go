package tmdb

import (
	"context"
	stdErrors "errors"

	"github.com/lepinkainen/marquee/internal/errors"
)

// Genres fetches the catalog of movie genres.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var response struct {
		Genres []Genre `json:"genres"`
	}

	if err := c.getJSON(ctx, "genres", c.endpoint("/genre/movie/list", nil), &response); err != nil {
		return nil, err
	}

	if response.Genres == nil {
		return nil, errors.NewMalformedError("genres", stdErrors.New("response has no genres"))
	}

	return response.Genres, nil
}
