package tmdb

import (
	"context"
	stdErrors "errors"
	"net/url"
	"strconv"

	"github.com/lepinkainen/marquee/internal/errors"
)

// MoviesByGenre fetches the first page of movies tagged with genreID.
//
// The legacy /genre/{id}/movies endpoint ignores sort_by, so the listing goes
// through /discover/movie where with_genres and sort_by are documented.
func (c *Client) MoviesByGenre(ctx context.Context, genreID int) ([]RawMovie, error) {
	params := url.Values{}
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("sort_by", c.sortBy)
	params.Set("include_adult", strconv.FormatBool(c.includeAdult))
	params.Set("page", "1")

	var response struct {
		Page    int        `json:"page"`
		Results []RawMovie `json:"results"`
	}

	if err := c.getJSON(ctx, "movies", c.endpoint("/discover/movie", params), &response); err != nil {
		return nil, err
	}

	if response.Results == nil {
		return nil, errors.NewMalformedError("movies", stdErrors.New("response has no results"))
	}

	return response.Results, nil
}
