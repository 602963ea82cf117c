package tmdb

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/lepinkainen/marquee/internal/errors"
)

// Videos fetches the video list of a movie.
func (c *Client) Videos(ctx context.Context, movieID int) ([]Video, error) {
	var response struct {
		ID      int     `json:"id"`
		Results []Video `json:"results"`
	}

	path := fmt.Sprintf("/movie/%d/videos", movieID)
	if err := c.getJSON(ctx, "videos", c.endpoint(path, nil), &response); err != nil {
		return nil, err
	}

	if response.Results == nil {
		return nil, errors.NewMalformedError("videos", stdErrors.New("response has no results"))
	}

	return response.Results, nil
}

// TrailerKey returns the key of the first video of a movie, or "" when the
// movie has no videos.
func (c *Client) TrailerKey(ctx context.Context, movieID int) (string, error) {
	videos, err := c.Videos(ctx, movieID)
	if err != nil {
		return "", err
	}
	if len(videos) == 0 {
		return "", nil
	}
	return videos[0].Key, nil
}
