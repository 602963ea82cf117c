package tmdb

import "strconv"

// Genre is a movie category as defined by TMDB.
type Genre struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// RawMovie is one entry of a TMDB movie listing. It is read-only and
// discarded once mapped into a display record.
type RawMovie struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	PosterPath    string  `json:"poster_path"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"`
	VoteAverage   float64 `json:"vote_average"`
	GenreIDs      []int   `json:"genre_ids"`
}

// DisplayTitle returns the localized title, or the original one when TMDB has no translation.
func (m RawMovie) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	return m.OriginalTitle
}

// Year extracts the release year, or "" when TMDB has no usable date.
func (m RawMovie) Year() string {
	if len(m.ReleaseDate) >= 4 {
		if _, err := strconv.Atoi(m.ReleaseDate[:4]); err == nil {
			return m.ReleaseDate[:4]
		}
	}
	return ""
}

// Video is one entry of a movie's video list.
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}
