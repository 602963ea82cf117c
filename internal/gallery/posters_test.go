package gallery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/marquee/internal/movie"
)

type fakeDownloader struct {
	calls []string
	fail  map[string]bool
}

func (f *fakeDownloader) DownloadAndResizeImage(_ context.Context, imageURL, savePath string, _ int) error {
	f.calls = append(f.calls, imageURL)
	if f.fail[imageURL] {
		return errors.New("boom")
	}
	return os.WriteFile(savePath, []byte("jpeg"), 0o644)
}

func TestLocalizePosters(t *testing.T) {
	dir := t.TempDir()
	dl := &fakeDownloader{fail: map[string]bool{"https://img/broken.jpg": true}}

	records := []movie.Record{
		{Title: "Heat", PosterURL: "https://img/heat.jpg"},
		{Title: "No Poster"},
		{Title: "Broken", PosterURL: "https://img/broken.jpg"},
	}

	got, err := LocalizePosters(context.Background(), dl, records, dir)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "posters/01%20-%20Heat%20-%20poster.jpg", got[0].PosterURL)
	assert.FileExists(t, filepath.Join(dir, PosterDir, "01 - Heat - poster.jpg"))
	assert.Empty(t, got[1].PosterURL)
	assert.Equal(t, "https://img/broken.jpg", got[2].PosterURL)
	assert.Equal(t, []string{"https://img/heat.jpg", "https://img/broken.jpg"}, dl.calls)

	// Input records are left untouched.
	assert.Equal(t, "https://img/heat.jpg", records[0].PosterURL)
}

func TestLocalizePostersSkipsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, PosterDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, PosterDir, "01 - Heat - poster.jpg"), []byte("cached"), 0o644))

	dl := &fakeDownloader{}
	got, err := LocalizePosters(context.Background(), dl, []movie.Record{{Title: "Heat", PosterURL: "https://img/heat.jpg"}}, dir)
	require.NoError(t, err)

	assert.Empty(t, dl.calls)
	assert.Equal(t, "posters/01%20-%20Heat%20-%20poster.jpg", got[0].PosterURL)
}

func TestLocalizePostersStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dl := &fakeDownloader{}
	_, err := LocalizePosters(ctx, dl, []movie.Record{{Title: "Heat", PosterURL: "https://img/heat.jpg"}}, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, dl.calls)
}

func TestLocalizePostersDuplicateTitles(t *testing.T) {
	dir := t.TempDir()
	dl := &fakeDownloader{}

	records := []movie.Record{
		{Title: "Suspiria", PosterURL: "https://img/suspiria-1977.jpg"},
		{Title: "Suspiria", PosterURL: "https://img/suspiria-2018.jpg"},
	}

	got, err := LocalizePosters(context.Background(), dl, records, dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://img/suspiria-1977.jpg", "https://img/suspiria-2018.jpg"}, dl.calls)
	assert.NotEqual(t, got[0].PosterURL, got[1].PosterURL)
	assert.FileExists(t, filepath.Join(dir, PosterDir, "01 - Suspiria - poster.jpg"))
	assert.FileExists(t, filepath.Join(dir, PosterDir, "02 - Suspiria - poster.jpg"))
}

func TestLocalizePostersURLSafeTitles(t *testing.T) {
	dir := t.TempDir()
	records := []movie.Record{{Title: "What About Bob?", PosterURL: "https://img/bob.jpg"}}

	got, err := LocalizePosters(context.Background(), &fakeDownloader{}, records, dir)
	require.NoError(t, err)

	assert.Equal(t, "posters/01%20-%20What%20About%20Bob%20-%20poster.jpg", got[0].PosterURL)
	assert.FileExists(t, filepath.Join(dir, PosterDir, "01 - What About Bob - poster.jpg"))

	content, err := Render(Page{Tiles: got})
	require.NoError(t, err)
	src, ok := parseHTML(t, content).Find("div.tile img").Attr("src")
	require.True(t, ok)
	assert.NotContains(t, src, "?")
	assert.Equal(t, got[0].PosterURL, src)
}

func TestPosterFilename(t *testing.T) {
	tests := []struct {
		title string
		index int
		want  string
	}{
		{"Heat", 0, "01 - Heat - poster.jpg"},
		{"", 2, "03 - poster.jpg"},
		{"Alien: Romulus", 4, "05 - Alien - Romulus - poster.jpg"},
		{`Who's #1? <100%> "Best" *|*`, 9, "10 - Who's 1 100 Best - poster.jpg"},
		{"???", 0, "01 - poster.jpg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, posterFilename(tt.title, tt.index), tt.title)
	}
}
