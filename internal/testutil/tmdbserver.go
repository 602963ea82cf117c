package testutil

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// FakeMovie is one movie served by FakeTMDB.
type FakeMovie struct {
	ID          int
	Title       string
	PosterPath  string
	ReleaseDate string
}

// FakeTMDB is an httptest server answering the three endpoints marquee uses.
type FakeTMDB struct {
	Server *httptest.Server

	// Genres served by /genre/movie/list as {id, name} pairs.
	Genres [][2]any
	// Movies per genre id served by /discover/movie.
	Movies map[int][]FakeMovie
	// Videos holds video keys per movie id served by /movie/{id}/videos.
	Videos map[int][]string
	// Status forces a status code for a request path.
	Status map[string]int

	mu       sync.Mutex
	requests []string
}

// NewFakeTMDB starts a FakeTMDB that is closed when the test completes.
func NewFakeTMDB(t *testing.T) *FakeTMDB {
	t.Helper()

	fake := &FakeTMDB{
		Movies: map[int][]FakeMovie{},
		Videos: map[int][]string{},
		Status: map[string]int{},
	}
	fake.Server = httptest.NewServer(http.HandlerFunc(fake.handle))
	t.Cleanup(fake.Server.Close)
	return fake
}

// URL returns the base URL of the fake API.
func (f *FakeTMDB) URL() string {
	return f.Server.URL
}

// Requests returns the request paths seen so far, in order.
func (f *FakeTMDB) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *FakeTMDB) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.URL.Path)
	f.mu.Unlock()

	if code, ok := f.Status[r.URL.Path]; ok {
		w.WriteHeader(code)
		_, _ = w.Write([]byte(`{"status_message":"forced failure"}`))
		return
	}

	if r.URL.Query().Get("api_key") == "" && !strings.HasPrefix(r.URL.Path, "/img/") {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_message":"Invalid API key"}`))
		return
	}

	switch {
	case r.URL.Path == "/genre/movie/list":
		genres := make([]map[string]any, 0, len(f.Genres))
		for _, g := range f.Genres {
			genres = append(genres, map[string]any{"id": g[0], "name": g[1]})
		}
		writeJSON(w, map[string]any{"genres": genres})
	case r.URL.Path == "/discover/movie":
		genreID, _ := strconv.Atoi(r.URL.Query().Get("with_genres"))
		results := make([]map[string]any, 0)
		for _, m := range f.Movies[genreID] {
			entry := map[string]any{"id": m.ID, "title": m.Title, "original_title": m.Title, "release_date": m.ReleaseDate}
			if m.PosterPath != "" {
				entry["poster_path"] = m.PosterPath
			} else {
				entry["poster_path"] = nil
			}
			results = append(results, entry)
		}
		writeJSON(w, map[string]any{"page": 1, "results": results})
	case strings.HasPrefix(r.URL.Path, "/movie/") && strings.HasSuffix(r.URL.Path, "/videos"):
		idStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/movie/"), "/videos")
		movieID, _ := strconv.Atoi(idStr)
		results := make([]map[string]any, 0)
		for _, key := range f.Videos[movieID] {
			results = append(results, map[string]any{"key": key, "site": "YouTube", "type": "Trailer"})
		}
		writeJSON(w, map[string]any{"id": movieID, "results": results})
	case strings.HasPrefix(r.URL.Path, "/img/"):
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(posterPNG())
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_message":"The resource you requested could not be found."}`))
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func posterPNG() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 60, 90))
	for y := 0; y < 90; y++ {
		img.Set(y%60, y, color.RGBA{G: 180, A: 255})
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
