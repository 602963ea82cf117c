// Package gallery renders movie records as a static HTML page and hands it to a browser.
package gallery

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/lepinkainen/marquee/internal/movie"
)

// DefaultTitle is used when a Page has no title.
const DefaultTitle = "Fresh Tomatoes Movie Trailers"

//go:embed template.html
var htmlTemplate string

// Page is the data rendered into the gallery template.
type Page struct {
	Title       string
	Genre       string
	Tiles       []movie.Record
	GeneratedAt time.Time
}

// Render renders page as a complete HTML document.
func Render(page Page) ([]byte, error) {
	funcMap := template.FuncMap{
		"embedURL": embedURL,
	}

	tmpl, err := template.New("gallery").Funcs(funcMap).Parse(htmlTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	if page.Title == "" {
		page.Title = DefaultTitle
	}
	if page.GeneratedAt.IsZero() {
		page.GeneratedAt = time.Now()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.Bytes(), nil
}

// embedURL turns a YouTube watch or short link into its embeddable player URL.
// Other links yield "" and open in a new tab instead.
func embedURL(trailerURL string) string {
	u, err := url.Parse(trailerURL)
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Host)
	var id string
	switch {
	case strings.Contains(host, "youtu.be"):
		id = strings.Trim(u.Path, "/")
	case strings.Contains(host, "youtube.com"):
		if strings.HasPrefix(u.Path, "/watch") {
			id = u.Query().Get("v")
		}
	}

	if id == "" {
		return ""
	}
	return "https://www.youtube.com/embed/" + url.PathEscape(id)
}
