// Package selector implements the numbered console menu used to pick a genre.
package selector

import (
	"bufio"
	stdErrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

// MenuHeader is printed above the numbered genre list.
const MenuHeader = "SELECT YOUR FAVORITE GENRE!"

type state int

const (
	awaitingInput state = iota
	valid
)

// Selector reads genre choices line by line.
type Selector struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Selector reading from in and writing prompts to out.
func New(in io.Reader, out io.Writer) *Selector {
	return &Selector{in: bufio.NewReader(in), out: out}
}

// PrintMenu writes the header and one "N. Name" line per genre.
func PrintMenu(out io.Writer, genres []tmdb.Genre) {
	_, _ = fmt.Fprintln(out, MenuHeader)
	for i, genre := range genres {
		_, _ = fmt.Fprintf(out, "%d. %s\n", i+1, genre.Name)
	}
}

// Select reads lines until one holds a 1-based index into genres. Bad input
// prints a corrective prompt and waits for the next line. When input runs out
// first, errors.ErrNoInput is returned.
func (s *Selector) Select(genres []tmdb.Genre) (tmdb.Genre, error) {
	if len(genres) == 0 {
		return tmdb.Genre{}, stdErrors.New("no genres to choose from")
	}

	current := awaitingInput
	index := 0
	for current == awaitingInput {
		line, readErr := s.in.ReadString('\n')
		if readErr != nil && !stdErrors.Is(readErr, io.EOF) {
			return tmdb.Genre{}, fmt.Errorf("reading choice: %w", readErr)
		}
		if readErr != nil && strings.TrimSpace(line) == "" {
			return tmdb.Genre{}, errors.ErrNoInput
		}

		n, err := strconv.Atoi(strings.TrimSpace(line))
		switch {
		case stdErrors.Is(err, strconv.ErrRange):
			// Too large for an int is still a number, just out of range.
			_, _ = fmt.Fprintf(s.out, "You have to enter a number between 1 and %d. Try again:\n", len(genres))
		case err != nil:
			_, _ = fmt.Fprintln(s.out, "You have to enter a number. Try again:")
		case n < 1 || n > len(genres):
			_, _ = fmt.Fprintf(s.out, "You have to enter a number between 1 and %d. Try again:\n", len(genres))
		default:
			index = n - 1
			current = valid
		}

		if current == awaitingInput && readErr != nil {
			return tmdb.Genre{}, errors.ErrNoInput
		}
	}

	selected := genres[index]
	_, _ = fmt.Fprintln(s.out, "You selected", selected.Name)
	return selected, nil
}
