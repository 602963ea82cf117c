package selector

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/tmdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGenres = []tmdb.Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 16, Name: "Animation"},
}

const (
	notANumber = "You have to enter a number. Try again:"
	outOfRange = "You have to enter a number between 1 and 3. Try again:"
)

func TestPrintMenu(t *testing.T) {
	var out bytes.Buffer
	PrintMenu(&out, testGenres)

	expected := "SELECT YOUR FAVORITE GENRE!\n1. Action\n2. Adventure\n3. Animation\n"
	assert.Equal(t, expected, out.String())
}

func TestSelectAcceptsEveryValidIndex(t *testing.T) {
	for i, genre := range testGenres {
		input := []string{"1\n", "2\n", "3\n"}[i]
		t.Run(genre.Name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := New(strings.NewReader(input), &out).Select(testGenres)
			require.NoError(t, err)
			assert.Equal(t, genre, got)
			assert.Equal(t, "You selected "+genre.Name+"\n", out.String())
		})
	}
}

func TestSelectRejectsThenRetries(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		messages []string
	}{
		{name: "zero", input: "0\n2\n", messages: []string{outOfRange}},
		{name: "one past the end", input: "4\n2\n", messages: []string{outOfRange}},
		{name: "negative", input: "-1\n2\n", messages: []string{outOfRange}},
		{name: "non-numeric", input: "abc\n2\n", messages: []string{notANumber}},
		{name: "blank line", input: "\n2\n", messages: []string{notANumber}},
		{name: "mixed", input: "x\n9\n2\n", messages: []string{notANumber, outOfRange}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := New(strings.NewReader(tt.input), &out).Select(testGenres)
			require.NoError(t, err)
			assert.Equal(t, testGenres[1], got)

			expected := strings.Join(tt.messages, "\n") + "\nYou selected Adventure\n"
			assert.Equal(t, expected, out.String())
		})
	}
}

func TestSelectInvalidThenValidMatchesFirstTryValid(t *testing.T) {
	var retried, direct bytes.Buffer

	got, err := New(strings.NewReader("abc\n1\n"), &retried).Select(testGenres[:1])
	require.NoError(t, err)
	want, err := New(strings.NewReader("1\n"), &direct).Select(testGenres[:1])
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, 1, strings.Count(retried.String(), notANumber))
	assert.Equal(t, notANumber+"\n"+direct.String(), retried.String())
}

func TestSelectNumberBeyondIntRange(t *testing.T) {
	for _, input := range []string{"99999999999999999999\n2\n", "-99999999999999999999\n2\n"} {
		var out bytes.Buffer
		got, err := New(strings.NewReader(input), &out).Select(testGenres)
		require.NoError(t, err)
		assert.Equal(t, "Adventure", got.Name)
		assert.Equal(t, outOfRange+"\nYou selected Adventure\n", out.String())
	}
}

func TestSelectManyBadInputs(t *testing.T) {
	input := strings.Repeat("nope\n", 10000) + "3\n"

	var out bytes.Buffer
	got, err := New(strings.NewReader(input), &out).Select(testGenres)
	require.NoError(t, err)
	assert.Equal(t, "Animation", got.Name)
	assert.Equal(t, 10000, strings.Count(out.String(), notANumber))
}

func TestSelectTrimsWhitespaceAndLastLineWithoutNewline(t *testing.T) {
	got, err := New(strings.NewReader("  3  "), &bytes.Buffer{}).Select(testGenres)
	require.NoError(t, err)
	assert.Equal(t, "Animation", got.Name)
}

func TestSelectEndOfInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "only bad lines", input: "abc\n0\n"},
		{name: "bad last line without newline", input: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(strings.NewReader(tt.input), &bytes.Buffer{}).Select(testGenres)
			require.ErrorIs(t, err, errors.ErrNoInput)
		})
	}
}

func TestSelectNoGenres(t *testing.T) {
	_, err := New(strings.NewReader("1\n"), &bytes.Buffer{}).Select(nil)
	require.Error(t, err)
}
