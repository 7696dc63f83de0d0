package isbndb

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLookupISBN(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/book/9780441478125", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"book": {
				"title": "The Left Hand of Darkness",
				"title_long": "The Left Hand of Darkness: A Novel",
				"authors": ["Ursula K. Le Guin"],
				"publisher": "Ace Books",
				"date_published": "1969",
				"pages": 304,
				"language": "en",
				"synopsis": "A genderless world.",
				"image": "https://images.isbndb.com/covers/left-hand.jpg",
				"isbn13": "9780441478125"
			}
		}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, discardLogger())

	// Hyphens in the input are ignored.
	result, err := client.LookupISBN(context.Background(), "978-0-441-47812-5")
	require.NoError(t, err)

	assert.Equal(t, "9780441478125", result.ISBN)
	assert.Equal(t, "The Left Hand of Darkness", result.Title)
	assert.Equal(t, "A Novel", result.Subtitle)
	assert.Equal(t, []string{"Ursula K. Le Guin"}, result.Authors)
	assert.Equal(t, 304, result.PageCount)
	assert.Equal(t, "A genderless world.", result.Description)
	assert.Equal(t, "https://images.isbndb.com/covers/left-hand.jpg", result.CoverURL)
}

func TestLookupISBN_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, discardLogger())

	_, err := client.LookupISBN(context.Background(), "9780000000000")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestLookupISBN_NotConfigured(t *testing.T) {
	client := NewClient("", "", discardLogger())

	_, err := client.LookupISBN(context.Background(), "9780441478125")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNormalizeISBN(t *testing.T) {
	assert.Equal(t, "9780441478125", normalizeISBN("978-0-441-47812-5"))
	assert.Equal(t, "9780441478125", normalizeISBN("978 0441478125"))
	assert.Equal(t, "", normalizeISBN(""))
}
