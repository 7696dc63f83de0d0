package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		// Basic normalization
		{"lowercase", "DRAGONS", "dragons"},
		{"spaces to dashes", "summer reads", "summer-reads"},
		{"underscores to dashes", "summer_reads", "summer-reads"},
		{"already normalized", "summer-reads", "summer-reads"},

		// Whitespace handling
		{"trim whitespace", "  dragons  ", "dragons"},
		{"multiple spaces", "summer   reads", "summer-reads"},
		{"tabs and spaces", "summer\t reads", "summer-reads"},

		// Special characters
		{"emoji removal", "🔥 Hot Titles!", "hot-titles"},
		{"punctuation removal", "sci-fi/fantasy", "sci-fi-fantasy"},
		{"apostrophe removal", "don't", "dont"},

		// Accent folding
		{"accented vowels", "Café Corner", "cafe-corner"},
		{"umlaut", "Bücher", "bucher"},
		{"cedilla", "façade", "facade"},

		// Dash handling
		{"multiple dashes", "summer--reads", "summer-reads"},
		{"leading dashes", "--dragons", "dragons"},
		{"trailing dashes", "dragons--", "dragons"},
		{"mixed dashes", "--summer--reads--", "summer-reads"},

		// Edge cases
		{"empty string", "", ""},
		{"only spaces", "   ", ""},
		{"only special chars", "!@#$%", ""},
		{"numbers allowed", "top10", "top10"},
		{"mixed case with numbers", "Top 10 Books", "top-10-books"},

		// Real-world examples
		{"staff picks", "Staff Picks 2026", "staff-picks-2026"},
		{"book club", "Book_Club Favorites", "book-club-favorites"},
		{"cozy mystery", "Cozy Mystery Month", "cozy-mystery-month"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slugify(tt.input)
			if result != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestUniqueSlug_NoCollision(t *testing.T) {
	slug, err := UniqueSlug("summer-reads", func(string) (bool, error) {
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "summer-reads", slug)
}

func TestUniqueSlug_SuffixSequence(t *testing.T) {
	taken := map[string]bool{
		"summer-reads":   true,
		"summer-reads-1": true,
		"summer-reads-2": true,
	}
	slug, err := UniqueSlug("summer-reads", func(s string) (bool, error) {
		return taken[s], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "summer-reads-3", slug)
}

func TestUniqueSlug_FirstSuffix(t *testing.T) {
	slug, err := UniqueSlug("main", func(s string) (bool, error) {
		return s == "main", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "main-1", slug)
}

func TestUniqueSlug_ExistsError(t *testing.T) {
	_, err := UniqueSlug("x", func(string) (bool, error) {
		return false, assert.AnError
	})
	assert.Error(t, err)
}
