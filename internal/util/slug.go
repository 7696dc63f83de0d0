// Package util provides common utility functions.
package util

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Matches spaces, underscores, and slashes (for replacement with dashes).
	wordSeparatorRe = regexp.MustCompile(`[\s_/]+`)
	// Matches non-alphanumeric characters (except dashes).
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9-]`)
	// Matches multiple consecutive dashes.
	multipleDashRe = regexp.MustCompile(`-+`)

	// Decomposes accented characters and strips the combining marks,
	// so "Café" slugs to "cafe" instead of "caf".
	foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify converts user input to a canonical URL slug.
//
// Normalization rules:
//  1. Decompose accents and strip combining marks
//  2. Trim whitespace and lowercase
//  3. Replace spaces, underscores, and slashes with dashes
//  4. Remove non-alphanumeric characters (except dashes)
//  5. Collapse multiple dashes
//  6. Trim leading/trailing dashes
//
// Examples:
//
//	"Summer Reads"      → "summer-reads"
//	"Café Corner"       → "cafe-corner"
//	"STAFF_PICKS 2026"  → "staff-picks-2026"
//	"🔥 Hot Titles!"    → "hot-titles"
//	"--leading--"       → "leading"
func Slugify(input string) string {
	// 1. Strip accents
	if folded, _, err := transform.String(foldTransformer, input); err == nil {
		input = folded
	}

	// 2. Trim and lowercase
	s := strings.ToLower(strings.TrimSpace(input))

	// 3. Replace word separators (spaces, underscores, slashes) with dashes
	s = wordSeparatorRe.ReplaceAllString(s, "-")

	// 4. Remove non-alphanumeric (except dashes)
	s = nonAlphanumericRe.ReplaceAllString(s, "")

	// 5. Collapse multiple dashes
	s = multipleDashRe.ReplaceAllString(s, "-")

	// 6. Trim leading/trailing dashes
	s = strings.Trim(s, "-")

	return s
}

// UniqueSlug resolves slug collisions by appending a numeric suffix.
// It returns base unchanged when exists(base) is false, otherwise tries
// base-1, base-2, ... until a free slug is found.
//
// The check-then-claim is not atomic; callers relying on a unique index
// should treat a conflict on write as a retryable race.
func UniqueSlug(base string, exists func(slug string) (bool, error)) (string, error) {
	taken, err := exists(base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}
