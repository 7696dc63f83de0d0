// Package id mints the prefixed record identifiers used across the
// StaffPicks store: "cmp-…" for companies, "sto-…" for stores, "usr-…"
// for users, "book-…" for catalog entries, "list-…" for curated lists,
// and "sess-…" for session tokens. The prefix makes an ID
// self-describing in logs and API payloads; the random part is a
// 21-character NanoID, shorter than a UUID and URL-safe.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate mints an ID for the given record prefix. It fails only when
// the OS cannot supply secure randomness.
func Generate(prefix string) (string, error) {
	suffix, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + suffix, nil
}

// MustGenerate panics instead of returning the entropy error. Record
// creation paths use it: if the OS entropy pool is broken the request
// should abort loudly rather than limp on.
func MustGenerate(prefix string) string {
	generated, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return generated
}
