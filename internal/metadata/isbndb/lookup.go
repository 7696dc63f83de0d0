package isbndb

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ErrBookNotFound is returned when ISBNdb has no record for the ISBN.
var ErrBookNotFound = errors.New("isbn not found")

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("isbndb client not configured")

// LookupISBN fetches the bibliographic record for an ISBN-10 or ISBN-13.
// Hyphens and spaces in the ISBN are ignored.
func (c *Client) LookupISBN(ctx context.Context, isbn string) (*BookResult, error) {
	if !c.Enabled() {
		return nil, ErrNotConfigured
	}

	isbn = normalizeISBN(isbn)
	if isbn == "" {
		return nil, fmt.Errorf("empty isbn")
	}

	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	lookupURL := c.baseURL + "/book/" + url.PathEscape(isbn)

	c.logger.Debug("looking up isbn", "isbn", isbn)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to parse
	case http.StatusNotFound:
		return nil, ErrBookNotFound
	default:
		return nil, fmt.Errorf("lookup failed: status %d", resp.StatusCode)
	}

	var bookResp bookResponse
	if err := json.UnmarshalRead(resp.Body, &bookResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return bookResp.Book.toResult(isbn), nil
}

// toResult normalizes the ISBNdb record. title_long usually carries the
// subtitle after a colon; when present we split it out.
func (b *bookRecord) toResult(requestedISBN string) *BookResult {
	title := b.Title
	subtitle := ""
	if b.TitleLong != "" && b.TitleLong != b.Title {
		if base, rest, found := strings.Cut(b.TitleLong, ":"); found && strings.TrimSpace(base) == b.Title {
			subtitle = strings.TrimSpace(rest)
		}
	}

	description := b.Synopsis
	if description == "" {
		description = b.Overview
	}

	isbn := b.ISBN13
	if isbn == "" {
		isbn = b.ISBN
	}
	if isbn == "" {
		isbn = requestedISBN
	}

	return &BookResult{
		ISBN:        isbn,
		Title:       title,
		Subtitle:    subtitle,
		Authors:     b.Authors,
		Publisher:   b.Publisher,
		PublishDate: b.DatePublished,
		PageCount:   b.Pages,
		Language:    b.Language,
		Description: description,
		CoverURL:    b.Image,
	}
}

// normalizeISBN strips hyphens and spaces.
func normalizeISBN(isbn string) string {
	var sb strings.Builder
	for _, r := range isbn {
		if r == '-' || r == ' ' {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
