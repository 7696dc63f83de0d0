package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// SearchParams configures a search query. The index holds every
// tenant's documents and the company filter is the isolation boundary;
// only callers with platform-wide visibility may leave it empty.
type SearchParams struct {
	CompanyID string   // Tenant to search within (empty = all tenants)
	Query     string   // User's search query
	Types     []string // Document types to include (empty = all)

	// Filters
	StoreID  string   // Narrow to one store (optional)
	Genre    string   // Exact genre facet value
	Tone     string   // Exact tone facet value
	AgeGroup string   // Exact age group facet value
	Sections []string // Filter by section tags (OR across tags)

	// Pagination
	Limit  int
	Offset int

	// Sorting
	SortBy    string // "relevance", "title", "author", "recent"
	SortOrder string // "asc", "desc"

	// Options
	IncludeFacets bool     // Include facet counts in results
	FacetFields   []string // Which fields to facet on
	Highlight     bool     // Include match highlighting
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:         20,
		Offset:        0,
		SortBy:        "relevance",
		SortOrder:     "desc",
		IncludeFacets: true,
		FacetFields:   []string{"type", "genre", "tone", "age_group", "sections"},
		Highlight:     true,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string       `json:"query"`
	Total  uint64       `json:"total"`
	TookMs int64        `json:"tookMs"`
	Hits   []SearchHit  `json:"hits"`
	Facets SearchFacets `json:"facets,omitempty"`
}

// SearchHit represents a single search result.
type SearchHit struct {
	ID             string            `json:"id"`
	Type           DocType           `json:"type"`
	Score          float64           `json:"score"`
	Name           string            `json:"name"`
	Subtitle       string            `json:"subtitle,omitempty"`
	Author         string            `json:"author,omitempty"`
	Recommendation string            `json:"recommendation,omitempty"`
	Genre          string            `json:"genre,omitempty"`
	Tone           string            `json:"tone,omitempty"`
	AgeGroup       string            `json:"ageGroup,omitempty"`
	Visibility     string            `json:"visibility,omitempty"`
	ItemCount      int               `json:"itemCount,omitempty"`
	Highlights     map[string]string `json:"highlights,omitempty"`
}

// SearchFacets contains facet counts.
type SearchFacets struct {
	Types     []FacetCount `json:"types,omitempty"`
	Genres    []FacetCount `json:"genres,omitempty"`
	Tones     []FacetCount `json:"tones,omitempty"`
	AgeGroups []FacetCount `json:"ageGroups,omitempty"`
	Sections  []FacetCount `json:"sections,omitempty"`
}

// FacetCount represents a facet value and its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search executes a search query. An empty CompanyID spans every
// tenant's documents; callers gate that on platform-admin access.
func (s *SearchIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Build the query
	searchQuery := buildSearchQuery(params)

	// Create search request
	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)

	// Add sorting
	addSorting(searchRequest, params)

	// Add facets
	if params.IncludeFacets {
		addFacets(searchRequest, params)
	}

	// Add highlighting
	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("name")
		searchRequest.Highlight.AddField("author")
		searchRequest.Highlight.AddField("recommendation")
	}

	// Request stored fields
	searchRequest.Fields = []string{
		"id", "type", "name", "subtitle", "author", "recommendation",
		"genre", "tone", "age_group", "visibility", "item_count",
	}

	// Execute search
	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	// Convert results
	result := &SearchResult{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := SearchHit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		// Extract stored fields
		if t, ok := hit.Fields["type"].(string); ok {
			searchHit.Type = DocType(t)
		}
		if n, ok := hit.Fields["name"].(string); ok {
			searchHit.Name = n
		}
		if st, ok := hit.Fields["subtitle"].(string); ok {
			searchHit.Subtitle = st
		}
		if a, ok := hit.Fields["author"].(string); ok {
			searchHit.Author = a
		}
		if r, ok := hit.Fields["recommendation"].(string); ok {
			searchHit.Recommendation = r
		}
		if g, ok := hit.Fields["genre"].(string); ok {
			searchHit.Genre = g
		}
		if tn, ok := hit.Fields["tone"].(string); ok {
			searchHit.Tone = tn
		}
		if ag, ok := hit.Fields["age_group"].(string); ok {
			searchHit.AgeGroup = ag
		}
		if v, ok := hit.Fields["visibility"].(string); ok {
			searchHit.Visibility = v
		}
		if ic, ok := hit.Fields["item_count"].(float64); ok {
			searchHit.ItemCount = int(ic)
		}

		// Extract highlights
		if len(hit.Fragments) > 0 {
			searchHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					searchHit.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, searchHit)
	}

	// Extract facets
	if params.IncludeFacets {
		result.Facets = extractFacets(searchResult)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	// Tenant isolation. Left off only for platform-wide queries.
	if params.CompanyID != "" {
		companyQuery := bleve.NewTermQuery(params.CompanyID)
		companyQuery.SetField("company_id")
		queries = append(queries, companyQuery)
	}

	// Main text query across title, author, and recommendation.
	if params.Query != "" {
		textQueries := []query.Query{}

		// Name/title match with highest boost
		nameMatch := bleve.NewMatchQuery(params.Query)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)
		textQueries = append(textQueries, nameMatch)

		// Author match
		authorMatch := bleve.NewMatchQuery(params.Query)
		authorMatch.SetField("author")
		authorMatch.SetBoost(2.0)
		textQueries = append(textQueries, authorMatch)

		// Staff recommendation match
		recMatch := bleve.NewMatchQuery(params.Query)
		recMatch.SetField("recommendation")
		recMatch.SetBoost(1.5)
		textQueries = append(textQueries, recMatch)

		// Description match, lowest boost
		descMatch := bleve.NewMatchQuery(params.Query)
		descMatch.SetField("description")
		descMatch.SetBoost(1.0)
		textQueries = append(textQueries, descMatch)

		// Add fuzzy matching for typo tolerance on name
		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("name")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		// Prefix query for autocomplete (minimum 2 chars)
		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("name")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		// Combine with OR (match any field)
		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	// Type filter
	if len(params.Types) > 0 {
		typeQueries := make([]query.Query, len(params.Types))
		for i, t := range params.Types {
			tq := bleve.NewTermQuery(t)
			tq.SetField("type")
			typeQueries[i] = tq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(typeQueries...))
	}

	// Store filter
	if params.StoreID != "" {
		sq := bleve.NewTermQuery(params.StoreID)
		sq.SetField("store_id")
		queries = append(queries, sq)
	}

	// Facet filters (exact match)
	if params.Genre != "" {
		gq := bleve.NewTermQuery(params.Genre)
		gq.SetField("genre")
		queries = append(queries, gq)
	}
	if params.Tone != "" {
		tq := bleve.NewTermQuery(params.Tone)
		tq.SetField("tone")
		queries = append(queries, tq)
	}
	if params.AgeGroup != "" {
		aq := bleve.NewTermQuery(params.AgeGroup)
		aq.SetField("age_group")
		queries = append(queries, aq)
	}

	// Section tag filter (OR across tags)
	if len(params.Sections) > 0 {
		sectionQueries := make([]query.Query, len(params.Sections))
		for i, section := range params.Sections {
			sq := bleve.NewTermQuery(section)
			sq.SetField("sections")
			sectionQueries[i] = sq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(sectionQueries...))
	}

	// Combine all queries with AND
	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// addSorting configures sort order.
func addSorting(req *bleve.SearchRequest, params SearchParams) {
	switch params.SortBy {
	case "title", "name":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-name"})
		} else {
			req.SortBy([]string{"name"})
		}
	case "author":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-author", "-name"})
		} else {
			req.SortBy([]string{"author", "name"})
		}
	case "recent":
		if params.SortOrder == "asc" {
			req.SortBy([]string{"created_at"})
		} else {
			req.SortBy([]string{"-created_at"})
		}
	default:
		// Relevance (score) is default - Bleve handles this
		req.SortBy([]string{"-_score"})
	}
}

// addFacets configures facet requests.
func addFacets(req *bleve.SearchRequest, params SearchParams) {
	for _, field := range params.FacetFields {
		facetReq := bleve.NewFacetRequest(field, 20) // Top 20 values
		req.AddFacet(field, facetReq)
	}
}

// extractFacets converts Bleve facets to our format.
func extractFacets(result *bleve.SearchResult) SearchFacets {
	facets := SearchFacets{}

	collect := func(name string) []FacetCount {
		facet, ok := result.Facets[name]
		if !ok {
			return nil
		}
		counts := make([]FacetCount, 0, len(facet.Terms.Terms()))
		for _, term := range facet.Terms.Terms() {
			counts = append(counts, FacetCount{Value: term.Term, Count: term.Count})
		}
		return counts
	}

	facets.Types = collect("type")
	facets.Genres = collect("genre")
	facets.Tones = collect("tone")
	facets.AgeGroups = collect("age_group")
	facets.Sections = collect("sections")

	return facets
}
