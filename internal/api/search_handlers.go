package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/staffpicks/staffpicks-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/search",
		Summary:     "Search the catalog",
		Description: "Federated search across books and curated lists, scoped to the caller's visibility",
		Tags:        []string{"Search"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleSearch)
}

// SearchInput contains the search query parameters.
type SearchInput struct {
	Query     string `query:"q" validate:"required,min=1,max=200" doc:"Search query"`
	CompanyID string `query:"companyId" validate:"omitempty,max=60" doc:"Platform admins: narrow the search to one company"`
	Types     string `query:"types" validate:"omitempty,max=60" doc:"Comma-separated types to include (book,list). Omit for both."`
	StoreID   string `query:"storeId" validate:"omitempty,max=60" doc:"Narrow results to one store"`
	Genre     string `query:"genre" validate:"omitempty,max=60" doc:"Exact genre facet value"`
	Tone      string `query:"tone" validate:"omitempty,max=60" doc:"Exact tone facet value"`
	AgeGroup  string `query:"ageGroup" validate:"omitempty,max=60" doc:"Exact age group facet value"`
	Sections  string `query:"sections" validate:"omitempty,max=200" doc:"Comma-separated section tags (matches any)"`
	Limit     int    `query:"limit" validate:"omitempty,gte=1,lte=100" doc:"Max results (default 20)"`
	Offset    int    `query:"offset" validate:"omitempty,gte=0" doc:"Pagination offset"`
	SortBy    string `query:"sortBy" validate:"omitempty,oneof=relevance title author recent" doc:"Sort order (default relevance)"`
	Facets    bool   `query:"facets" doc:"Include facet counts"`
}

// SearchOutput wraps the search result for Huma.
type SearchOutput struct {
	Body *search.SearchResult
}

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	params := search.SearchParams{
		Query:         input.Query,
		CompanyID:     input.CompanyID,
		Types:         splitCSV(input.Types),
		StoreID:       input.StoreID,
		Genre:         input.Genre,
		Tone:          input.Tone,
		AgeGroup:      input.AgeGroup,
		Sections:      splitCSV(input.Sections),
		Limit:         input.Limit,
		Offset:        input.Offset,
		SortBy:        input.SortBy,
		IncludeFacets: input.Facets,
		Highlight:     true,
	}

	result, err := s.services.Search.Search(ctx, access, params)
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Body: result}, nil
}

// splitCSV splits a comma-separated query value, dropping empty entries.
func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
