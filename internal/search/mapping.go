package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for search documents.
//
// The mapping is designed with these priorities:
//  1. Fast full-text search on titles and recommendations with English stemming
//  2. Boosted relevance for author matches
//  3. Exact keyword matching for tenant, type, and facet filters
//  4. Term vectors enabled on key fields for highlighting
func buildIndexMapping() mapping.IndexMapping {
	// Create the index mapping
	indexMapping := bleve.NewIndexMapping()

	// Use English analyzer as default for text fields
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	// Create document mapping
	docMapping := bleve.NewDocumentMapping()

	// --- Text fields (full-text searchable) ---

	// Name field - primary search target, boosted
	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = en.AnalyzerName
	nameFieldMapping.Store = true
	nameFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	// Subtitle - searchable text
	subtitleFieldMapping := bleve.NewTextFieldMapping()
	subtitleFieldMapping.Analyzer = en.AnalyzerName
	subtitleFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("subtitle", subtitleFieldMapping)

	// Description - searchable but not stored (too large)
	descFieldMapping := bleve.NewTextFieldMapping()
	descFieldMapping.Analyzer = en.AnalyzerName
	descFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("description", descFieldMapping)

	// Author - searchable, important for book search
	authorFieldMapping := bleve.NewTextFieldMapping()
	authorFieldMapping.Analyzer = en.AnalyzerName
	authorFieldMapping.Store = true
	authorFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("author", authorFieldMapping)

	// Recommendation - the staff's pitch, searchable and highlighted
	recFieldMapping := bleve.NewTextFieldMapping()
	recFieldMapping.Analyzer = en.AnalyzerName
	recFieldMapping.Store = true
	recFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("recommendation", recFieldMapping)

	// Publisher - searchable with simple analyzer (no stemming)
	publisherFieldMapping := bleve.NewTextFieldMapping()
	publisherFieldMapping.Analyzer = simple.Name
	publisherFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("publisher", publisherFieldMapping)

	// --- Keyword fields (exact match, facetable) ---

	// Company - the tenant boundary; every query filters on it
	companyFieldMapping := bleve.NewTextFieldMapping()
	companyFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("company_id", companyFieldMapping)

	// Store - for store-scoped narrowing
	storeFieldMapping := bleve.NewTextFieldMapping()
	storeFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("store_id", storeFieldMapping)

	// Type - for filtering by document type
	typeFieldMapping := bleve.NewTextFieldMapping()
	typeFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("type", typeFieldMapping)

	// ID - stored but not analyzed
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Facet fields - exact values for filtering and counting
	genreFieldMapping := bleve.NewTextFieldMapping()
	genreFieldMapping.Analyzer = keyword.Name
	genreFieldMapping.Store = true
	genreFieldMapping.IncludeTermVectors = true // For faceting
	docMapping.AddFieldMappingsAt("genre", genreFieldMapping)

	toneFieldMapping := bleve.NewTextFieldMapping()
	toneFieldMapping.Analyzer = keyword.Name
	toneFieldMapping.Store = true
	toneFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("tone", toneFieldMapping)

	ageGroupFieldMapping := bleve.NewTextFieldMapping()
	ageGroupFieldMapping.Analyzer = keyword.Name
	ageGroupFieldMapping.Store = true
	ageGroupFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("age_group", ageGroupFieldMapping)

	// Sections - keyword analyzer keeps compound tags intact
	// (e.g., "young-adult")
	sectionsFieldMapping := bleve.NewTextFieldMapping()
	sectionsFieldMapping.Analyzer = keyword.Name
	sectionsFieldMapping.Store = true
	sectionsFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("sections", sectionsFieldMapping)

	// Visibility - lists only
	visibilityFieldMapping := bleve.NewTextFieldMapping()
	visibilityFieldMapping.Analyzer = keyword.Name
	visibilityFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("visibility", visibilityFieldMapping)

	// --- Numeric fields (range queries, sorting) ---

	itemCountFieldMapping := bleve.NewNumericFieldMapping()
	itemCountFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("item_count", itemCountFieldMapping)

	// Timestamps - for sorting by recency
	createdAtFieldMapping := bleve.NewNumericFieldMapping()
	createdAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdAtFieldMapping)

	updatedAtFieldMapping := bleve.NewNumericFieldMapping()
	updatedAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("updated_at", updatedAtFieldMapping)

	// Register the document mapping
	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
