// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

// Filter parsing and sort-field resolution for the catalog listing engine.
//
// # Strictness
//
// Every parameter is either absent, valid, or a 400. Nothing is silently
// coerced or dropped: a price that does not parse, a sort alias outside the
// whitelist, or an inverted price range all fail before any query runs.
package book

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Ukj0ng/bookstore-api/internal/platform/apperr"
	"github.com/Ukj0ng/bookstore-api/pkg/pagination"
)

// SortDirection is the resolved ordering for a listing query.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// SortField is one entry of the sortable-field whitelist.
type SortField struct {
	// Name is the canonical field name exposed to API clients.
	Name string
	// Column is the backing SQL column. Only values from this table ever
	// reach an ORDER BY clause, which is what keeps the dynamic sort safe.
	Column string
}

// SortFields is the immutable alias table mapping accepted sortBy values to
// canonical sortable fields.
//
// It is constructed once at startup and injected into the service; there is
// no package-level mutable registry.
type SortFields struct {
	aliases map[string]SortField
}

// NewSortFields builds the sortable-field whitelist.
//
// Each canonical field is reachable under its camelCase name, its snake_case
// spelling, its all-lowercase spelling, and a Korean alias, so clients built
// against either naming convention or the localized frontend keep working.
func NewSortFields() *SortFields {
	fields := map[string]SortField{
		"title":  {Name: "title", Column: "title"},
		"author": {Name: "author", Column: "author"},
		"price":  {Name: "price", Column: "price"},
		"stock":  {Name: "stock", Column: "stock"},

		"createdat":  {Name: "createdAt", Column: "created_at"},
		"created_at": {Name: "createdAt", Column: "created_at"},

		"publicationdate":  {Name: "publicationDate", Column: "publication_date"},
		"publication_date": {Name: "publicationDate", Column: "publication_date"},

		"pagecount":  {Name: "pageCount", Column: "page_count"},
		"page_count": {Name: "pageCount", Column: "page_count"},

		// Korean aliases used by the localized storefront.
		"제목":   {Name: "title", Column: "title"},
		"저자":   {Name: "author", Column: "author"},
		"가격":   {Name: "price", Column: "price"},
		"재고":   {Name: "stock", Column: "stock"},
		"등록일":  {Name: "createdAt", Column: "created_at"},
		"출판일":  {Name: "publicationDate", Column: "publication_date"},
		"페이지수": {Name: "pageCount", Column: "page_count"},
	}
	return &SortFields{aliases: fields}
}

// Resolve maps a raw sortBy value to a whitelisted field.
//
// The lookup is case-insensitive and ignores surrounding whitespace. An
// empty value resolves to the createdAt default; anything unresolvable is a
// 400 naming the rejected value.
func (table *SortFields) Resolve(raw string) (SortField, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return table.aliases["createdat"], nil
	}

	field, ok := table.aliases[normalized]
	if !ok {
		return SortField{}, apperr.InvalidInput("Unsupported sort field: " + strings.TrimSpace(raw))
	}
	return field, nil
}

// FilterSpec is a fully validated listing request.
//
// Pointer fields distinguish "not filtered" from a zero value; an absent
// field imposes no constraint.
type FilterSpec struct {
	TitleContains  string
	AuthorContains string
	CategoryID     *int64
	MinPrice       *float64
	MaxPrice       *float64
	InStockOnly    bool

	Sort      SortField
	Direction SortDirection

	Page pagination.Params
}

// ParseFilter validates the query string of GET /api/books/filter into a
// [FilterSpec].
//
// # Algorithm
//  1. Trim strings; empty strings count as absent.
//  2. Parse numeric parameters strictly; non-numeric input is a 400.
//  3. Validate price bounds: both non-negative, capped, min <= max.
//  4. Resolve the sort alias against the whitelist.
//  5. Parse the page window with the shared strict pagination rules.
func ParseFilter(r *http.Request, sortFields *SortFields) (FilterSpec, error) {
	query := r.URL.Query()
	spec := FilterSpec{}

	spec.TitleContains = strings.TrimSpace(query.Get("title"))
	spec.AuthorContains = strings.TrimSpace(query.Get("author"))

	// ── Numeric Parameters ────────────────────────────────────────────────

	if raw := strings.TrimSpace(query.Get("categoryId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			return FilterSpec{}, apperr.InvalidInput("Parameter 'categoryId' must be a positive integer")
		}
		spec.CategoryID = &id
	}

	minPrice, err := parsePrice(query.Get("minPrice"), "minPrice")
	if err != nil {
		return FilterSpec{}, err
	}
	spec.MinPrice = minPrice

	maxPrice, err := parsePrice(query.Get("maxPrice"), "maxPrice")
	if err != nil {
		return FilterSpec{}, err
	}
	spec.MaxPrice = maxPrice

	if spec.MinPrice != nil && spec.MaxPrice != nil && *spec.MinPrice > *spec.MaxPrice {
		return FilterSpec{}, apperr.InvalidInput("Minimum price must not exceed maximum price")
	}

	if raw := strings.TrimSpace(query.Get("inStockOnly")); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			return FilterSpec{}, apperr.InvalidInput("Parameter 'inStockOnly' must be a boolean")
		}
		spec.InStockOnly = inStock
	}

	// ── Sorting ───────────────────────────────────────────────────────────

	spec.Sort, err = sortFields.Resolve(query.Get("sortBy"))
	if err != nil {
		return FilterSpec{}, err
	}
	spec.Direction = ResolveDirection(query.Get("sortDirection"))

	// ── Page Window ───────────────────────────────────────────────────────

	spec.Page, err = pagination.FromRequest(r)
	if err != nil {
		return FilterSpec{}, err
	}

	return spec, nil
}

// ResolveDirection interprets a raw sortDirection value.
//
// Only an explicit (case-insensitive) "asc" selects ascending order;
// everything else, including absence, is descending.
func ResolveDirection(raw string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(raw), "asc") {
		return SortAsc
	}
	return SortDesc
}

// parsePrice strictly parses an optional price parameter.
func parsePrice(raw, name string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperr.InvalidInput("Parameter '" + name + "' must be a number")
	}
	if value < 0 {
		return nil, apperr.InvalidInput("Parameter '" + name + "' must not be negative")
	}
	if value > FilterPriceMax {
		return nil, apperr.InvalidInput("Parameter '" + name + "' is out of range")
	}

	return &value, nil
}
