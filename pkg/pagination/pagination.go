// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how result pages are delivered in the API response envelope.
//
// Pages are zero-indexed: page 0 is the first page. Out-of-range values are
// rejected rather than clamped, so a client asking for size=5000 learns about
// the limit instead of silently receiving a different page shape than it
// asked for.
package pagination

import (
	"net/http"
	"strconv"

	"github.com/Ukj0ng/bookstore-api/internal/platform/apperr"
)

const (
	// DefaultSize is the number of items per page if not specified.
	DefaultSize = 10
	// MaxSize is the upper bound for items per page to prevent system abuse.
	MaxSize = 100
	// DefaultPage is the starting page (0-indexed).
	DefaultPage = 0
)

// Params holds the parsed page and size from a request's query string.
type Params struct {
	Page int
	Size int
}

// Offset returns the SQL OFFSET value derived from [Params.Page] and [Params.Size].
func (p Params) Offset() int {
	if p.Page <= 0 {
		return 0
	}
	return p.Page * p.Size
}

// Page is the standard envelope for one page of list results.
//
// Content is always a non-nil slice so the JSON field serializes as [] and
// never as null, even for an empty page.
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
	Empty         bool  `json:"empty"`
}

// NewPage constructs a result page with derived navigation metadata.
//
// TotalPages is computed as ceil(total / size); a zero-row result still has
// First and Last set since the (empty) page 0 is both the first and last page.
func NewPage[T any](content []T, params Params, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if params.Size > 0 {
		totalPages = int((total + int64(params.Size) - 1) / int64(params.Size))
	}

	return Page[T]{
		Content:       content,
		PageNumber:    params.Page,
		PageSize:      params.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         params.Page == 0,
		Last:          params.Page >= totalPages-1,
		Empty:         len(content) == 0,
	}
}

// FromRequest parses "page" and "size" query parameters from an HTTP request.
//
// # Strictness
//
// Missing parameters fall back to [DefaultPage] and [DefaultSize]; present
// but invalid values (not an integer, page < 0, size < 1, size > [MaxSize])
// produce a 400 error.
func FromRequest(r *http.Request) (Params, error) {
	page, err := parseIntParam(r, "page", DefaultPage)
	if err != nil {
		return Params{}, err
	}
	size, err := parseIntParam(r, "size", DefaultSize)
	if err != nil {
		return Params{}, err
	}

	if page < 0 {
		return Params{}, apperr.InvalidInput("Page index must not be negative")
	}
	if size < 1 {
		return Params{}, apperr.InvalidInput("Page size must be at least 1")
	}
	if size > MaxSize {
		return Params{}, apperr.InvalidInput("Page size must be at most " + strconv.Itoa(MaxSize))
	}

	return Params{Page: page, Size: size}, nil
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.InvalidInput("Parameter '" + key + "' must be an integer")
	}

	return n, nil
}
