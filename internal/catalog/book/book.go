// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

// Package book implements the book catalog: CRUD, stock management, and the
// validated filter/search listing engine.
//
// # Architecture
//
// Entities in this package represent the "Truth" of the catalog domain.
// They have no dependencies on outer layers (like databases, APIs, or libraries).
package book

import (
	"time"
)

// Field and range rules enforced on book payloads and filter parameters.
const (
	TitleMinLength       = 1
	TitleMaxLength       = 200
	AuthorMaxLength      = 100
	PublisherMaxLength   = 100
	DescriptionMaxLength = 2000

	// PriceMax bounds the price of a single book on write.
	PriceMax = 1_000_000
	// FilterPriceMax bounds price-range filter parameters; looser than
	// PriceMax so historical data with raised prices still filters.
	FilterPriceMax = 10_000_000

	StockMax = 100_000
	// StockBatchMax bounds a single increase/decrease adjustment.
	StockBatchMax = 10_000

	PageCountMin = 1
	PageCountMax = 50_000

	KeywordMaxLength = 100

	// TopListSize is the number of entries in the bestseller and
	// latest-arrival listings.
	TopListSize = 10
)

// Book represents a single catalog entry.
//
// # Rules
//   - ISBN is unique across the catalog.
//   - (Title, Author) pairs are unique; the same title may exist from
//     different authors.
//   - Stock never goes below zero.
type Book struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	ISBN            string     `json:"isbn"`
	Description     string     `json:"description,omitempty"`
	Price           float64    `json:"price"`
	Stock           int        `json:"stock"`
	PublicationDate *time.Time `json:"publicationDate,omitempty"`
	Publisher       string     `json:"publisher,omitempty"`
	PageCount       int        `json:"pageCount,omitempty"`
	CategoryID      *int64     `json:"categoryId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}
