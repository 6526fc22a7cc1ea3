// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

// Package category implements the category taxonomy the catalog is
// organized under.
package category

import (
	"time"
)

// Field length rules enforced on category payloads.
const (
	NameMinLength        = 1
	NameMaxLength        = 50
	DescriptionMaxLength = 500
)

// Category represents one catalog grouping.
//
// # Rules
//   - Name is unique.
//   - Slug is derived from the name at write time and is URL-safe.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	BookCount   int64     `json:"bookCount,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
