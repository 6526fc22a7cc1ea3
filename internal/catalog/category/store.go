// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

package category

import (
	"context"
)

// CategoryRepository defines the data access contract for categories.
type CategoryRepository interface {
	// FindAll returns every category ordered by name.
	FindAll(ctx context.Context) ([]*Category, error)

	// FindAllWithBookCounts returns every category with its book count.
	FindAllWithBookCounts(ctx context.Context) ([]*Category, error)

	// FindByID returns the category with the given ID.
	//
	// Returns [apperr.NotFound] if the category does not exist.
	FindByID(ctx context.Context, id int64) (*Category, error)

	// SearchByName returns categories whose name contains the given
	// fragment, case-insensitively, ordered by name.
	SearchByName(ctx context.Context, name string) ([]*Category, error)

	// ExistsByName reports whether a category with this name exists,
	// ignoring the category with excludeID (0 to exclude nothing).
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)

	// Create persists a new category and fills in the generated ID.
	Create(ctx context.Context, category *Category) error

	// Update replaces the name, slug and description of a category.
	//
	// Returns [apperr.NotFound] if the category does not exist.
	Update(ctx context.Context, category *Category) error

	// Delete removes a category. Books referencing it keep existing with
	// their category cleared.
	//
	// Returns [apperr.NotFound] if the category does not exist.
	Delete(ctx context.Context, id int64) error
}
