// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

package book

import (
	"context"

	"github.com/Ukj0ng/bookstore-api/pkg/pagination"
)

// BookRepository defines the data access contract for the book catalog.
//
// # Implementations
//
// The canonical implementation is PostgreSQL ([PostgresBookRepository]).
type BookRepository interface {
	// FindByID returns the book with the given ID.
	//
	// Returns [apperr.NotFound] if the book does not exist.
	FindByID(ctx context.Context, id int64) (*Book, error)

	// List returns one page of the catalog ordered by the spec's sort field,
	// plus the total number of matching rows.
	//
	// The spec is assumed to be validated; List never re-checks ranges.
	List(ctx context.Context, spec FilterSpec) ([]*Book, int64, error)

	// Search returns books whose title OR author contains the keyword,
	// case-insensitively, newest first.
	Search(ctx context.Context, keyword string, page pagination.Params) ([]*Book, int64, error)

	// TopByStock returns the limit books with the highest stock.
	TopByStock(ctx context.Context, limit int) ([]*Book, error)

	// TopByCreatedAt returns the limit most recently registered books.
	TopByCreatedAt(ctx context.Context, limit int) ([]*Book, error)

	// ExistsByISBN reports whether a book with this ISBN is already
	// registered, ignoring the book with excludeID (0 to exclude nothing).
	ExistsByISBN(ctx context.Context, isbn string, excludeID int64) (bool, error)

	// ExistsByTitleAndAuthor reports whether this (title, author) pair is
	// already registered, ignoring the book with excludeID.
	ExistsByTitleAndAuthor(ctx context.Context, title, author string, excludeID int64) (bool, error)

	// Create persists a new book and fills in the generated ID.
	Create(ctx context.Context, book *Book) error

	// Update replaces all mutable fields of an existing book.
	//
	// Returns [apperr.NotFound] if the book does not exist.
	Update(ctx context.Context, book *Book) error

	// Delete removes a book permanently.
	//
	// Returns [apperr.NotFound] if the book does not exist.
	Delete(ctx context.Context, id int64) error

	// AdjustStock atomically adds delta (possibly negative) to a book's
	// stock and returns the updated row.
	//
	// Returns [apperr.NotFound] for an unknown book and [apperr.Conflict]
	// when the adjustment would push stock below zero or above max.
	AdjustStock(ctx context.Context, id int64, delta int) (*Book, error)
}

// ListCache is a read-through cache for the hot top-10 listings.
//
// A cache miss or error is never fatal; callers fall back to the repository.
type ListCache interface {
	// GetList returns the cached listing under key, or ok=false on miss.
	GetList(ctx context.Context, key string) ([]*Book, bool)

	// SetList stores a listing under key with the standard TTL.
	SetList(ctx context.Context, key string, books []*Book)

	// Invalidate drops all cached listings after a catalog mutation.
	Invalidate(ctx context.Context)
}
