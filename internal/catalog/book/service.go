// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

// Use-case layer for the catalog.
//
// # Architecture
//
// The service validates business rules (ISBN integrity, uniqueness,
// stock bounds) and orchestrates the repository and listing cache. It is
// technology-agnostic and does not know about HTTP or SQL.
package book

import (
	"context"
	"strings"
	"time"

	"github.com/Ukj0ng/bookstore-api/internal/platform/apperr"
	"github.com/Ukj0ng/bookstore-api/internal/platform/constants"
	"github.com/Ukj0ng/bookstore-api/pkg/isbn"
	"github.com/Ukj0ng/bookstore-api/pkg/pagination"
)

// Service implements the catalog use cases.
type Service struct {
	bookRepository BookRepository
	listCache      ListCache
	sortFields     *SortFields
}

// NewService constructs a new catalog [Service].
//
// The sort-field table is injected rather than referenced globally so tests
// can construct engines with reduced or extended whitelists.
func NewService(bookRepo BookRepository, cache ListCache, sortFields *SortFields) *Service {
	if cache == nil {
		cache = NoopListCache{}
	}
	return &Service{
		bookRepository: bookRepo,
		listCache:      cache,
		sortFields:     sortFields,
	}
}

// SortFields exposes the injected whitelist for the HTTP layer's parser.
func (service *Service) SortFields() *SortFields {
	return service.sortFields
}

// Get returns a single book by ID.
func (service *Service) Get(context context.Context, id int64) (*Book, error) {
	return service.bookRepository.FindByID(context, id)
}

// List returns one page of the whole catalog, newest first.
func (service *Service) List(context context.Context, page pagination.Params) (pagination.Page[*Book], error) {
	spec := FilterSpec{
		Sort:      SortField{Name: "createdAt", Column: "created_at"},
		Direction: SortDesc,
		Page:      page,
	}
	return service.runListing(context, spec)
}

// Filter executes a validated [FilterSpec] against the catalog.
//
// The spec must come from [ParseFilter]; by the time it reaches the service
// every range and sort field has already been checked, so a store round-trip
// is the only thing left to do.
func (service *Service) Filter(context context.Context, spec FilterSpec) (pagination.Page[*Book], error) {
	return service.runListing(context, spec)
}

// Search performs the free-text title-or-author lookup.
//
// # Business Rules
//   - The keyword is required; a blank keyword is a 400, not an empty result.
//   - Keyword length is bounded to 100 characters.
func (service *Service) Search(context context.Context, keyword string, page pagination.Params) (pagination.Page[*Book], error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return pagination.Page[*Book]{}, apperr.InvalidInput("Please enter a search keyword")
	}
	if len([]rune(keyword)) > KeywordMaxLength {
		return pagination.Page[*Book]{}, apperr.InvalidInput("Search keyword is too long")
	}

	books, total, err := service.bookRepository.Search(context, keyword, page)
	if err != nil {
		return pagination.Page[*Book]{}, err
	}
	return pagination.NewPage(books, page, total), nil
}

// ByCategory lists the books belonging to one category, newest first.
func (service *Service) ByCategory(context context.Context, categoryID int64, page pagination.Params) (pagination.Page[*Book], error) {
	spec := FilterSpec{
		CategoryID: &categoryID,
		Sort:       SortField{Name: "createdAt", Column: "created_at"},
		Direction:  SortDesc,
		Page:       page,
	}
	return service.runListing(context, spec)
}

// BestSellers returns the top books by stock, served from cache when warm.
func (service *Service) BestSellers(context context.Context) ([]*Book, error) {
	return service.topListing(context, constants.CacheKeyBestSellers, service.bookRepository.TopByStock)
}

// Latest returns the most recently registered books, cache-backed.
func (service *Service) Latest(context context.Context) ([]*Book, error) {
	return service.topListing(context, constants.CacheKeyLatest, service.bookRepository.TopByCreatedAt)
}

// WriteInput carries the full set of book fields for create and update.
//
// Field-shape validation (lengths, ranges) happens at the HTTP boundary;
// the service enforces the cross-record business rules.
type WriteInput struct {
	Title           string
	Author          string
	ISBN            string
	Description     string
	Price           float64
	Stock           int
	PublicationDate *time.Time
	Publisher       string
	PageCount       int
	CategoryID      *int64
}

// Create registers a new book in the catalog.
//
// # Business Rules
//   - ISBN is optional; when present it must be structurally valid
//     (checksum-checked for ISBN-13) and unique.
//   - The (title, author) pair must be unique.
//
// ISBN validity and uniqueness are independent checks: a well-formed ISBN
// that is already registered is a Conflict, not an InvalidInput.
func (service *Service) Create(context context.Context, input WriteInput) (*Book, error) {
	if err := service.checkBusinessRules(context, input, 0); err != nil {
		return nil, err
	}

	book := &Book{
		Title:           input.Title,
		Author:          input.Author,
		ISBN:            isbn.Normalize(input.ISBN),
		Description:     input.Description,
		Price:           input.Price,
		Stock:           input.Stock,
		PublicationDate: input.PublicationDate,
		Publisher:       input.Publisher,
		PageCount:       input.PageCount,
		CategoryID:      input.CategoryID,
	}

	if err := service.bookRepository.Create(context, book); err != nil {
		return nil, err
	}

	service.listCache.Invalidate(context)
	return book, nil
}

// Update replaces all mutable fields of an existing book.
func (service *Service) Update(context context.Context, id int64, input WriteInput) (*Book, error) {
	book, err := service.bookRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.checkBusinessRules(context, input, id); err != nil {
		return nil, err
	}

	book.Title = input.Title
	book.Author = input.Author
	book.ISBN = isbn.Normalize(input.ISBN)
	book.Description = input.Description
	book.Price = input.Price
	book.Stock = input.Stock
	book.PublicationDate = input.PublicationDate
	book.Publisher = input.Publisher
	book.PageCount = input.PageCount
	book.CategoryID = input.CategoryID

	if err := service.bookRepository.Update(context, book); err != nil {
		return nil, err
	}

	service.listCache.Invalidate(context)
	return book, nil
}

// Delete removes a book permanently.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.bookRepository.Delete(context, id); err != nil {
		return err
	}

	service.listCache.Invalidate(context)
	return nil
}

// IncreaseStock adds amount to a book's stock.
func (service *Service) IncreaseStock(context context.Context, id int64, amount int) (*Book, error) {
	if err := checkStockAmount(amount); err != nil {
		return nil, err
	}
	return service.adjustStock(context, id, amount)
}

// DecreaseStock removes amount from a book's stock.
//
// Returns [apperr.Conflict] when the book does not hold enough stock; the
// decrement is atomic, so concurrent sales cannot oversell.
func (service *Service) DecreaseStock(context context.Context, id int64, amount int) (*Book, error) {
	if err := checkStockAmount(amount); err != nil {
		return nil, err
	}
	return service.adjustStock(context, id, -amount)
}

// # Internal Helpers

// checkBusinessRules verifies ISBN integrity and both uniqueness rules.
//
// ISBN is optional: a blank value skips both the checksum and the
// uniqueness check, so any number of ISBN-less books may coexist.
func (service *Service) checkBusinessRules(context context.Context, input WriteInput, excludeID int64) error {
	if input.ISBN != "" {
		if !isbn.Valid(input.ISBN) {
			return apperr.InvalidInput("Invalid ISBN")
		}

		isbnTaken, err := service.bookRepository.ExistsByISBN(context, isbn.Normalize(input.ISBN), excludeID)
		if err != nil {
			return err
		}
		if isbnTaken {
			return apperr.Conflict("A book with this ISBN already exists")
		}
	}

	pairTaken, err := service.bookRepository.ExistsByTitleAndAuthor(context, input.Title, input.Author, excludeID)
	if err != nil {
		return err
	}
	if pairTaken {
		return apperr.Conflict("This author already has a book with this title")
	}

	return nil
}

// runListing executes one repository page query and wraps the envelope.
func (service *Service) runListing(context context.Context, spec FilterSpec) (pagination.Page[*Book], error) {
	books, total, err := service.bookRepository.List(context, spec)
	if err != nil {
		return pagination.Page[*Book]{}, err
	}
	return pagination.NewPage(books, spec.Page, total), nil
}

// topListing is the shared read-through cache path for the top-10 listings.
func (service *Service) topListing(
	context context.Context,
	cacheKey string,
	fetch func(context.Context, int) ([]*Book, error),
) ([]*Book, error) {
	if books, ok := service.listCache.GetList(context, cacheKey); ok {
		return books, nil
	}

	books, err := fetch(context, TopListSize)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []*Book{}
	}

	service.listCache.SetList(context, cacheKey, books)
	return books, nil
}

// checkStockAmount bounds a single stock adjustment.
func checkStockAmount(amount int) error {
	if amount < 1 {
		return apperr.InvalidInput("Amount must be at least 1")
	}
	if amount > StockBatchMax {
		return apperr.InvalidInput("Amount exceeds the adjustment limit")
	}
	return nil
}

// adjustStock funnels both directions through the repository's atomic update.
func (service *Service) adjustStock(context context.Context, id int64, delta int) (*Book, error) {
	book, err := service.bookRepository.AdjustStock(context, id, delta)
	if err != nil {
		return nil, err
	}

	service.listCache.Invalidate(context)
	return book, nil
}
