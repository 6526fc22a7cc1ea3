// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

package book_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ukj0ng/bookstore-api/internal/catalog/book"
	"github.com/Ukj0ng/bookstore-api/internal/platform/apperr"
	"github.com/Ukj0ng/bookstore-api/internal/platform/constants"
	"github.com/Ukj0ng/bookstore-api/pkg/pagination"
)

// fakeBookRepository is an in-memory BookRepository sufficient for the
// business-rule paths the service owns. Listing queries return insertion
// order; SQL-level ordering is covered by the repository itself.
type fakeBookRepository struct {
	books  map[int64]*book.Book
	nextID int64
}

func newFakeBookRepository() *fakeBookRepository {
	return &fakeBookRepository{books: make(map[int64]*book.Book), nextID: 1}
}

func (r *fakeBookRepository) FindByID(_ context.Context, id int64) (*book.Book, error) {
	stored, ok := r.books[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeBookRepository) all() []*book.Book {
	books := make([]*book.Book, 0, len(r.books))
	for id := int64(1); id < r.nextID; id++ {
		if stored, ok := r.books[id]; ok {
			books = append(books, stored)
		}
	}
	return books
}

func (r *fakeBookRepository) List(_ context.Context, spec book.FilterSpec) ([]*book.Book, int64, error) {
	matches := make([]*book.Book, 0)
	for _, stored := range r.all() {
		if spec.CategoryID != nil && (stored.CategoryID == nil || *stored.CategoryID != *spec.CategoryID) {
			continue
		}
		if spec.InStockOnly && stored.Stock == 0 {
			continue
		}
		matches = append(matches, stored)
	}
	return matches, int64(len(matches)), nil
}

func (r *fakeBookRepository) Search(_ context.Context, keyword string, _ pagination.Params) ([]*book.Book, int64, error) {
	matches := make([]*book.Book, 0)
	for _, stored := range r.all() {
		if strings.Contains(strings.ToLower(stored.Title), strings.ToLower(keyword)) ||
			strings.Contains(strings.ToLower(stored.Author), strings.ToLower(keyword)) {
			matches = append(matches, stored)
		}
	}
	return matches, int64(len(matches)), nil
}

func (r *fakeBookRepository) TopByStock(_ context.Context, limit int) ([]*book.Book, error) {
	books := r.all()
	if len(books) > limit {
		books = books[:limit]
	}
	return books, nil
}

func (r *fakeBookRepository) TopByCreatedAt(_ context.Context, limit int) ([]*book.Book, error) {
	return r.TopByStock(nil, limit)
}

func (r *fakeBookRepository) ExistsByISBN(_ context.Context, isbn string, excludeID int64) (bool, error) {
	for _, stored := range r.books {
		if stored.ISBN == isbn && stored.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookRepository) ExistsByTitleAndAuthor(_ context.Context, title, author string, excludeID int64) (bool, error) {
	for _, stored := range r.books {
		if stored.Title == title && stored.Author == author && stored.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookRepository) Create(_ context.Context, newBook *book.Book) error {
	newBook.ID = r.nextID
	r.nextID++
	clone := *newBook
	r.books[newBook.ID] = &clone
	return nil
}

func (r *fakeBookRepository) Update(_ context.Context, updated *book.Book) error {
	if _, ok := r.books[updated.ID]; !ok {
		return apperr.NotFound("Book")
	}
	clone := *updated
	r.books[updated.ID] = &clone
	return nil
}

func (r *fakeBookRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.books[id]; !ok {
		return apperr.NotFound("Book")
	}
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepository) AdjustStock(_ context.Context, id int64, delta int) (*book.Book, error) {
	stored, ok := r.books[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	next := stored.Stock + delta
	if next < 0 || next > book.StockMax {
		return nil, apperr.Conflict("Stock adjustment out of range")
	}
	stored.Stock = next
	clone := *stored
	return &clone, nil
}

// fakeListCache records cache traffic so tests can assert on read-through
// and invalidation behavior.
type fakeListCache struct {
	entries     map[string][]*book.Book
	invalidated int
}

func newFakeListCache() *fakeListCache {
	return &fakeListCache{entries: make(map[string][]*book.Book)}
}

func (c *fakeListCache) GetList(_ context.Context, key string) ([]*book.Book, bool) {
	books, ok := c.entries[key]
	return books, ok
}

func (c *fakeListCache) SetList(_ context.Context, key string, books []*book.Book) {
	c.entries[key] = books
}

func (c *fakeListCache) Invalidate(_ context.Context) {
	c.invalidated++
	c.entries = make(map[string][]*book.Book)
}

const (
	validISBN13      = "9780134190440"
	otherValidISBN13 = "9780134685991"
)

func validInput() book.WriteInput {
	return book.WriteInput{
		Title:  "The Go Programming Language",
		Author: "Alan Donovan",
		ISBN:   validISBN13,
		Price:  39.99,
		Stock:  10,
	}
}

func newTestCatalog(t *testing.T) (*book.Service, *fakeBookRepository, *fakeListCache) {
	t.Helper()

	repository := newFakeBookRepository()
	cache := newFakeListCache()
	return book.NewService(repository, cache, book.NewSortFields()), repository, cache
}

func requireAppError(t *testing.T, err error) *apperr.AppError {
	t.Helper()

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	return appError
}

/*
TestService_Create verifies happy-path creation and ISBN normalization.
*/
func TestService_Create(t *testing.T) {
	service, repository, cache := newTestCatalog(t)

	input := validInput()
	input.ISBN = "978-0-13-419044-0"

	created, err := service.Create(context.Background(), input)
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, validISBN13, created.ISBN, "ISBN should be stored without separators")
	assert.Len(t, repository.books, 1)
	assert.Equal(t, 1, cache.invalidated, "a mutation must drop cached listings")
}

/*
TestService_Create_InvalidISBN verifies that a checksum failure is a 400.
*/
func TestService_Create_InvalidISBN(t *testing.T) {
	service, _, _ := newTestCatalog(t)

	for _, bad := range []string{"12345", "9780134190441", "978013419044X"} {
		input := validInput()
		input.ISBN = bad

		_, err := service.Create(context.Background(), input)
		appError := requireAppError(t, err)
		assert.Equal(t, apperr.CodeInvalidInput, appError.Code, "isbn %q", bad)
		assert.Equal(t, "Invalid ISBN", appError.Message)
	}
}

/*
TestService_Create_BlankISBN verifies that ISBN is optional: a blank value
skips both the checksum and the uniqueness check, so multiple ISBN-less
books can coexist.
*/
func TestService_Create_BlankISBN(t *testing.T) {
	service, repository, _ := newTestCatalog(t)

	first := validInput()
	first.ISBN = ""

	_, err := service.Create(context.Background(), first)
	require.NoError(t, err)

	second := validInput()
	second.ISBN = ""
	second.Title = "A Different Title"

	_, err = service.Create(context.Background(), second)
	require.NoError(t, err)
	assert.Len(t, repository.books, 2)
}

/*
TestService_Create_DuplicateISBN verifies that a well-formed but already
registered ISBN is a Conflict, not an InvalidInput.
*/
func TestService_Create_DuplicateISBN(t *testing.T) {
	service, _, _ := newTestCatalog(t)

	_, err := service.Create(context.Background(), validInput())
	require.NoError(t, err)

	second := validInput()
	second.Title = "A Different Title"

	_, err = service.Create(context.Background(), second)
	appError := requireAppError(t, err)
	assert.Equal(t, apperr.CodeConflict, appError.Code)
	assert.Equal(t, "A book with this ISBN already exists", appError.Message)
}

/*
TestService_Create_DuplicateTitleAuthor verifies the (title, author) pair rule.
*/
func TestService_Create_DuplicateTitleAuthor(t *testing.T) {
	service, _, _ := newTestCatalog(t)

	_, err := service.Create(context.Background(), validInput())
	require.NoError(t, err)

	second := validInput()
	second.ISBN = otherValidISBN13

	_, err = service.Create(context.Background(), second)
	appError := requireAppError(t, err)
	assert.Equal(t, apperr.CodeConflict, appError.Code)
	assert.Equal(t, "This author already has a book with this title", appError.Message)
}

/*
TestService_Update verifies that updating a book keeps its own ISBN usable
while still rejecting collisions with other books.
*/
func TestService_Update(t *testing.T) {
	service, _, cache := newTestCatalog(t)

	created, err := service.Create(context.Background(), validInput())
	require.NoError(t, err)

	// 1. Re-submitting the book's own ISBN is not a self-collision.
	input := validInput()
	input.Price = 45.00

	updated, err := service.Update(context.Background(), created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, 45.00, updated.Price)

	// 2. Colliding with another book's ISBN is still a conflict.
	other := validInput()
	other.Title = "Another Book"
	other.ISBN = otherValidISBN13
	_, err = service.Create(context.Background(), other)
	require.NoError(t, err)

	input.ISBN = otherValidISBN13
	_, err = service.Update(context.Background(), created.ID, input)
	appError := requireAppError(t, err)
	assert.Equal(t, apperr.CodeConflict, appError.Code)

	// 3. Unknown IDs are a NotFound before any rule check.
	_, err = service.Update(context.Background(), 9999, validInput())
	appError = requireAppError(t, err)
	assert.Equal(t, apperr.CodeNotFound, appError.Code)

	assert.GreaterOrEqual(t, cache.invalidated, 2)
}

/*
TestService_Search verifies keyword validation ahead of any store round-trip.
*/
func TestService_Search(t *testing.T) {
	service, _, _ := newTestCatalog(t)

	_, err := service.Create(context.Background(), validInput())
	require.NoError(t, err)

	// 1. A blank keyword is rejected, not an empty result.
	for _, blank := range []string{"", "   "} {
		_, err := service.Search(context.Background(), blank, pagination.Params{Page: 0, Size: 10})
		appError := requireAppError(t, err)
		assert.Equal(t, "Please enter a search keyword", appError.Message)
	}

	// 2. An over-long keyword is rejected; the bound counts runes.
	tooLong := strings.Repeat("가", book.KeywordMaxLength+1)
	_, err = service.Search(context.Background(), tooLong, pagination.Params{Page: 0, Size: 10})
	appError := requireAppError(t, err)
	assert.Equal(t, "Search keyword is too long", appError.Message)

	// 3. A matching keyword finds the book by author.
	page, err := service.Search(context.Background(), "donovan", pagination.Params{Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalElements)
}

/*
TestService_StockAdjustments verifies amount bounds and the oversell guard.
*/
func TestService_StockAdjustments(t *testing.T) {
	service, _, cache := newTestCatalog(t)

	created, err := service.Create(context.Background(), validInput())
	require.NoError(t, err)

	// 1. Increase and decrease move the counter.
	updated, err := service.IncreaseStock(context.Background(), created.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, updated.Stock)

	updated, err = service.DecreaseStock(context.Background(), created.ID, 15)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)

	// 2. Decreasing below zero is a conflict, and stock is untouched.
	_, err = service.DecreaseStock(context.Background(), created.ID, 1)
	appError := requireAppError(t, err)
	assert.Equal(t, apperr.CodeConflict, appError.Code)

	current, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, current.Stock)

	// 3. Amount bounds are validated before touching the store.
	for _, amount := range []int{0, -3} {
		_, err := service.IncreaseStock(context.Background(), created.ID, amount)
		appError := requireAppError(t, err)
		assert.Equal(t, "Amount must be at least 1", appError.Message)
	}

	_, err = service.IncreaseStock(context.Background(), created.ID, book.StockBatchMax+1)
	appError = requireAppError(t, err)
	assert.Equal(t, "Amount exceeds the adjustment limit", appError.Message)

	assert.GreaterOrEqual(t, cache.invalidated, 3)
}

/*
TestService_BestSellers_Caching verifies the read-through path: first call
fills the cache, subsequent calls are served from it, mutations drop it.
*/
func TestService_BestSellers_Caching(t *testing.T) {
	service, repository, cache := newTestCatalog(t)

	_, err := service.Create(context.Background(), validInput())
	require.NoError(t, err)

	// 1. Cold cache: served from the repository, then cached.
	books, err := service.BestSellers(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)

	cached, ok := cache.entries[constants.CacheKeyBestSellers]
	require.True(t, ok)
	assert.Len(t, cached, 1)

	// 2. Warm cache: the repository is no longer consulted.
	repository.books = map[int64]*book.Book{}
	books, err = service.BestSellers(context.Background())
	require.NoError(t, err)
	assert.Len(t, books, 1, "warm cache should mask the emptied repository")

	// 3. A mutation invalidates, so the next read sees fresh data.
	other := validInput()
	other.Title = "Another Book"
	other.ISBN = otherValidISBN13
	_, err = service.Create(context.Background(), other)
	require.NoError(t, err)

	books, err = service.BestSellers(context.Background())
	require.NoError(t, err)
	assert.Len(t, books, 1)
	assert.Equal(t, "Another Book", books[0].Title)
}

/*
TestService_List_Envelope verifies the page envelope fields for a known set.
*/
func TestService_List_Envelope(t *testing.T) {
	service, _, _ := newTestCatalog(t)

	for index := 0; index < 3; index++ {
		input := validInput()
		input.Title = input.Title + " " + strings.Repeat("I", index+1)
		input.ISBN = []string{validISBN13, otherValidISBN13, "9781491941959"}[index]
		_, err := service.Create(context.Background(), input)
		require.NoError(t, err)
	}

	page, err := service.List(context.Background(), pagination.Params{Page: 0, Size: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.First)
	assert.False(t, page.Last)
	assert.False(t, page.Empty)
}
