// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

// PostgreSQL implementation of the catalog storage contract.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types via the dberr translator to avoid leaking storage
// implementation details.
package book

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ukj0ng/bookstore-api/internal/platform/apperr"
	"github.com/Ukj0ng/bookstore-api/internal/platform/dberr"
	"github.com/Ukj0ng/bookstore-api/pkg/pagination"
)

// isbn is stored as NULL when absent; COALESCE keeps the Go entity a plain
// string with "" meaning no ISBN.
const bookColumns = `id, title, author, COALESCE(isbn, ''), description, price, stock,
	publication_date, publisher, page_count, category_id, created_at, updated_at`

// PostgresBookRepository implements the BookRepository interface using pgx.
type PostgresBookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository creates a new PostgreSQL implementation of the BookRepository.
func NewBookRepository(pool *pgxpool.Pool) *PostgresBookRepository {
	return &PostgresBookRepository{pool: pool}
}

// FindByID retrieves a single book by its primary key.
func (repository *PostgresBookRepository) FindByID(ctx context.Context, id int64) (*Book, error) {
	query := "SELECT " + bookColumns + " FROM books WHERE id = $1"

	book, err := scanBook(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Translate(err, "Book", "")
	}
	return book, nil
}

/*
List returns a filtered, paginated slice of books and the total count.

Description: The query is assembled dynamically from the validated spec:
  - Window Function: Uses COUNT(*) OVER() to retrieve the total record
    count without a second query.
  - Numbered Arguments: every client value travels as a bind parameter;
    only whitelisted column names from [SortField] are interpolated.

Parameters:
  - ctx: context.Context
  - spec: The validated filter specification.

Returns:
  - []*Book: Slice of hydrated book entities
  - int64: Total count matching filters
  - error: Database execution errors
*/
func (repository *PostgresBookRepository) List(ctx context.Context, spec FilterSpec) ([]*Book, int64, error) {

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString("SELECT " + bookColumns + ", COUNT(*) OVER() AS total_count FROM books WHERE TRUE")

	// Apply Filters (Dynamic WHERE clause construction)
	if spec.TitleContains != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND title ILIKE '%%' || $%d || '%%'", argID))
		args = append(args, spec.TitleContains)
		argID++
	}

	if spec.AuthorContains != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND author ILIKE '%%' || $%d || '%%'", argID))
		args = append(args, spec.AuthorContains)
		argID++
	}

	if spec.CategoryID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND category_id = $%d", argID))
		args = append(args, *spec.CategoryID)
		argID++
	}

	// Price bounds are inclusive on both ends.
	if spec.MinPrice != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND price >= $%d", argID))
		args = append(args, *spec.MinPrice)
		argID++
	}

	if spec.MaxPrice != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND price <= $%d", argID))
		args = append(args, *spec.MaxPrice)
		argID++
	}

	if spec.InStockOnly {
		queryBuilder.WriteString(" AND stock > 0")
	}

	// Apply Sorting. Sort.Column comes from the whitelist, never from the
	// client, so interpolating it here is safe.
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s, id %s", spec.Sort.Column, spec.Direction, spec.Direction))

	// Apply Page Window
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, spec.Page.Size, spec.Page.Offset())

	return repository.queryPage(ctx, queryBuilder.String(), args)
}

// Search returns books whose title or author contains the keyword, newest first.
func (repository *PostgresBookRepository) Search(ctx context.Context, keyword string, page pagination.Params) ([]*Book, int64, error) {
	query := "SELECT " + bookColumns + ", COUNT(*) OVER() AS total_count FROM books" +
		" WHERE title ILIKE '%' || $1 || '%' OR author ILIKE '%' || $1 || '%'" +
		" ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3"

	return repository.queryPage(ctx, query, []any{keyword, page.Size, page.Offset()})
}

// TopByStock returns the books with the highest stock.
func (repository *PostgresBookRepository) TopByStock(ctx context.Context, limit int) ([]*Book, error) {
	query := "SELECT " + bookColumns + " FROM books ORDER BY stock DESC, id ASC LIMIT $1"
	return repository.queryList(ctx, query, limit)
}

// TopByCreatedAt returns the most recently registered books.
func (repository *PostgresBookRepository) TopByCreatedAt(ctx context.Context, limit int) ([]*Book, error) {
	query := "SELECT " + bookColumns + " FROM books ORDER BY created_at DESC, id DESC LIMIT $1"
	return repository.queryList(ctx, query, limit)
}

// ExistsByISBN reports whether another book already uses this ISBN.
func (repository *PostgresBookRepository) ExistsByISBN(ctx context.Context, isbn string, excludeID int64) (bool, error) {
	const query = "SELECT EXISTS (SELECT 1 FROM books WHERE isbn = $1 AND id <> $2)"

	var found bool
	if err := repository.pool.QueryRow(ctx, query, isbn, excludeID).Scan(&found); err != nil {
		return false, fmt.Errorf("postgres_book_repo_exists_isbn_failed: %w", err)
	}
	return found, nil
}

// ExistsByTitleAndAuthor reports whether this (title, author) pair is taken.
func (repository *PostgresBookRepository) ExistsByTitleAndAuthor(ctx context.Context, title, author string, excludeID int64) (bool, error) {
	const query = "SELECT EXISTS (SELECT 1 FROM books WHERE title = $1 AND author = $2 AND id <> $3)"

	var found bool
	if err := repository.pool.QueryRow(ctx, query, title, author, excludeID).Scan(&found); err != nil {
		return false, fmt.Errorf("postgres_book_repo_exists_title_author_failed: %w", err)
	}
	return found, nil
}

// Create persists a new book and fills in the generated ID.
func (repository *PostgresBookRepository) Create(ctx context.Context, book *Book) error {
	const query = `
		INSERT INTO books (
			title, author, isbn, description, price, stock,
			publication_date, publisher, page_count, category_id, created_at, updated_at
		) VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	now := time.Now()
	book.CreatedAt = now
	book.UpdatedAt = now

	err := repository.pool.QueryRow(ctx, query,
		book.Title,
		book.Author,
		book.ISBN,
		book.Description,
		book.Price,
		book.Stock,
		book.PublicationDate,
		book.Publisher,
		book.PageCount,
		book.CategoryID,
		book.CreatedAt,
		book.UpdatedAt,
	).Scan(&book.ID)

	if err != nil {
		return dberr.Translate(err, "Book", "A book with this ISBN or title/author already exists")
	}

	return nil
}

// Update replaces all mutable fields of an existing book.
func (repository *PostgresBookRepository) Update(ctx context.Context, book *Book) error {
	const query = `
		UPDATE books
		SET title = $2, author = $3, isbn = NULLIF($4, ''), description = $5, price = $6, stock = $7,
			publication_date = $8, publisher = $9, page_count = $10, category_id = $11, updated_at = $12
		WHERE id = $1`

	book.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.ISBN,
		book.Description,
		book.Price,
		book.Stock,
		book.PublicationDate,
		book.Publisher,
		book.PageCount,
		book.CategoryID,
		book.UpdatedAt,
	)

	if err != nil {
		return dberr.Translate(err, "Book", "A book with this ISBN or title/author already exists")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}

	return nil
}

// Delete removes a book permanently.
func (repository *PostgresBookRepository) Delete(ctx context.Context, id int64) error {
	const query = "DELETE FROM books WHERE id = $1"

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres_book_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}

	return nil
}

// AdjustStock atomically applies a stock delta and returns the updated row.
//
// The guard predicates make the adjustment atomic under concurrency: two
// simultaneous decrements can never drive stock negative because the second
// UPDATE matches zero rows once the first commits.
func (repository *PostgresBookRepository) AdjustStock(ctx context.Context, id int64, delta int) (*Book, error) {
	query := `
		UPDATE books
		SET stock = stock + $2, updated_at = $3
		WHERE id = $1 AND stock + $2 >= 0 AND stock + $2 <= $4
		RETURNING ` + bookColumns

	book, err := scanBook(repository.pool.QueryRow(ctx, query, id, delta, time.Now(), StockMax))
	if err == nil {
		return book, nil
	}
	if !dberr.IsNotFound(err) {
		return nil, fmt.Errorf("postgres_book_repo_adjust_stock_failed: %w", err)
	}

	// The guarded UPDATE matched nothing: distinguish a missing book from
	// an out-of-range adjustment.
	if _, findErr := repository.FindByID(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, apperr.Conflict("Stock adjustment out of range")
}

// # Row Scanning Helpers

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanBook hydrates one Book from a row with the standard column order.
func scanBook(row rowScanner) (*Book, error) {
	book := &Book{}
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.ISBN,
		&book.Description,
		&book.Price,
		&book.Stock,
		&book.PublicationDate,
		&book.Publisher,
		&book.PageCount,
		&book.CategoryID,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return book, nil
}

// queryPage runs a listing query whose final column is COUNT(*) OVER().
func (repository *PostgresBookRepository) queryPage(ctx context.Context, query string, args []any) ([]*Book, int64, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_book_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var books []*Book
	var total int64

	for rows.Next() {
		book := &Book{}
		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.ISBN,
			&book.Description,
			&book.Price,
			&book.Stock,
			&book.PublicationDate,
			&book.Publisher,
			&book.PageCount,
			&book.CategoryID,
			&book.CreatedAt,
			&book.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_book_repo_scan_failed: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_book_repo_rows_failed: %w", err)
	}

	return books, total, nil
}

// queryList runs a fixed-size listing without a total count.
func (repository *PostgresBookRepository) queryList(ctx context.Context, query string, limit int) ([]*Book, error) {
	rows, err := repository.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_book_repo_top_failed: %w", err)
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_book_repo_scan_failed: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_book_repo_rows_failed: %w", err)
	}

	return books, nil
}
