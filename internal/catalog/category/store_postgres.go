// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

// PostgreSQL implementation of the category storage contract.
package category

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ukj0ng/bookstore-api/internal/platform/apperr"
	"github.com/Ukj0ng/bookstore-api/internal/platform/dberr"
)

const categoryColumns = "id, name, slug, description, created_at, updated_at"

// PostgresCategoryRepository implements the CategoryRepository interface using pgx.
type PostgresCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new PostgreSQL implementation of the CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{pool: pool}
}

// FindAll returns every category ordered by name.
func (repository *PostgresCategoryRepository) FindAll(ctx context.Context) ([]*Category, error) {
	const query = "SELECT " + categoryColumns + " FROM categories ORDER BY name ASC"
	return repository.queryMany(ctx, query)
}

// FindAllWithBookCounts returns every category joined with its book count.
func (repository *PostgresCategoryRepository) FindAllWithBookCounts(ctx context.Context) ([]*Category, error) {
	const query = `
		SELECT c.id, c.name, c.slug, c.description, c.created_at, c.updated_at,
			COUNT(b.id) AS book_count
		FROM categories c
		LEFT JOIN books b ON b.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name ASC`

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_category_repo_with_counts_failed: %w", err)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		category := &Category{}
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.Description,
			&category.CreatedAt,
			&category.UpdatedAt,
			&category.BookCount,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_category_repo_scan_failed: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_category_repo_rows_failed: %w", err)
	}

	return categories, nil
}

// FindByID retrieves a single category by its primary key.
func (repository *PostgresCategoryRepository) FindByID(ctx context.Context, id int64) (*Category, error) {
	const query = "SELECT " + categoryColumns + " FROM categories WHERE id = $1"

	category := &Category{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Translate(err, "Category", "")
	}

	return category, nil
}

// SearchByName returns categories whose name contains the fragment.
func (repository *PostgresCategoryRepository) SearchByName(ctx context.Context, name string) ([]*Category, error) {
	const query = "SELECT " + categoryColumns +
		" FROM categories WHERE name ILIKE '%' || $1 || '%' ORDER BY name ASC"
	return repository.queryMany(ctx, query, name)
}

// ExistsByName reports whether another category already uses this name.
func (repository *PostgresCategoryRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	const query = "SELECT EXISTS (SELECT 1 FROM categories WHERE name = $1 AND id <> $2)"

	var found bool
	if err := repository.pool.QueryRow(ctx, query, name, excludeID).Scan(&found); err != nil {
		return false, fmt.Errorf("postgres_category_repo_exists_failed: %w", err)
	}
	return found, nil
}

// Create persists a new category and fills in the generated ID.
func (repository *PostgresCategoryRepository) Create(ctx context.Context, category *Category) error {
	const query = `
		INSERT INTO categories (name, slug, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	err := repository.pool.QueryRow(ctx, query,
		category.Name,
		category.Slug,
		category.Description,
		category.CreatedAt,
		category.UpdatedAt,
	).Scan(&category.ID)

	if err != nil {
		return dberr.Translate(err, "Category", "A category with this name already exists")
	}

	return nil
}

// Update replaces the mutable fields of a category.
func (repository *PostgresCategoryRepository) Update(ctx context.Context, category *Category) error {
	const query = `
		UPDATE categories
		SET name = $2, slug = $3, description = $4, updated_at = $5
		WHERE id = $1`

	category.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
		category.UpdatedAt,
	)

	if err != nil {
		return dberr.Translate(err, "Category", "A category with this name already exists")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}

	return nil
}

// Delete removes a category. The books.category_id foreign key is declared
// ON DELETE SET NULL, so referencing books survive with their category cleared.
func (repository *PostgresCategoryRepository) Delete(ctx context.Context, id int64) error {
	const query = "DELETE FROM categories WHERE id = $1"

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres_category_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}

	return nil
}

// queryMany runs a listing query with the standard column order.
func (repository *PostgresCategoryRepository) queryMany(ctx context.Context, query string, args ...any) ([]*Category, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_category_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		category := &Category{}
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.Description,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_category_repo_scan_failed: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_category_repo_rows_failed: %w", err)
	}

	return categories, nil
}
