// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

package category_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ukj0ng/bookstore-api/internal/catalog/category"
	"github.com/Ukj0ng/bookstore-api/internal/platform/apperr"
)

// fakeCategoryRepository is an in-memory CategoryRepository.
type fakeCategoryRepository struct {
	categories map[int64]*category.Category
	nextID     int64
}

func newFakeCategoryRepository() *fakeCategoryRepository {
	return &fakeCategoryRepository{categories: make(map[int64]*category.Category), nextID: 1}
}

func (r *fakeCategoryRepository) all() []*category.Category {
	categories := make([]*category.Category, 0, len(r.categories))
	for id := int64(1); id < r.nextID; id++ {
		if stored, ok := r.categories[id]; ok {
			categories = append(categories, stored)
		}
	}
	return categories
}

func (r *fakeCategoryRepository) FindAll(_ context.Context) ([]*category.Category, error) {
	return r.all(), nil
}

func (r *fakeCategoryRepository) FindAllWithBookCounts(_ context.Context) ([]*category.Category, error) {
	return r.all(), nil
}

func (r *fakeCategoryRepository) FindByID(_ context.Context, id int64) (*category.Category, error) {
	stored, ok := r.categories[id]
	if !ok {
		return nil, apperr.NotFound("Category")
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeCategoryRepository) SearchByName(_ context.Context, name string) ([]*category.Category, error) {
	matches := make([]*category.Category, 0)
	for _, stored := range r.all() {
		if strings.Contains(strings.ToLower(stored.Name), strings.ToLower(name)) {
			matches = append(matches, stored)
		}
	}
	return matches, nil
}

func (r *fakeCategoryRepository) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	for _, stored := range r.categories {
		if stored.Name == name && stored.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepository) Create(_ context.Context, newCategory *category.Category) error {
	newCategory.ID = r.nextID
	r.nextID++
	clone := *newCategory
	r.categories[newCategory.ID] = &clone
	return nil
}

func (r *fakeCategoryRepository) Update(_ context.Context, updated *category.Category) error {
	if _, ok := r.categories[updated.ID]; !ok {
		return apperr.NotFound("Category")
	}
	clone := *updated
	r.categories[updated.ID] = &clone
	return nil
}

func (r *fakeCategoryRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.categories[id]; !ok {
		return apperr.NotFound("Category")
	}
	delete(r.categories, id)
	return nil
}

/*
TestService_Create verifies creation, slug derivation, and the unique-name rule.
*/
func TestService_Create(t *testing.T) {
	service := category.NewService(newFakeCategoryRepository())

	created, err := service.Create(context.Background(), category.WriteInput{
		Name:        "Science Fiction",
		Description: "Space operas and beyond",
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "science-fiction", created.Slug, "slug is derived from the name")

	_, err = service.Create(context.Background(), category.WriteInput{Name: "Science Fiction"})
	require.Error(t, err)

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, apperr.CodeConflict, appError.Code)
	assert.Equal(t, "A category with this name already exists", appError.Message)
}

/*
TestService_Update verifies renaming: the slug follows the name, the old name
becomes reusable, and renaming onto another category's name conflicts.
*/
func TestService_Update(t *testing.T) {
	service := category.NewService(newFakeCategoryRepository())
	ctx := context.Background()

	first, err := service.Create(ctx, category.WriteInput{Name: "Novels"})
	require.NoError(t, err)
	_, err = service.Create(ctx, category.WriteInput{Name: "Essays"})
	require.NoError(t, err)

	// 1. Keeping its own name is not a self-collision.
	updated, err := service.Update(ctx, first.ID, category.WriteInput{Name: "Novels", Description: "Long-form fiction"})
	require.NoError(t, err)
	assert.Equal(t, "Long-form fiction", updated.Description)

	// 2. A rename refreshes the slug.
	updated, err = service.Update(ctx, first.ID, category.WriteInput{Name: "Graphic Novels"})
	require.NoError(t, err)
	assert.Equal(t, "graphic-novels", updated.Slug)

	// 3. Renaming onto an existing name conflicts.
	_, err = service.Update(ctx, first.ID, category.WriteInput{Name: "Essays"})
	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, apperr.CodeConflict, appError.Code)

	// 4. Unknown IDs are a NotFound.
	_, err = service.Update(ctx, 9999, category.WriteInput{Name: "Poetry"})
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, apperr.CodeNotFound, appError.Code)
}

/*
TestService_Search verifies the blank-keyword rejection and empty results.
*/
func TestService_Search(t *testing.T) {
	service := category.NewService(newFakeCategoryRepository())
	ctx := context.Background()

	_, err := service.Create(ctx, category.WriteInput{Name: "History"})
	require.NoError(t, err)

	for _, blank := range []string{"", "   "} {
		_, err := service.Search(ctx, blank)
		var appError *apperr.AppError
		require.ErrorAs(t, err, &appError)
		assert.Equal(t, "Please enter a search keyword", appError.Message)
	}

	found, err := service.Search(ctx, "hist")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = service.Search(ctx, "geology")
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)
}

/*
TestService_List verifies that nil repository results surface as empty slices
so the JSON layer renders [] instead of null.
*/
func TestService_List(t *testing.T) {
	service := category.NewService(newFakeCategoryRepository())

	categories, err := service.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)
}
