// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

package category

import (
	"context"
	"strings"

	"github.com/Ukj0ng/bookstore-api/internal/platform/apperr"
	"github.com/Ukj0ng/bookstore-api/pkg/slug"
)

// Service implements the category use cases.
type Service struct {
	categoryRepository CategoryRepository
}

// NewService constructs a new category [Service].
func NewService(categoryRepo CategoryRepository) *Service {
	return &Service{categoryRepository: categoryRepo}
}

// List returns every category ordered by name.
func (service *Service) List(context context.Context) ([]*Category, error) {
	categories, err := service.categoryRepository.FindAll(context)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*Category{}
	}
	return categories, nil
}

// ListWithBookCounts returns every category with its book count attached.
func (service *Service) ListWithBookCounts(context context.Context) ([]*Category, error) {
	categories, err := service.categoryRepository.FindAllWithBookCounts(context)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*Category{}
	}
	return categories, nil
}

// Get returns a single category by ID.
func (service *Service) Get(context context.Context, id int64) (*Category, error) {
	return service.categoryRepository.FindByID(context, id)
}

// Search returns categories whose name contains the fragment.
//
// A blank fragment is rejected, mirroring the book search rule.
func (service *Service) Search(context context.Context, name string) ([]*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.InvalidInput("Please enter a search keyword")
	}

	categories, err := service.categoryRepository.SearchByName(context, name)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*Category{}
	}
	return categories, nil
}

// WriteInput carries the category fields for create and update.
type WriteInput struct {
	Name        string
	Description string
}

// Create registers a new category.
//
// # Business Rules
//   - Names are unique.
//   - The slug is derived from the name, never supplied by the client.
func (service *Service) Create(context context.Context, input WriteInput) (*Category, error) {
	if err := service.checkNameAvailable(context, input.Name, 0); err != nil {
		return nil, err
	}

	category := &Category{
		Name:        input.Name,
		Slug:        slug.From(input.Name),
		Description: input.Description,
	}

	if err := service.categoryRepository.Create(context, category); err != nil {
		return nil, err
	}

	return category, nil
}

// Update renames a category and refreshes its slug.
func (service *Service) Update(context context.Context, id int64, input WriteInput) (*Category, error) {
	category, err := service.categoryRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.checkNameAvailable(context, input.Name, id); err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.Slug = slug.From(input.Name)
	category.Description = input.Description

	if err := service.categoryRepository.Update(context, category); err != nil {
		return nil, err
	}

	return category, nil
}

// Delete removes a category permanently.
func (service *Service) Delete(context context.Context, id int64) error {
	return service.categoryRepository.Delete(context, id)
}

// checkNameAvailable enforces the unique-name rule ahead of the index.
func (service *Service) checkNameAvailable(context context.Context, name string, excludeID int64) error {
	taken, err := service.categoryRepository.ExistsByName(context, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("A category with this name already exists")
	}
	return nil
}
