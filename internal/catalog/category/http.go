// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

package category

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Ukj0ng/bookstore-api/internal/platform/request"
	"github.com/Ukj0ng/bookstore-api/internal/platform/respond"
	"github.com/Ukj0ng/bookstore-api/internal/platform/validate"
)

// Handler implements the category HTTP endpoints.
type Handler struct {
	categoryService *Service
}

// NewHandler constructs a new category [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{categoryService: service}
}

// PublicRoutes returns the read-only category routes.
//
// # Endpoints
//   - GET /            : All categories ordered by name.
//   - GET /with-books  : All categories with their book counts.
//   - GET /search      : Name-fragment search.
//   - GET /{id}        : Single category lookup.
func (handler *Handler) PublicRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Get("/with-books", handler.listWithBooks)
	router.Get("/search", handler.search)
	router.Get("/{categoryID}", handler.get)
}

// AdminRoutes returns the category mutation routes.
//
// # Endpoints
//   - POST   /     : Creates a category.
//   - PUT    /{id} : Renames a category.
//   - DELETE /{id} : Removes a category.
func (handler *Handler) AdminRoutes(router chi.Router) {
	router.Post("/", handler.create)
	router.Put("/{categoryID}", handler.update)
	router.Delete("/{categoryID}", handler.delete)
}

// list handles GET /api/categories requests.
func (handler *Handler) list(writer http.ResponseWriter, httpRequest *http.Request) {
	categories, err := handler.categoryService.List(httpRequest.Context())
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "", categories)
}

// listWithBooks handles GET /api/categories/with-books requests.
func (handler *Handler) listWithBooks(writer http.ResponseWriter, httpRequest *http.Request) {
	categories, err := handler.categoryService.ListWithBookCounts(httpRequest.Context())
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "", categories)
}

// search handles GET /api/categories/search?name= requests.
func (handler *Handler) search(writer http.ResponseWriter, httpRequest *http.Request) {
	categories, err := handler.categoryService.Search(httpRequest.Context(), httpRequest.URL.Query().Get("name"))
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "", categories)
}

// get handles GET /api/categories/{id} requests.
func (handler *Handler) get(writer http.ResponseWriter, httpRequest *http.Request) {
	categoryID, err := request.ID(httpRequest, "categoryID")
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	category, err := handler.categoryService.Get(httpRequest.Context(), categoryID)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "", category)
}

// categoryRequest is the JSON payload for create and update.
type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// decodeWriteInput parses and field-validates a category payload.
func decodeWriteInput(writer http.ResponseWriter, httpRequest *http.Request) (WriteInput, error) {
	var input categoryRequest
	if err := request.DecodeJSON(writer, httpRequest, &input); err != nil {
		return WriteInput{}, err
	}

	input.Name = strings.TrimSpace(input.Name)

	v := validate.New()
	v.Require("name", input.Name)
	v.MaxLen("name", input.Name, NameMaxLength)
	v.MaxLen("description", input.Description, DescriptionMaxLength)
	if err := v.Err(); err != nil {
		return WriteInput{}, err
	}

	return WriteInput{Name: input.Name, Description: input.Description}, nil
}

// create handles POST /api/categories requests.
func (handler *Handler) create(writer http.ResponseWriter, httpRequest *http.Request) {
	input, err := decodeWriteInput(writer, httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	category, err := handler.categoryService.Create(httpRequest.Context(), input)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.Created(writer, "Category created successfully", category)
}

// update handles PUT /api/categories/{id} requests.
func (handler *Handler) update(writer http.ResponseWriter, httpRequest *http.Request) {
	categoryID, err := request.ID(httpRequest, "categoryID")
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	input, err := decodeWriteInput(writer, httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	category, err := handler.categoryService.Update(httpRequest.Context(), categoryID, input)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "Category updated successfully", category)
}

// delete handles DELETE /api/categories/{id} requests.
func (handler *Handler) delete(writer http.ResponseWriter, httpRequest *http.Request) {
	categoryID, err := request.ID(httpRequest, "categoryID")
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	if err := handler.categoryService.Delete(httpRequest.Context(), categoryID); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "Category deleted successfully", nil)
}
