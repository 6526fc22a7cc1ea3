// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

// HTTP delivery layer for the catalog.
//
// Handlers parse and validate payloads, delegate to the service, and write
// the standard response envelope. They contain NO business logic or
// database queries.
package book

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Ukj0ng/bookstore-api/internal/platform/apperr"
	"github.com/Ukj0ng/bookstore-api/internal/platform/request"
	"github.com/Ukj0ng/bookstore-api/internal/platform/respond"
	"github.com/Ukj0ng/bookstore-api/internal/platform/validate"
	"github.com/Ukj0ng/bookstore-api/pkg/pagination"
	"github.com/Ukj0ng/bookstore-api/pkg/pointer"
)

// publicationDateLayout is the wire format for publication dates.
const publicationDateLayout = "2006-01-02"

// publicationDateMin is the oldest accepted publication date.
var publicationDateMin = time.Date(1000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Handler implements the catalog HTTP endpoints.
type Handler struct {
	bookService *Service
}

// NewHandler constructs a new catalog [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{bookService: service}
}

// PublicRoutes returns the read-only catalog routes.
//
// # Endpoints
//   - GET /                : Paginated catalog listing, newest first.
//   - GET /{id}            : Single book lookup.
//   - GET /search          : Free-text title/author search.
//   - GET /category/{id}   : Books belonging to one category.
//   - GET /filter          : Multi-field filtered listing.
//   - GET /bestsellers     : Top books by stock.
//   - GET /latest          : Most recently registered books.
func (handler *Handler) PublicRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Get("/search", handler.search)
	router.Get("/filter", handler.filter)
	router.Get("/bestsellers", handler.bestSellers)
	router.Get("/latest", handler.latest)
	router.Get("/category/{categoryID}", handler.byCategory)
	router.Get("/{bookID}", handler.get)
}

// AdminRoutes returns the catalog mutation routes.
//
// # Endpoints
//   - POST   /                      : Registers a new book.
//   - PUT    /{id}                  : Replaces a book.
//   - DELETE /{id}                  : Removes a book.
//   - PATCH  /{id}/stock            : Applies a signed stock delta.
//   - POST   /{id}/stock/increase   : Adds stock.
//   - POST   /{id}/stock/decrease   : Removes stock.
func (handler *Handler) AdminRoutes(router chi.Router) {
	router.Post("/", handler.create)
	router.Put("/{bookID}", handler.update)
	router.Delete("/{bookID}", handler.delete)
	router.Patch("/{bookID}/stock", handler.adjustStock)
	router.Post("/{bookID}/stock/increase", handler.increaseStock)
	router.Post("/{bookID}/stock/decrease", handler.decreaseStock)
}

// # Read Endpoints

// list handles GET /api/books requests.
func (handler *Handler) list(writer http.ResponseWriter, httpRequest *http.Request) {
	page, err := pagination.FromRequest(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	result, err := handler.bookService.List(httpRequest.Context(), page)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "", result)
}

// get handles GET /api/books/{id} requests.
func (handler *Handler) get(writer http.ResponseWriter, httpRequest *http.Request) {
	bookID, err := request.ID(httpRequest, "bookID")
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	book, err := handler.bookService.Get(httpRequest.Context(), bookID)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "", book)
}

// search handles GET /api/books/search?keyword= requests.
func (handler *Handler) search(writer http.ResponseWriter, httpRequest *http.Request) {
	page, err := pagination.FromRequest(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	result, err := handler.bookService.Search(httpRequest.Context(), httpRequest.URL.Query().Get("keyword"), page)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "", result)
}

// filter handles GET /api/books/filter requests.
//
// Every filter, sort, and page parameter is validated before the store is
// touched; an invalid combination never reaches PostgreSQL.
func (handler *Handler) filter(writer http.ResponseWriter, httpRequest *http.Request) {
	spec, err := ParseFilter(httpRequest, handler.bookService.SortFields())
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	result, err := handler.bookService.Filter(httpRequest.Context(), spec)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "", result)
}

// byCategory handles GET /api/books/category/{id} requests.
func (handler *Handler) byCategory(writer http.ResponseWriter, httpRequest *http.Request) {
	categoryID, err := request.ID(httpRequest, "categoryID")
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	page, err := pagination.FromRequest(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	result, err := handler.bookService.ByCategory(httpRequest.Context(), categoryID, page)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "", result)
}

// bestSellers handles GET /api/books/bestsellers requests.
func (handler *Handler) bestSellers(writer http.ResponseWriter, httpRequest *http.Request) {
	books, err := handler.bookService.BestSellers(httpRequest.Context())
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "", books)
}

// latest handles GET /api/books/latest requests.
func (handler *Handler) latest(writer http.ResponseWriter, httpRequest *http.Request) {
	books, err := handler.bookService.Latest(httpRequest.Context())
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "", books)
}

// # Mutation Endpoints

// bookRequest is the JSON payload for create and update.
type bookRequest struct {
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	ISBN            string  `json:"isbn"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	Stock           int     `json:"stock"`
	PublicationDate string  `json:"publicationDate,omitempty"`
	Publisher       string  `json:"publisher,omitempty"`
	PageCount       int     `json:"pageCount,omitempty"`
	CategoryID      *int64  `json:"categoryId,omitempty"`
}

// decodeWriteInput parses and field-validates a book payload.
func decodeWriteInput(writer http.ResponseWriter, httpRequest *http.Request) (WriteInput, error) {
	var input bookRequest
	if err := request.DecodeJSON(writer, httpRequest, &input); err != nil {
		return WriteInput{}, err
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Author = strings.TrimSpace(input.Author)
	input.ISBN = strings.TrimSpace(input.ISBN)
	input.Publisher = strings.TrimSpace(input.Publisher)

	v := validate.New()
	v.Require("title", input.Title)
	v.MaxLen("title", input.Title, TitleMaxLength)
	v.Require("author", input.Author)
	v.MaxLen("author", input.Author, AuthorMaxLength)
	v.MaxLen("description", input.Description, DescriptionMaxLength)
	v.MaxLen("publisher", input.Publisher, PublisherMaxLength)
	v.RangeFloat("price", input.Price, 0, PriceMax)
	v.MinInt("stock", input.Stock, 0)
	v.MaxInt("stock", input.Stock, StockMax)
	if input.PageCount != 0 {
		v.MinInt("pageCount", input.PageCount, PageCountMin)
		v.MaxInt("pageCount", input.PageCount, PageCountMax)
	}
	if input.CategoryID != nil {
		v.Check(*input.CategoryID > 0, "categoryId", "categoryId must be a positive integer")
	}

	var publicationDate *time.Time
	if input.PublicationDate != "" {
		parsed, err := time.Parse(publicationDateLayout, input.PublicationDate)
		switch {
		case err != nil:
			v.AddError("publicationDate", "publicationDate must use the YYYY-MM-DD format")
		case parsed.Before(publicationDateMin):
			v.AddError("publicationDate", "publicationDate must not be before 1000-01-01")
		case parsed.After(time.Now()):
			v.AddError("publicationDate", "publicationDate must not be in the future")
		default:
			publicationDate = pointer.To(parsed)
		}
	}

	if err := v.Err(); err != nil {
		return WriteInput{}, err
	}

	return WriteInput{
		Title:           input.Title,
		Author:          input.Author,
		ISBN:            input.ISBN,
		Description:     input.Description,
		Price:           input.Price,
		Stock:           input.Stock,
		PublicationDate: publicationDate,
		Publisher:       input.Publisher,
		PageCount:       input.PageCount,
		CategoryID:      input.CategoryID,
	}, nil
}

// create handles POST /api/books requests.
func (handler *Handler) create(writer http.ResponseWriter, httpRequest *http.Request) {
	input, err := decodeWriteInput(writer, httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	book, err := handler.bookService.Create(httpRequest.Context(), input)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.Created(writer, "Book created successfully", book)
}

// update handles PUT /api/books/{id} requests.
func (handler *Handler) update(writer http.ResponseWriter, httpRequest *http.Request) {
	bookID, err := request.ID(httpRequest, "bookID")
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	input, err := decodeWriteInput(writer, httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	book, err := handler.bookService.Update(httpRequest.Context(), bookID, input)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "Book updated successfully", book)
}

// delete handles DELETE /api/books/{id} requests.
func (handler *Handler) delete(writer http.ResponseWriter, httpRequest *http.Request) {
	bookID, err := request.ID(httpRequest, "bookID")
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	if err := handler.bookService.Delete(httpRequest.Context(), bookID); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "Book deleted successfully", nil)
}

// stockRequest carries a stock adjustment quantity.
type stockRequest struct {
	Quantity int `json:"quantity"`
}

// adjustStock handles PATCH /api/books/{id}/stock requests.
//
// Quantity is a signed delta: positive restocks, negative sells.
func (handler *Handler) adjustStock(writer http.ResponseWriter, httpRequest *http.Request) {
	bookID, input, err := handler.decodeStock(writer, httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	var book *Book
	switch {
	case input.Quantity > 0:
		book, err = handler.bookService.IncreaseStock(httpRequest.Context(), bookID, input.Quantity)
	case input.Quantity < 0:
		book, err = handler.bookService.DecreaseStock(httpRequest.Context(), bookID, -input.Quantity)
	default:
		err = apperr.InvalidInput("Quantity must not be zero")
	}
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "Stock updated successfully", book)
}

// increaseStock handles POST /api/books/{id}/stock/increase requests.
func (handler *Handler) increaseStock(writer http.ResponseWriter, httpRequest *http.Request) {
	bookID, input, err := handler.decodeStock(writer, httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	book, err := handler.bookService.IncreaseStock(httpRequest.Context(), bookID, input.Quantity)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "Stock updated successfully", book)
}

// decreaseStock handles POST /api/books/{id}/stock/decrease requests.
func (handler *Handler) decreaseStock(writer http.ResponseWriter, httpRequest *http.Request) {
	bookID, input, err := handler.decodeStock(writer, httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	book, err := handler.bookService.DecreaseStock(httpRequest.Context(), bookID, input.Quantity)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "Stock updated successfully", book)
}

// decodeStock parses the book ID and the stock payload shared by the three
// stock endpoints.
func (handler *Handler) decodeStock(writer http.ResponseWriter, httpRequest *http.Request) (int64, stockRequest, error) {
	bookID, err := request.ID(httpRequest, "bookID")
	if err != nil {
		return 0, stockRequest{}, err
	}

	var input stockRequest
	if err := request.DecodeJSON(writer, httpRequest, &input); err != nil {
		return 0, stockRequest{}, err
	}

	return bookID, input, nil
}
