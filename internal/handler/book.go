package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mhmd-zbib/library-management/internal/domain"
	"github.com/mhmd-zbib/library-management/internal/service"
	"github.com/mhmd-zbib/library-management/pkg/response"
)

type BookHandler struct {
	service   *service.BookService
	validator *validator.Validate
}

func NewBookHandler(service *service.BookService) *BookHandler {
	return &BookHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	id, err := h.service.CreateBook(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, map[string]string{"id": id.String()})
}

func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid book ID", err)
		return
	}

	book, err := h.service.GetBook(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, book)
}

// GetBooks lists books, optionally bounded by publication year through the
// published_after and published_before query parameters.
func (h *BookHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	var filter domain.BookFilter
	var err error

	if filter.PublishedAfter, err = queryInt(r, "published_after"); err != nil {
		response.BadRequest(w, "Invalid filter parameters", err)
		return
	}
	if filter.PublishedBefore, err = queryInt(r, "published_before"); err != nil {
		response.BadRequest(w, "Invalid filter parameters", err)
		return
	}

	page, err := h.service.GetBooks(r.Context(), filter, parsePageRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, page)
}

func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid book ID", err)
		return
	}

	var request domain.UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	if err := h.service.UpdateBook(r.Context(), id, &request); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, map[string]string{"id": id.String()})
}

func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid book ID", err)
		return
	}

	if err := h.service.DeleteBook(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	response.NoContent(w)
}
