package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mhmd-zbib/library-management/internal/domain"
	"github.com/mhmd-zbib/library-management/internal/service"
	"github.com/mhmd-zbib/library-management/pkg/response"
)

type BorrowingHandler struct {
	service   *service.BorrowingService
	validator *validator.Validate
}

func NewBorrowingHandler(service *service.BorrowingService) *BorrowingHandler {
	return &BorrowingHandler{
		service:   service,
		validator: validator.New(),
	}
}

// BorrowBook creates a borrowing record for a book and patron. The request
// body is optional; an empty body borrows as of now with no notes.
func (h *BorrowingHandler) BorrowBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := pathUUID(r, "bookId")
	if err != nil {
		response.BadRequest(w, "Invalid book ID", err)
		return
	}

	patronID, err := pathUUID(r, "patronId")
	if err != nil {
		response.BadRequest(w, "Invalid patron ID", err)
		return
	}

	var request domain.BorrowBookRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	if err := h.service.BorrowBook(r.Context(), &request, bookID, patronID); err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, map[string]string{
		"book_id":   bookID.String(),
		"patron_id": patronID.String(),
	})
}

// ReturnBook transitions the active record for a book and patron to RETURNED.
func (h *BorrowingHandler) ReturnBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := pathUUID(r, "bookId")
	if err != nil {
		response.BadRequest(w, "Invalid book ID", err)
		return
	}

	patronID, err := pathUUID(r, "patronId")
	if err != nil {
		response.BadRequest(w, "Invalid patron ID", err)
		return
	}

	if err := h.service.ReturnBook(r.Context(), bookID, patronID); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, map[string]string{
		"book_id":   bookID.String(),
		"patron_id": patronID.String(),
	})
}

// GetBorrowingRecords lists borrowing records filtered by the query
// parameters book_id, patron_id, status, from_date, to_date and overdue.
func (h *BorrowingHandler) GetBorrowingRecords(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRecordFilter(r)
	if err != nil {
		response.BadRequest(w, "Invalid filter parameters", err)
		return
	}

	page, err := h.service.GetBorrowingRecords(r.Context(), filter, parsePageRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, page)
}

func parseRecordFilter(r *http.Request) (domain.RecordFilter, error) {
	var filter domain.RecordFilter
	var err error

	if filter.BookID, err = queryUUID(r, "book_id"); err != nil {
		return filter, err
	}
	if filter.PatronID, err = queryUUID(r, "patron_id"); err != nil {
		return filter, err
	}
	filter.Status = queryString(r, "status")
	if filter.FromDate, err = queryTime(r, "from_date"); err != nil {
		return filter, err
	}
	if filter.ToDate, err = queryTime(r, "to_date"); err != nil {
		return filter, err
	}
	if filter.Overdue, err = queryBool(r, "overdue"); err != nil {
		return filter, err
	}

	return filter, nil
}
