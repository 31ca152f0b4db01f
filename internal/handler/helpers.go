package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mhmd-zbib/library-management/internal/domain"
	customError "github.com/mhmd-zbib/library-management/pkg/errors"
	"github.com/mhmd-zbib/library-management/pkg/response"
)

// writeError maps the core's typed failures onto HTTP statuses. Anything
// that is not a BusinessError is a 500.
func writeError(w http.ResponseWriter, err error) {
	var businessErr *customError.BusinessError
	if !errors.As(err, &businessErr) {
		response.InternalServerError(w, "Internal server error", err)
		return
	}

	switch businessErr.Code {
	case customError.ErrCodeBookNotFound,
		customError.ErrCodePatronNotFound,
		customError.ErrCodeRecordNotFound:
		response.NotFound(w, businessErr.Message)
	case customError.ErrCodeBookAlreadyBorrowed,
		customError.ErrCodeDuplicateISBN,
		customError.ErrCodeDuplicateEmail:
		response.Conflict(w, businessErr.Message, businessErr.Err)
	case customError.ErrCodeMaxBorrowedBooks,
		customError.ErrCodeOverdueBooksExist:
		response.UnprocessableEntity(w, businessErr.Message, businessErr.Err)
	case customError.ErrCodeInvalidBorrowDate:
		response.BadRequest(w, businessErr.Message, businessErr.Err)
	default:
		response.InternalServerError(w, businessErr.Message, businessErr.Err)
	}
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}

func parsePageRequest(r *http.Request) domain.PageRequest {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	return domain.PageRequest{Page: page, Size: size}.Normalize()
}

func queryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func queryTime(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func queryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func queryString(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}
