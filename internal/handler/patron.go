package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mhmd-zbib/library-management/internal/domain"
	"github.com/mhmd-zbib/library-management/internal/service"
	"github.com/mhmd-zbib/library-management/pkg/response"
)

type PatronHandler struct {
	service   *service.PatronService
	validator *validator.Validate
}

func NewPatronHandler(service *service.PatronService) *PatronHandler {
	return &PatronHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *PatronHandler) CreatePatron(w http.ResponseWriter, r *http.Request) {
	var request domain.CreatePatronRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	id, err := h.service.CreatePatron(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, map[string]string{"id": id.String()})
}

func (h *PatronHandler) GetPatron(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid patron ID", err)
		return
	}

	patron, err := h.service.GetPatron(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, patron)
}

func (h *PatronHandler) GetPatrons(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.GetPatrons(r.Context(), parsePageRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, page)
}

func (h *PatronHandler) UpdatePatron(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid patron ID", err)
		return
	}

	var request domain.UpdatePatronRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	if err := h.service.UpdatePatron(r.Context(), id, &request); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, map[string]string{"id": id.String()})
}

func (h *PatronHandler) DeletePatron(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid patron ID", err)
		return
	}

	if err := h.service.DeletePatron(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	response.NoContent(w)
}
