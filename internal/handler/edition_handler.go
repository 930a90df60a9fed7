package handler

import (
	"encoding/json"
	"net/http"

	"osoc-selections-backend/internal/model"
	"osoc-selections-backend/internal/service"
	"osoc-selections-backend/pkg/apierror"
)

type EditionHandler struct {
	service *service.EditionService
}

func NewEditionHandler(service *service.EditionService) *EditionHandler {
	return &EditionHandler{service: service}
}

func (h *EditionHandler) List(w http.ResponseWriter, r *http.Request) {
	editions, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, editions, nil)
}

func (h *EditionHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateEditionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	edition, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, edition, nil)
}
