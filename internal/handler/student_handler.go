package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"osoc-selections-backend/internal/model"
	"osoc-selections-backend/internal/service"
	"osoc-selections-backend/internal/util"
	"osoc-selections-backend/pkg/apierror"
)

type StudentHandler struct {
	service *service.StudentService
}

func NewStudentHandler(service *service.StudentService) *StudentHandler {
	return &StudentHandler{service: service}
}

func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, limit := util.ParsePage(query)

	students, meta, err := h.service.List(r.Context(), model.StudentQuery{
		EditionID: strings.TrimSpace(query.Get("edition_id")),
		Status:    strings.TrimSpace(query.Get("status")),
		Search:    strings.TrimSpace(query.Get("search")),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, students, &meta)
}

func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	student, err := h.service.Get(r.Context(), chi.URLParam(r, "student_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, student, nil)
}

func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	student, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, student, nil)
}

func (h *StudentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.UpdateStudentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	student, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "student_id"), payload.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, student, nil)
}
