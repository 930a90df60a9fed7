package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"osoc-selections-backend/internal/middleware"
	"osoc-selections-backend/internal/model"
	"osoc-selections-backend/internal/service"
	"osoc-selections-backend/internal/util"
	"osoc-selections-backend/pkg/apierror"
)

type ProjectHandler struct {
	service *service.ProjectService
}

func NewProjectHandler(service *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, limit := util.ParsePage(query)

	projects, meta, err := h.service.List(r.Context(), model.ProjectQuery{
		EditionID: strings.TrimSpace(query.Get("edition_id")),
		Search:    strings.TrimSpace(query.Get("search")),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, projects, &meta)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.service.Get(r.Context(), chi.URLParam(r, "project_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, project, nil)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	project, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, project, nil)
}

func (h *ProjectHandler) Assign(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.AssignStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	assignedBy := ""
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		assignedBy = claims.Subject
	}

	assignment, err := h.service.Assign(r.Context(), chi.URLParam(r, "project_id"), payload, assignedBy)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, assignment, nil)
}

func (h *ProjectHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	err := h.service.Unassign(r.Context(), chi.URLParam(r, "project_id"), chi.URLParam(r, "student_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"unassigned": true}, nil)
}
