package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/atelierware/folio/internal/api"
	"github.com/atelierware/folio/internal/domain"
	"github.com/atelierware/folio/internal/service"
	"github.com/go-chi/chi/v5"
)

type ProjectService interface {
	Create(ctx context.Context, input service.ProjectInput) (*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Project, error)
	List(ctx context.Context, input service.ListProjectsInput) (*service.ListProjectsOutput, error)
	Update(ctx context.Context, id string, input service.ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type ProjectHandler struct {
	svc ProjectService
}

func NewProjectHandler(svc ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

type ProjectRequest struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	ImageKey    string   `json:"image_key"`
	RepoURL     string   `json:"repo_url"`
	LiveURL     string   `json:"live_url"`
	Featured    bool     `json:"featured"`
}

type ProjectResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	ImageKey    string   `json:"image_key,omitempty"`
	RepoURL     string   `json:"repo_url,omitempty"`
	LiveURL     string   `json:"live_url,omitempty"`
	Featured    bool     `json:"featured"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

func projectToResponse(p *domain.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Summary:     p.Summary,
		Description: p.Description,
		Tags:        p.Tags,
		ImageKey:    p.ImageKey,
		RepoURL:     p.RepoURL,
		LiveURL:     p.LiveURL,
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   p.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" {
		api.Error(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Slug == "" {
		api.Error(w, http.StatusBadRequest, "slug is required")
		return
	}

	project, err := h.svc.Create(r.Context(), projectInput(req))
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, projectToResponse(project))
}

func (h *ProjectHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		api.Error(w, http.StatusBadRequest, "slug is required")
		return
	}

	project, err := h.svc.GetBySlug(r.Context(), slug)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, projectToResponse(project))
}

type ProjectListResponse struct {
	Items   []*ProjectResponse `json:"items"`
	Cursor  string             `json:"cursor,omitempty"`
	HasMore bool               `json:"has_more"`
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("cursor")
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	output, err := h.svc.List(r.Context(), service.ListProjectsInput{
		Cursor: cursor,
		Limit:  limit,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]*ProjectResponse, len(output.Items))
	for i, p := range output.Items {
		responses[i] = projectToResponse(p)
	}

	api.Success(w, http.StatusOK, ProjectListResponse{
		Items:   responses,
		Cursor:  output.Cursor,
		HasMore: output.HasMore,
	})
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.Error(w, http.StatusBadRequest, "id is required")
		return
	}

	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.svc.Update(r.Context(), id, projectInput(req))
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, projectToResponse(project))
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.Error(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusNoContent, nil)
}

func projectInput(req ProjectRequest) service.ProjectInput {
	return service.ProjectInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Summary:     req.Summary,
		Description: req.Description,
		Tags:        req.Tags,
		ImageKey:    req.ImageKey,
		RepoURL:     req.RepoURL,
		LiveURL:     req.LiveURL,
		Featured:    req.Featured,
	}
}
