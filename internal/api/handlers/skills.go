package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atelierware/folio/internal/api"
	"github.com/atelierware/folio/internal/domain"
	"github.com/atelierware/folio/internal/service"
	"github.com/go-chi/chi/v5"
)

type SkillService interface {
	Create(ctx context.Context, input service.SkillInput) (*domain.Skill, error)
	List(ctx context.Context) ([]*domain.Skill, error)
	Update(ctx context.Context, id string, input service.SkillInput) (*domain.Skill, error)
	Delete(ctx context.Context, id string) error
}

type SkillHandler struct {
	svc SkillService
}

func NewSkillHandler(svc SkillService) *SkillHandler {
	return &SkillHandler{svc: svc}
}

type SkillRequest struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Level        string `json:"level"`
	DisplayOrder int    `json:"display_order"`
}

type SkillResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Level        string `json:"level"`
	DisplayOrder int    `json:"display_order"`
}

func skillToResponse(s *domain.Skill) *SkillResponse {
	return &SkillResponse{
		ID:           s.ID,
		Name:         s.Name,
		Category:     s.Category,
		Level:        string(s.Level),
		DisplayOrder: s.DisplayOrder,
	}
}

func (h *SkillHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		api.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	skill, err := h.svc.Create(r.Context(), service.SkillInput{
		Name:         req.Name,
		Category:     req.Category,
		Level:        domain.SkillLevel(req.Level),
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, skillToResponse(skill))
}

type SkillListResponse struct {
	Items []*SkillResponse `json:"items"`
}

func (h *SkillHandler) List(w http.ResponseWriter, r *http.Request) {
	skills, err := h.svc.List(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]*SkillResponse, len(skills))
	for i, s := range skills {
		responses[i] = skillToResponse(s)
	}

	api.Success(w, http.StatusOK, SkillListResponse{Items: responses})
}

func (h *SkillHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.Error(w, http.StatusBadRequest, "id is required")
		return
	}

	var req SkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	skill, err := h.svc.Update(r.Context(), id, service.SkillInput{
		Name:         req.Name,
		Category:     req.Category,
		Level:        domain.SkillLevel(req.Level),
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, skillToResponse(skill))
}

func (h *SkillHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
