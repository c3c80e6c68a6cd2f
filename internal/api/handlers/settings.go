package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atelierware/folio/internal/api"
	"github.com/atelierware/folio/internal/domain"
	"github.com/atelierware/folio/internal/service"
)

type SettingsService interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
	Update(ctx context.Context, input service.UpdateSettingsInput) (*domain.SiteSettings, error)
}

type SettingsHandler struct {
	svc SettingsService
}

func NewSettingsHandler(svc SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

type SettingsRequest struct {
	SiteTitle        string `json:"site_title"`
	Tagline          string `json:"tagline"`
	OwnerName        string `json:"owner_name"`
	AssistantPersona string `json:"assistant_persona"`
	ProfileDocument  string `json:"profile_document"`
}

type SettingsResponse struct {
	SiteTitle        string `json:"site_title"`
	Tagline          string `json:"tagline"`
	OwnerName        string `json:"owner_name"`
	AssistantPersona string `json:"assistant_persona"`
	ProfileDocument  string `json:"profile_document"`
	UpdatedAt        string `json:"updated_at"`
}

func settingsToResponse(s *domain.SiteSettings) *SettingsResponse {
	return &SettingsResponse{
		SiteTitle:        s.SiteTitle,
		Tagline:          s.Tagline,
		OwnerName:        s.OwnerName,
		AssistantPersona: s.AssistantPersona,
		ProfileDocument:  s.ProfileDocument,
		UpdatedAt:        s.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.Get(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, settingsToResponse(settings))
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.svc.Update(r.Context(), service.UpdateSettingsInput{
		SiteTitle:        req.SiteTitle,
		Tagline:          req.Tagline,
		OwnerName:        req.OwnerName,
		AssistantPersona: req.AssistantPersona,
		ProfileDocument:  req.ProfileDocument,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, settingsToResponse(settings))
}
