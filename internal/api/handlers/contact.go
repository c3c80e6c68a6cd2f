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

type ContactService interface {
	Submit(ctx context.Context, input service.SubmitInput) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]*domain.ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type ContactHandler struct {
	svc ContactService
}

func NewContactHandler(svc ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

type ContactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Body  string `json:"body"`
}

type ContactMessageResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Body      string `json:"body"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

func messageToResponse(m *domain.ContactMessage) *ContactMessageResponse {
	return &ContactMessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Body:      m.Body,
		Read:      m.Read,
		CreatedAt: m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// Submit is the public contact form endpoint.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.svc.Submit(r.Context(), service.SubmitInput{
		Name:  req.Name,
		Email: req.Email,
		Body:  req.Body,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, messageToResponse(msg))
}

type ContactListResponse struct {
	Items []*ContactMessageResponse `json:"items"`
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.svc.List(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]*ContactMessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = messageToResponse(m)
	}

	api.Success(w, http.StatusOK, ContactListResponse{Items: responses})
}

func (h *ContactHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.Error(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.svc.MarkRead(r.Context(), id); err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusNoContent, nil)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
