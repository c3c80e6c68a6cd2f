package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/atelierware/folio/internal/api"
	"github.com/atelierware/folio/internal/domain"
)

type ConversationLister interface {
	ListRecent(ctx context.Context, limit int) ([]*domain.Conversation, error)
}

// ConversationHandler exposes the assistant exchange log for review.
type ConversationHandler struct {
	conversations ConversationLister
}

func NewConversationHandler(conversations ConversationLister) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

type ConversationResponse struct {
	ID              string `json:"id"`
	Query           string `json:"query"`
	Reply           string `json:"reply"`
	RetrievalMethod string `json:"retrieval_method"`
	ChunksUsed      int    `json:"chunks_used"`
	CreatedAt       string `json:"created_at"`
}

type ConversationListResponse struct {
	Items []*ConversationResponse `json:"items"`
}

func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	conversations, err := h.conversations.ListRecent(r.Context(), limit)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]*ConversationResponse, len(conversations))
	for i, c := range conversations {
		responses[i] = &ConversationResponse{
			ID:              c.ID,
			Query:           c.Query,
			Reply:           c.Reply,
			RetrievalMethod: c.RetrievalMethod,
			ChunksUsed:      c.ChunksUsed,
			CreatedAt:       c.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	api.Success(w, http.StatusOK, ConversationListResponse{Items: responses})
}
