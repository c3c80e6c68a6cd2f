package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/atelierware/folio/internal/api"
	"github.com/atelierware/folio/internal/service"
)

type AssistantService interface {
	Ask(ctx context.Context, query string) (*service.AskResult, error)
}

type RetrievalService interface {
	Retrieve(ctx context.Context, query string, k int) (*service.RetrievalResult, error)
}

type AssistantHandler struct {
	assistant AssistantService
	retrieval RetrievalService
}

func NewAssistantHandler(assistant AssistantService, retrieval RetrievalService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant, retrieval: retrieval}
}

type ChatRequest struct {
	Query string `json:"query"`
}

type ChatResponse struct {
	Reply      string `json:"reply"`
	Method     string `json:"method"`
	ChunksUsed int    `json:"chunks_used"`
}

func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		api.Error(w, http.StatusBadRequest, "query is required")
		return
	}

	result, err := h.assistant.Ask(r.Context(), req.Query)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, ChatResponse{
		Reply:      result.Reply,
		Method:     string(result.Method),
		ChunksUsed: result.ChunksUsed,
	})
}

type RetrievedChunkResponse struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	Score    float32 `json:"score"`
}

type RetrieveResponse struct {
	Method string                    `json:"method"`
	Chunks []*RetrievedChunkResponse `json:"chunks"`
}

// Retrieve exposes raw retrieval without generation, mainly for
// debugging how the assistant sees the knowledge base.
func (h *AssistantHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		api.Error(w, http.StatusBadRequest, "q is required")
		return
	}

	k := 0
	if kStr := r.URL.Query().Get("k"); kStr != "" {
		if parsed, err := strconv.Atoi(kStr); err == nil && parsed > 0 {
			k = parsed
		}
	}

	result, err := h.retrieval.Retrieve(r.Context(), query, k)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	chunks := make([]*RetrievedChunkResponse, len(result.Chunks))
	for i, rc := range result.Chunks {
		chunks[i] = &RetrievedChunkResponse{
			ID:       rc.Chunk.ID,
			Title:    rc.Chunk.Title,
			Content:  rc.Chunk.Content,
			Category: string(rc.Chunk.Category),
			Score:    rc.Score,
		}
	}

	api.Success(w, http.StatusOK, RetrieveResponse{
		Method: string(result.Method),
		Chunks: chunks,
	})
}
