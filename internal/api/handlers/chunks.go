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

type KnowledgeService interface {
	AddChunk(ctx context.Context, input service.AddChunkInput) (*domain.KnowledgeChunk, error)
	UpdateChunk(ctx context.Context, input service.UpdateChunkInput) (*domain.KnowledgeChunk, error)
	RemoveChunk(ctx context.Context, id string) (bool, error)
	ListChunks(ctx context.Context) ([]*domain.KnowledgeChunk, error)
}

type IngestService interface {
	IngestDocument(ctx context.Context, doc string) (*service.IngestResult, error)
	IngestFromProfile(ctx context.Context) (*service.IngestResult, error)
}

type ChunkHandler struct {
	knowledge KnowledgeService
	ingest    IngestService
}

func NewChunkHandler(knowledge KnowledgeService, ingest IngestService) *ChunkHandler {
	return &ChunkHandler{knowledge: knowledge, ingest: ingest}
}

type ChunkRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

type ChunkResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Category     string `json:"category"`
	HasEmbedding bool   `json:"has_embedding"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func chunkToResponse(c *domain.KnowledgeChunk) *ChunkResponse {
	return &ChunkResponse{
		ID:           c.ID,
		Title:        c.Title,
		Content:      c.Content,
		Category:     string(c.Category),
		HasEmbedding: c.Embedding.Present(),
		CreatedAt:    c.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:    c.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (h *ChunkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ChunkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" {
		api.Error(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Content == "" {
		api.Error(w, http.StatusBadRequest, "content is required")
		return
	}

	category := domain.ChunkCategory(req.Category)
	if req.Category == "" {
		category = domain.CategoryOther
	}

	chunk, err := h.knowledge.AddChunk(r.Context(), service.AddChunkInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: category,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, chunkToResponse(chunk))
}

func (h *ChunkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.Error(w, http.StatusBadRequest, "id is required")
		return
	}

	var req ChunkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" {
		api.Error(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Content == "" {
		api.Error(w, http.StatusBadRequest, "content is required")
		return
	}

	chunk, err := h.knowledge.UpdateChunk(r.Context(), service.UpdateChunkInput{
		ID:       id,
		Title:    req.Title,
		Content:  req.Content,
		Category: domain.ChunkCategory(req.Category),
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, chunkToResponse(chunk))
}

type RemoveChunkResponse struct {
	Removed bool `json:"removed"`
}

func (h *ChunkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.Error(w, http.StatusBadRequest, "id is required")
		return
	}

	removed, err := h.knowledge.RemoveChunk(r.Context(), id)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, RemoveChunkResponse{Removed: removed})
}

type ChunkListResponse struct {
	Items []*ChunkResponse `json:"items"`
}

func (h *ChunkHandler) List(w http.ResponseWriter, r *http.Request) {
	chunks, err := h.knowledge.ListChunks(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]*ChunkResponse, len(chunks))
	for i, c := range chunks {
		responses[i] = chunkToResponse(c)
	}

	api.Success(w, http.StatusOK, ChunkListResponse{Items: responses})
}

type IngestRequest struct {
	// Document overrides the stored profile document when present.
	Document string `json:"document"`
}

type IngestResponse struct {
	Count int `json:"count"`
}

// Ingest rebuilds the chunk store, from the request body's document when
// one is supplied, otherwise from the profile document in site settings.
func (h *ChunkHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	var result *service.IngestResult
	var err error
	if req.Document != "" {
		result, err = h.ingest.IngestDocument(r.Context(), req.Document)
	} else {
		result, err = h.ingest.IngestFromProfile(r.Context())
	}
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, IngestResponse{Count: result.Count})
}
