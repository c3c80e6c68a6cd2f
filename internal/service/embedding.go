package service

import (
	"context"
	"log"

	"github.com/atelierware/folio/internal/domain"
	"github.com/google/uuid"
)

// EmbeddingClient defines the interface for generating embeddings
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// UUIDGenerator defines interface for UUID generation (for testing)
type UUIDGenerator interface {
	NewString() string
}

// DefaultUUIDGenerator is the default UUID generator using google/uuid
type DefaultUUIDGenerator struct{}

// NewString generates a new UUID string
func (g *DefaultUUIDGenerator) NewString() string {
	return uuid.NewString()
}

// embedChunkText builds the text submitted to the embedding service for
// a chunk: title and content joined by a newline.
func embedChunkText(title, content string) string {
	return title + "\n" + content
}

// embedOrNone calls the embedding client and converts any failure into
// the absent embedding. Embedding failures are routine: the chunk or
// query proceeds without a vector and the keyword path covers it.
func embedOrNone(ctx context.Context, client EmbeddingClient, text string) domain.Embedding {
	if client == nil {
		return domain.NoEmbedding()
	}
	vec, err := client.GenerateEmbedding(ctx, text)
	if err != nil {
		log.Printf("embedding unavailable, continuing without vector: %v", err)
		return domain.NoEmbedding()
	}
	return domain.NewEmbedding(vec)
}
