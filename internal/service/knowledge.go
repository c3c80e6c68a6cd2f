package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/atelierware/folio/internal/domain"
	"github.com/atelierware/folio/internal/telemetry"
)

// KnowledgeService is the management facade for single chunks, used by
// the admin CMS outside of bulk ingestion. Every mutation re-embeds the
// chunk synchronously: the embedding is derived data and is never
// edited directly.
type KnowledgeService struct {
	repo      ChunkRepositoryInterface
	embedding EmbeddingClient
	uuidGen   UUIDGenerator
}

// NewKnowledgeService creates a new KnowledgeService instance
func NewKnowledgeService(repo ChunkRepositoryInterface, embedding EmbeddingClient) *KnowledgeService {
	return NewKnowledgeServiceWithUUIDGen(repo, embedding, &DefaultUUIDGenerator{})
}

// NewKnowledgeServiceWithUUIDGen creates a new KnowledgeService with custom UUID generator (for testing)
func NewKnowledgeServiceWithUUIDGen(repo ChunkRepositoryInterface, embedding EmbeddingClient, uuidGen UUIDGenerator) *KnowledgeService {
	return &KnowledgeService{
		repo:      repo,
		embedding: embedding,
		uuidGen:   uuidGen,
	}
}

// AddChunkInput represents the input for adding a single chunk
type AddChunkInput struct {
	Title    string
	Content  string
	Category domain.ChunkCategory
}

// UpdateChunkInput represents the input for updating a chunk
type UpdateChunkInput struct {
	ID       string
	Title    string
	Content  string
	Category domain.ChunkCategory
}

// AddChunk creates a single chunk, embedding it before storage. An
// unreachable embedder stores the chunk without a vector.
func (s *KnowledgeService) AddChunk(ctx context.Context, input AddChunkInput) (*domain.KnowledgeChunk, error) {
	ctx, span := telemetry.StartSpan(ctx, "KnowledgeService.AddChunk", telemetry.SpanAttributes{
		Operation: "add_chunk",
	})
	defer span.End()

	now := time.Now().UTC()
	chunk := domain.NewKnowledgeChunk(
		s.uuidGen.NewString(),
		input.Title,
		input.Content,
		input.Category,
		domain.NoEmbedding(),
		now,
	)

	if err := domain.ValidateChunk(chunk); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid chunk", err)
	}

	chunk.Embedding = embedOrNone(ctx, s.embedding, embedChunkText(chunk.Title, chunk.Content))

	if err := s.repo.Insert(ctx, chunk); err != nil {
		span.SetError(err)
		return nil, err
	}

	return chunk, nil
}

// UpdateChunk edits a chunk's title, content, or category and re-embeds
// it. The target must exist.
func (s *KnowledgeService) UpdateChunk(ctx context.Context, input UpdateChunkInput) (*domain.KnowledgeChunk, error) {
	ctx, span := telemetry.StartSpan(ctx, "KnowledgeService.UpdateChunk", telemetry.SpanAttributes{
		ChunkID:   input.ID,
		Operation: "update_chunk",
	})
	defer span.End()

	chunk, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	chunk.Title = input.Title
	chunk.Content = input.Content
	chunk.Category = input.Category
	chunk.UpdatedAt = time.Now().UTC()

	if err := domain.ValidateChunk(chunk); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid chunk", err)
	}

	chunk.Embedding = embedOrNone(ctx, s.embedding, embedChunkText(chunk.Title, chunk.Content))

	if err := s.repo.Update(ctx, chunk); err != nil {
		span.SetError(err)
		return nil, err
	}

	return chunk, nil
}

// RemoveChunk deletes a chunk by id. Removal is idempotent: a missing
// id reports removed=false rather than failing, so a double delete is
// not an error.
func (s *KnowledgeService) RemoveChunk(ctx context.Context, id string) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "KnowledgeService.RemoveChunk", telemetry.SpanAttributes{
		ChunkID:   id,
		Operation: "remove_chunk",
	})
	defer span.End()

	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrChunkNotFound) {
			return false, nil
		}
		span.SetError(err)
		return false, err
	}
	return true, nil
}

// ListChunks returns all chunks ordered by (category, title) for
// stable, human-scannable presentation.
func (s *KnowledgeService) ListChunks(ctx context.Context) ([]*domain.KnowledgeChunk, error) {
	ctx, span := telemetry.StartSpan(ctx, "KnowledgeService.ListChunks", telemetry.SpanAttributes{
		Operation: "list_chunks",
	})
	defer span.End()

	chunks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(chunks, func(i, j int) bool {
		if chunks[i].Category != chunks[j].Category {
			return chunks[i].Category < chunks[j].Category
		}
		return chunks[i].Title < chunks[j].Title
	})

	return chunks, nil
}
