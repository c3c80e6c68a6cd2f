package service

import (
	"context"
	"strings"
	"time"

	"github.com/atelierware/folio/internal/domain"
	"github.com/atelierware/folio/internal/telemetry"
)

// ChunkRepositoryInterface defines the repository interface for chunk persistence
type ChunkRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*domain.KnowledgeChunk, error)
	FindAll(ctx context.Context) ([]*domain.KnowledgeChunk, error)
	Insert(ctx context.Context, c *domain.KnowledgeChunk) error
	InsertMany(ctx context.Context, chunks []*domain.KnowledgeChunk) error
	Update(ctx context.Context, c *domain.KnowledgeChunk) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// ChunkTxRunner runs a function against a chunk repository inside a
// single transaction. Bulk ingestion uses it so the clear-then-insert
// swap is observable as one transition: readers never see a
// half-cleared store.
type ChunkTxRunner interface {
	WithChunkTx(ctx context.Context, fn func(repo ChunkRepositoryInterface) error) error
}

// ProfileSource supplies the maintained profile document that bulk
// ingestion splits into chunks.
type ProfileSource interface {
	ProfileDocument(ctx context.Context) (string, error)
}

// IngestResult reports the outcome of a bulk ingestion.
type IngestResult struct {
	Count  int
	Chunks []*domain.KnowledgeChunk
}

// IngestService rebuilds the chunk store from a profile document:
// split, classify, embed, then replace the store contents.
type IngestService struct {
	tx        ChunkTxRunner
	embedding EmbeddingClient
	source    ProfileSource
	uuidGen   UUIDGenerator
}

// NewIngestService creates a new IngestService instance
func NewIngestService(tx ChunkTxRunner, embedding EmbeddingClient, source ProfileSource) *IngestService {
	return NewIngestServiceWithUUIDGen(tx, embedding, source, &DefaultUUIDGenerator{})
}

// NewIngestServiceWithUUIDGen creates a new IngestService with custom UUID generator (for testing)
func NewIngestServiceWithUUIDGen(tx ChunkTxRunner, embedding EmbeddingClient, source ProfileSource, uuidGen UUIDGenerator) *IngestService {
	return &IngestService{
		tx:        tx,
		embedding: embedding,
		source:    source,
		uuidGen:   uuidGen,
	}
}

// IngestDocument splits the document into chunks, embeds each, and
// atomically replaces the chunk store contents. An empty or unreadable
// document fails the whole call before anything is cleared. Embedding
// failures do not block ingestion: every parsed section is stored, with
// or without a vector.
func (s *IngestService) IngestDocument(ctx context.Context, doc string) (*IngestResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "IngestService.IngestDocument", telemetry.SpanAttributes{
		Operation: "ingest",
	})
	defer span.End()

	if strings.TrimSpace(doc) == "" {
		return nil, domain.ErrEmptySourceDocument
	}

	sections := splitProfileDocument(doc)

	now := time.Now().UTC()
	chunks := make([]*domain.KnowledgeChunk, 0, len(sections))
	for _, sec := range sections {
		embedding := embedOrNone(ctx, s.embedding, embedChunkText(sec.Title, sec.Content))
		chunks = append(chunks, domain.NewKnowledgeChunk(
			s.uuidGen.NewString(),
			sec.Title,
			sec.Content,
			sec.Category,
			embedding,
			now,
		))
	}

	err := s.tx.WithChunkTx(ctx, func(repo ChunkRepositoryInterface) error {
		if err := repo.DeleteAll(ctx); err != nil {
			return err
		}
		return repo.InsertMany(ctx, chunks)
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	return &IngestResult{Count: len(chunks), Chunks: chunks}, nil
}

// IngestFromProfile loads the maintained profile document and ingests it.
func (s *IngestService) IngestFromProfile(ctx context.Context) (*IngestResult, error) {
	doc, err := s.source.ProfileDocument(ctx)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInvalidOperation, "failed to load profile document", err)
	}
	return s.IngestDocument(ctx, doc)
}
