package service

import (
	"context"
	"log"
	"time"

	"github.com/atelierware/folio/internal/domain"
	"github.com/atelierware/folio/internal/telemetry"
)

// ChatClientInterface defines the interface for the downstream
// generation call. The assistant hands it a finished prompt and takes
// back a reply; model selection, retries, and rate limiting live
// behind it.
type ChatClientInterface interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// RetrieverInterface defines the retrieval seam for the assistant.
type RetrieverInterface interface {
	Retrieve(ctx context.Context, query string, k int) (*RetrievalResult, error)
}

// ConversationRepositoryInterface defines the repository interface for conversation logging
type ConversationRepositoryInterface interface {
	Create(ctx context.Context, c *domain.Conversation) error
}

// AskResult is one answered assistant exchange.
type AskResult struct {
	Reply      string
	Method     RetrievalMethod
	ChunksUsed int
}

// AssistantService runs the full chatbot pipeline: retrieve relevant
// chunks, assemble a grounded prompt, call the generation model, and
// log the exchange.
type AssistantService struct {
	retriever     RetrieverInterface
	chat          ChatClientInterface
	conversations ConversationRepositoryInterface
	prompt        *PromptBuilder
	uuidGen       UUIDGenerator
	topK          int
}

// NewAssistantService creates a new AssistantService instance. The
// conversation repository may be nil to disable logging.
func NewAssistantService(
	retriever RetrieverInterface,
	chat ChatClientInterface,
	conversations ConversationRepositoryInterface,
	prompt *PromptBuilder,
) *AssistantService {
	if prompt == nil {
		prompt = NewPromptBuilder("")
	}
	return &AssistantService{
		retriever:     retriever,
		chat:          chat,
		conversations: conversations,
		prompt:        prompt,
		uuidGen:       &DefaultUUIDGenerator{},
		topK:          DefaultTopK,
	}
}

// Ask answers a visitor question. Degraded retrieval (keyword fallback,
// or nothing found) never blocks the answer; only a failing generation
// call surfaces as an error.
func (s *AssistantService) Ask(ctx context.Context, query string) (*AskResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "AssistantService.Ask", telemetry.SpanAttributes{
		Operation: "ask",
	})
	defer span.End()

	retrieved, err := s.retriever.Retrieve(ctx, query, s.topK)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	prompt := s.prompt.Build(query, retrieved.Contents())

	reply, err := s.chat.Complete(ctx, prompt)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	result := &AskResult{
		Reply:      reply,
		Method:     retrieved.Method,
		ChunksUsed: len(retrieved.Chunks),
	}

	// Conversation logging is a side effect; losing a log entry must
	// not fail the exchange.
	if s.conversations != nil {
		conv := &domain.Conversation{
			ID:              s.uuidGen.NewString(),
			Query:           query,
			Reply:           reply,
			RetrievalMethod: string(retrieved.Method),
			ChunksUsed:      result.ChunksUsed,
			CreatedAt:       time.Now().UTC(),
		}
		if err := s.conversations.Create(ctx, conv); err != nil {
			log.Printf("failed to log conversation: %v", err)
		}
	}

	return result, nil
}
