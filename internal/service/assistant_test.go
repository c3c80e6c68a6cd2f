package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/atelierware/folio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockChatClient is a mock implementation of ChatClientInterface
type MockChatClient struct {
	mock.Mock
}

func (m *MockChatClient) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockRetriever is a mock implementation of RetrieverInterface
type MockRetriever struct {
	mock.Mock
}

func (m *MockRetriever) Retrieve(ctx context.Context, query string, k int) (*RetrievalResult, error) {
	args := m.Called(ctx, query, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RetrievalResult), args.Error(1)
}

// MockConversationRepository is a mock implementation of ConversationRepositoryInterface
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) Create(ctx context.Context, c *domain.Conversation) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func TestAssistantService_Ask(t *testing.T) {
	ctx := context.Background()

	t.Run("feeds retrieved context into the generation call", func(t *testing.T) {
		mockRetriever := new(MockRetriever)
		mockChat := new(MockChatClient)
		mockConvs := new(MockConversationRepository)
		svc := NewAssistantService(mockRetriever, mockChat, mockConvs, nil)

		mockRetriever.On("Retrieve", mock.Anything, "what stack do you use", DefaultTopK).Return(&RetrievalResult{
			Method: RetrievalMethodVector,
			Chunks: []RetrievedChunk{
				{Chunk: plainChunk("1", "Skills", "Go and PostgreSQL"), Score: 0.9},
			},
		}, nil)
		mockChat.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "Go and PostgreSQL") &&
				strings.Contains(prompt, "what stack do you use")
		})).Return("I mostly work with Go and PostgreSQL.", nil)
		mockConvs.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Conversation) bool {
			return c.Query == "what stack do you use" &&
				c.RetrievalMethod == "vector" &&
				c.ChunksUsed == 1
		})).Return(nil)

		result, err := svc.Ask(ctx, "what stack do you use")

		require.NoError(t, err)
		assert.Equal(t, "I mostly work with Go and PostgreSQL.", result.Reply)
		assert.Equal(t, RetrievalMethodVector, result.Method)
		assert.Equal(t, 1, result.ChunksUsed)
		mockChat.AssertExpectations(t)
		mockConvs.AssertExpectations(t)
	})

	t.Run("empty retrieval still answers with an empty context", func(t *testing.T) {
		mockRetriever := new(MockRetriever)
		mockChat := new(MockChatClient)
		svc := NewAssistantService(mockRetriever, mockChat, nil, nil)

		mockRetriever.On("Retrieve", mock.Anything, mock.Anything, mock.Anything).Return(&RetrievalResult{
			Method: RetrievalMethodKeyword,
		}, nil)
		mockChat.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "--- CONTEXT START ---")
		})).Return("That information is not documented.", nil)

		result, err := svc.Ask(ctx, "do you play the accordion?")

		require.NoError(t, err)
		assert.Equal(t, 0, result.ChunksUsed)
		assert.Equal(t, RetrievalMethodKeyword, result.Method)
	})

	t.Run("retrieval failure aborts the exchange", func(t *testing.T) {
		mockRetriever := new(MockRetriever)
		mockChat := new(MockChatClient)
		svc := NewAssistantService(mockRetriever, mockChat, nil, nil)

		mockRetriever.On("Retrieve", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("store down"))

		_, err := svc.Ask(ctx, "anything")

		assert.Error(t, err)
		mockChat.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	})

	t.Run("generation failure surfaces", func(t *testing.T) {
		mockRetriever := new(MockRetriever)
		mockChat := new(MockChatClient)
		svc := NewAssistantService(mockRetriever, mockChat, nil, nil)

		mockRetriever.On("Retrieve", mock.Anything, mock.Anything, mock.Anything).Return(&RetrievalResult{
			Method: RetrievalMethodVector,
		}, nil)
		mockChat.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("model overloaded"))

		_, err := svc.Ask(ctx, "anything")

		assert.Error(t, err)
	})

	t.Run("a failed conversation log does not fail the exchange", func(t *testing.T) {
		mockRetriever := new(MockRetriever)
		mockChat := new(MockChatClient)
		mockConvs := new(MockConversationRepository)
		svc := NewAssistantService(mockRetriever, mockChat, mockConvs, nil)

		mockRetriever.On("Retrieve", mock.Anything, mock.Anything, mock.Anything).Return(&RetrievalResult{
			Method: RetrievalMethodVector,
		}, nil)
		mockChat.On("Complete", mock.Anything, mock.Anything).Return("reply", nil)
		mockConvs.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

		result, err := svc.Ask(ctx, "anything")

		require.NoError(t, err)
		assert.Equal(t, "reply", result.Reply)
	})
}
