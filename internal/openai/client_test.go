package openai

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEmbeddingAPI is a mock for the embeddings API
type MockEmbeddingAPI struct {
	mock.Mock
}

func (m *MockEmbeddingAPI) CreateEmbeddings(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func TestClient_GenerateEmbedding_Success(t *testing.T) {
	mockAPI := new(MockEmbeddingAPI)
	client := &Client{api: mockAPI, dimensions: DefaultEmbeddingDimensions}

	ctx := context.Background()
	text := "Skills\nGo, PostgreSQL, distributed systems."
	expectedEmbedding := make([]float32, DefaultEmbeddingDimensions)
	for i := range expectedEmbedding {
		expectedEmbedding[i] = float32(i) * 0.001
	}

	mockAPI.On("CreateEmbeddings", ctx, text).Return(expectedEmbedding, nil)

	embedding, err := client.GenerateEmbedding(ctx, text)

	assert.NoError(t, err)
	assert.Len(t, embedding, DefaultEmbeddingDimensions)
	assert.Equal(t, expectedEmbedding, embedding)
	mockAPI.AssertExpectations(t)
}

func TestClient_GenerateEmbedding_EmptyText(t *testing.T) {
	client := NewClient("")

	ctx := context.Background()
	embedding, err := client.GenerateEmbedding(ctx, "")

	assert.Error(t, err)
	assert.Nil(t, embedding)
	assert.Equal(t, ErrEmptyText, err)
}

func TestClient_GenerateEmbedding_APIError(t *testing.T) {
	mockAPI := new(MockEmbeddingAPI)
	client := &Client{api: mockAPI, dimensions: DefaultEmbeddingDimensions}

	ctx := context.Background()
	text := "Test text"
	apiErr := errors.New("API rate limit exceeded")

	mockAPI.On("CreateEmbeddings", ctx, text).Return(nil, apiErr)

	embedding, err := client.GenerateEmbedding(ctx, text)

	assert.Error(t, err)
	assert.Nil(t, embedding)
	assert.Contains(t, err.Error(), "failed to create embedding")
	mockAPI.AssertExpectations(t)
}

func TestClient_GenerateEmbedding_WrongDimensions(t *testing.T) {
	mockAPI := new(MockEmbeddingAPI)
	client := &Client{api: mockAPI, dimensions: DefaultEmbeddingDimensions}

	ctx := context.Background()
	text := "Test text"
	wrongEmbedding := make([]float32, 512)

	mockAPI.On("CreateEmbeddings", ctx, text).Return(wrongEmbedding, nil)

	embedding, err := client.GenerateEmbedding(ctx, text)

	assert.Error(t, err)
	assert.Nil(t, embedding)
	assert.Equal(t, ErrWrongDimensions, err)
	mockAPI.AssertExpectations(t)
}

func TestNewClientWithConfig_CustomDimensions(t *testing.T) {
	client := NewClientWithConfig(Config{
		APIKey:              "test-api-key",
		EmbeddingModel:      openai.SmallEmbedding3,
		EmbeddingDimensions: 256,
	})

	assert.NotNil(t, client)
	assert.Equal(t, 256, client.dimensions)
}

func TestNewChatClient_Defaults(t *testing.T) {
	client := NewChatClient("test-api-key")

	assert.NotNil(t, client)
	assert.Equal(t, string(DefaultChatModel), client.model)
}

func TestChatClient_Complete_EmptyPrompt(t *testing.T) {
	client := NewChatClient("test-api-key")

	reply, err := client.Complete(context.Background(), "")

	assert.Error(t, err)
	assert.Empty(t, reply)
	assert.Equal(t, ErrEmptyText, err)
}
