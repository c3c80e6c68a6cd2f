package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atelierware/folio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockChunkRepository is a mock implementation of ChunkRepositoryInterface
type MockChunkRepository struct {
	mock.Mock
}

func (m *MockChunkRepository) GetByID(ctx context.Context, id string) (*domain.KnowledgeChunk, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KnowledgeChunk), args.Error(1)
}

func (m *MockChunkRepository) FindAll(ctx context.Context) ([]*domain.KnowledgeChunk, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.KnowledgeChunk), args.Error(1)
}

func (m *MockChunkRepository) Insert(ctx context.Context, c *domain.KnowledgeChunk) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChunkRepository) InsertMany(ctx context.Context, chunks []*domain.KnowledgeChunk) error {
	args := m.Called(ctx, chunks)
	return args.Error(0)
}

func (m *MockChunkRepository) Update(ctx context.Context, c *domain.KnowledgeChunk) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChunkRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChunkRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockEmbeddingClient is a mock implementation of EmbeddingClient
type MockEmbeddingClient struct {
	mock.Mock
}

func (m *MockEmbeddingClient) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

// MockUUIDGenerator is a mock implementation of UUIDGenerator
type MockUUIDGenerator struct {
	callCount int
	uuids     []string
}

func NewMockUUIDGenerator(uuids ...string) *MockUUIDGenerator {
	return &MockUUIDGenerator{uuids: uuids}
}

func (m *MockUUIDGenerator) NewString() string {
	if m.callCount < len(m.uuids) {
		id := m.uuids[m.callCount]
		m.callCount++
		return id
	}
	return "default-uuid"
}

func TestKnowledgeService_AddChunk(t *testing.T) {
	ctx := context.Background()

	t.Run("embeds and stores a new chunk", func(t *testing.T) {
		mockRepo := new(MockChunkRepository)
		mockEmbed := new(MockEmbeddingClient)
		svc := NewKnowledgeServiceWithUUIDGen(mockRepo, mockEmbed, NewMockUUIDGenerator("chunk-id-1"))

		vec := []float32{0.1, 0.2, 0.3}
		mockEmbed.On("GenerateEmbedding", mock.Anything, "Skills\nGo, SQL").Return(vec, nil)
		mockRepo.On("Insert", mock.Anything, mock.MatchedBy(func(c *domain.KnowledgeChunk) bool {
			return c.ID == "chunk-id-1" &&
				c.Title == "Skills" &&
				c.Content == "Go, SQL" &&
				c.Category == domain.CategorySkills &&
				c.Embedding.Present()
		})).Return(nil)

		chunk, err := svc.AddChunk(ctx, AddChunkInput{
			Title:    "Skills",
			Content:  "Go, SQL",
			Category: domain.CategorySkills,
		})

		require.NoError(t, err)
		assert.Equal(t, "chunk-id-1", chunk.ID)
		assert.Equal(t, vec, chunk.Embedding.Values())
		mockRepo.AssertExpectations(t)
		mockEmbed.AssertExpectations(t)
	})

	t.Run("stores the chunk without a vector when embedding fails", func(t *testing.T) {
		mockRepo := new(MockChunkRepository)
		mockEmbed := new(MockEmbeddingClient)
		svc := NewKnowledgeServiceWithUUIDGen(mockRepo, mockEmbed, NewMockUUIDGenerator("chunk-id-2"))

		mockEmbed.On("GenerateEmbedding", mock.Anything, mock.Anything).Return(nil, errors.New("service down"))
		mockRepo.On("Insert", mock.Anything, mock.MatchedBy(func(c *domain.KnowledgeChunk) bool {
			return !c.Embedding.Present()
		})).Return(nil)

		chunk, err := svc.AddChunk(ctx, AddChunkInput{
			Title:    "Education",
			Content:  "BSc Computer Science",
			Category: domain.CategoryEducation,
		})

		require.NoError(t, err)
		assert.False(t, chunk.Embedding.Present())
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects invalid input before touching the store", func(t *testing.T) {
		mockRepo := new(MockChunkRepository)
		mockEmbed := new(MockEmbeddingClient)
		svc := NewKnowledgeService(mockRepo, mockEmbed)

		_, err := svc.AddChunk(ctx, AddChunkInput{
			Title:    "No Content",
			Content:  "",
			Category: domain.CategoryOther,
		})

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestKnowledgeService_UpdateChunk(t *testing.T) {
	ctx := context.Background()

	t.Run("re-embeds on every update", func(t *testing.T) {
		mockRepo := new(MockChunkRepository)
		mockEmbed := new(MockEmbeddingClient)
		svc := NewKnowledgeService(mockRepo, mockEmbed)

		existing := domain.NewKnowledgeChunk(
			"chunk-1", "Old Title", "old content", domain.CategoryOther,
			domain.NewEmbedding([]float32{1, 1, 1}), time.Now().UTC(),
		)
		newVec := []float32{0.5, 0.5, 0.5}

		mockRepo.On("GetByID", mock.Anything, "chunk-1").Return(existing, nil)
		mockEmbed.On("GenerateEmbedding", mock.Anything, "My Skills\nGo, Kubernetes").Return(newVec, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.KnowledgeChunk) bool {
			return c.Title == "My Skills" && c.Embedding.Values()[0] == 0.5
		})).Return(nil)

		chunk, err := svc.UpdateChunk(ctx, UpdateChunkInput{
			ID:       "chunk-1",
			Title:    "My Skills",
			Content:  "Go, Kubernetes",
			Category: domain.CategorySkills,
		})

		require.NoError(t, err)
		assert.Equal(t, newVec, chunk.Embedding.Values())
		assert.Equal(t, domain.CategorySkills, chunk.Category)
		mockRepo.AssertExpectations(t)
		mockEmbed.AssertExpectations(t)
	})

	t.Run("missing chunk surfaces not found", func(t *testing.T) {
		mockRepo := new(MockChunkRepository)
		mockEmbed := new(MockEmbeddingClient)
		svc := NewKnowledgeService(mockRepo, mockEmbed)

		mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, domain.ErrChunkNotFound)

		_, err := svc.UpdateChunk(ctx, UpdateChunkInput{
			ID:       "missing",
			Title:    "T",
			Content:  "C",
			Category: domain.CategoryOther,
		})

		assert.ErrorIs(t, err, domain.ErrChunkNotFound)
	})
}

func TestKnowledgeService_RemoveChunk(t *testing.T) {
	ctx := context.Background()

	t.Run("removes an existing chunk", func(t *testing.T) {
		mockRepo := new(MockChunkRepository)
		svc := NewKnowledgeService(mockRepo, new(MockEmbeddingClient))

		mockRepo.On("Delete", mock.Anything, "chunk-1").Return(nil)

		removed, err := svc.RemoveChunk(ctx, "chunk-1")

		require.NoError(t, err)
		assert.True(t, removed)
	})

	t.Run("second removal of the same id is not an error", func(t *testing.T) {
		mockRepo := new(MockChunkRepository)
		svc := NewKnowledgeService(mockRepo, new(MockEmbeddingClient))

		mockRepo.On("Delete", mock.Anything, "chunk-1").Return(domain.ErrChunkNotFound)

		removed, err := svc.RemoveChunk(ctx, "chunk-1")

		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		mockRepo := new(MockChunkRepository)
		svc := NewKnowledgeService(mockRepo, new(MockEmbeddingClient))

		mockRepo.On("Delete", mock.Anything, "chunk-1").Return(errors.New("connection reset"))

		_, err := svc.RemoveChunk(ctx, "chunk-1")

		assert.Error(t, err)
	})
}

func TestKnowledgeService_ListChunks(t *testing.T) {
	ctx := context.Background()

	t.Run("orders by category then title", func(t *testing.T) {
		mockRepo := new(MockChunkRepository)
		svc := NewKnowledgeService(mockRepo, new(MockEmbeddingClient))

		now := time.Now().UTC()
		chunks := []*domain.KnowledgeChunk{
			domain.NewKnowledgeChunk("1", "Zine Archive", "z", domain.CategoryOther, domain.NoEmbedding(), now),
			domain.NewKnowledgeChunk("2", "Backend", "b", domain.CategorySkills, domain.NoEmbedding(), now),
			domain.NewKnowledgeChunk("3", "About", "a", domain.CategoryIdentity, domain.NoEmbedding(), now),
			domain.NewKnowledgeChunk("4", "Frontend", "f", domain.CategorySkills, domain.NoEmbedding(), now),
		}
		mockRepo.On("FindAll", mock.Anything).Return(chunks, nil)

		out, err := svc.ListChunks(ctx)

		require.NoError(t, err)
		require.Len(t, out, 4)
		assert.Equal(t, "About", out[0].Title)        // identity
		assert.Equal(t, "Zine Archive", out[1].Title) // other
		assert.Equal(t, "Backend", out[2].Title)      // skills
		assert.Equal(t, "Frontend", out[3].Title)     // skills
	})
}
