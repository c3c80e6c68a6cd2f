package service

import (
	"context"
	"sort"
	"strings"

	"github.com/atelierware/folio/internal/domain"
	"github.com/atelierware/folio/internal/telemetry"
)

// DefaultTopK is the number of chunks retrieved when the caller does
// not ask for a specific count.
const DefaultTopK = 5

// KeywordMatchScore is the sentinel score attached to keyword-fallback
// matches. Keyword hits are unranked; the fixed score, together with
// the result's Method tag, lets operators tell a best-effort keyword
// match from a vector-ranked one.
const KeywordMatchScore float32 = 0

// minKeywordTokenLen filters query tokens for the keyword path; shorter
// words are stop-word noise.
const minKeywordTokenLen = 4

// RetrievalMethod tags how a retrieval result was produced.
type RetrievalMethod string

const (
	RetrievalMethodVector  RetrievalMethod = "vector"
	RetrievalMethodKeyword RetrievalMethod = "keyword"
)

// RetrievedChunk is a chunk with its relevance score.
type RetrievedChunk struct {
	Chunk *domain.KnowledgeChunk
	Score float32
}

// RetrievalResult is an ordered set of retrieved chunks tagged with the
// retrieval method, so callers can distinguish vector-ranked results
// from keyword-fallback ones instead of treating every result as
// equivalently scored.
type RetrievalResult struct {
	Method RetrievalMethod
	Chunks []RetrievedChunk
}

// Contents returns the chunk bodies in ranking order, ready for prompt
// assembly. Content is passed through verbatim, never summarized.
func (r *RetrievalResult) Contents() []string {
	contents := make([]string, len(r.Chunks))
	for i, rc := range r.Chunks {
		contents[i] = rc.Chunk.Content
	}
	return contents
}

// ChunkReader is the read-only store view retrieval needs.
type ChunkReader interface {
	FindAll(ctx context.Context) ([]*domain.KnowledgeChunk, error)
}

// RetrievalService finds the chunks most relevant to a query: cosine
// similarity over embeddings when the embedder is reachable, keyword
// matching otherwise. The corpus is small (tens to low hundreds of
// chunks), so exact brute-force scoring is deliberate.
type RetrievalService struct {
	chunks    ChunkReader
	embedding EmbeddingClient
}

// NewRetrievalService creates a new RetrievalService instance
func NewRetrievalService(chunks ChunkReader, embedding EmbeddingClient) *RetrievalService {
	return &RetrievalService{
		chunks:    chunks,
		embedding: embedding,
	}
}

// Retrieve returns the top-k chunks relevant to the query. When the
// embedder is unavailable the keyword path answers instead; retrieval
// itself only fails when the store cannot be read. An empty result is a
// valid outcome, not an error.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, k int) (*RetrievalResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "RetrievalService.Retrieve", telemetry.SpanAttributes{
		Operation: "retrieve",
	})
	defer span.End()

	if k <= 0 {
		k = DefaultTopK
	}

	all, err := s.chunks.FindAll(ctx)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	var queryVec []float32
	if s.embedding != nil {
		queryVec, err = s.embedding.GenerateEmbedding(ctx, query)
		if err != nil {
			queryVec = nil
		}
	}

	if queryVec == nil {
		return &RetrievalResult{
			Method: RetrievalMethodKeyword,
			Chunks: keywordMatch(all, query, k),
		}, nil
	}

	return &RetrievalResult{
		Method: RetrievalMethodVector,
		Chunks: rankBySimilarity(all, queryVec, k),
	}, nil
}

// rankBySimilarity scores every embedded chunk against the query vector
// and returns the top k in descending score order. Chunks without an
// embedding, with mismatched dimensionality, or with a zero vector are
// excluded from ranking rather than scored; they stay reachable through
// the keyword path on a later degraded query.
func rankBySimilarity(all []*domain.KnowledgeChunk, queryVec []float32, k int) []RetrievedChunk {
	scored := make([]RetrievedChunk, 0, len(all))
	for _, c := range all {
		if !c.Embedding.Present() {
			continue
		}
		sim, ok := domain.CosineSimilarity(queryVec, c.Embedding.Values())
		if !ok {
			continue
		}
		scored = append(scored, RetrievedChunk{Chunk: c, Score: sim})
	}

	// Stable sort keeps store order among equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// keywordMatch returns the first k chunks whose content contains any
// query token, in store order. There is no embedding to rank by, so
// matches carry the fixed sentinel score.
func keywordMatch(all []*domain.KnowledgeChunk, query string, k int) []RetrievedChunk {
	tokens := keywordTokens(query)
	if len(tokens) == 0 {
		return nil
	}

	var matched []RetrievedChunk
	for _, c := range all {
		if len(matched) >= k {
			break
		}
		content := strings.ToLower(c.Content)
		for _, tok := range tokens {
			if strings.Contains(content, tok) {
				matched = append(matched, RetrievedChunk{Chunk: c, Score: KeywordMatchScore})
				break
			}
		}
	}
	return matched
}

// keywordTokens lowercases the query and keeps words long enough to
// carry meaning.
func keywordTokens(query string) []string {
	var tokens []string
	for _, f := range strings.Fields(strings.ToLower(query)) {
		f = strings.Trim(f, ".,!?;:\"'()")
		if len(f) >= minKeywordTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
