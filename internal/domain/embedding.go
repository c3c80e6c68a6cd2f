package domain

import "math"

// Embedding is an optional fixed-length vector. The zero value means "no
// embedding": a chunk whose embedding call failed is stored without one
// and remains retrievable through the keyword path. Keeping absence
// explicit here prevents confusing "never embedded" with a zero-length
// vector produced by a bug.
type Embedding struct {
	values []float32
}

// NewEmbedding wraps a vector. An empty or nil vector yields the absent
// embedding.
func NewEmbedding(values []float32) Embedding {
	if len(values) == 0 {
		return Embedding{}
	}
	copied := make([]float32, len(values))
	copy(copied, values)
	return Embedding{values: copied}
}

// NoEmbedding returns the absent embedding.
func NoEmbedding() Embedding {
	return Embedding{}
}

// Present reports whether a vector is attached.
func (e Embedding) Present() bool {
	return len(e.values) > 0
}

// Dimensions returns the vector length, 0 when absent.
func (e Embedding) Dimensions() int {
	return len(e.values)
}

// Values returns the underlying vector, nil when absent.
func (e Embedding) Values() []float32 {
	return e.values
}

// CosineSimilarity computes the cosine similarity between two vectors.
// ok is false when the vectors have different dimensions or either has
// zero magnitude; such pairs carry no directional information and must
// be excluded from ranking rather than scored.
func CosineSimilarity(a, b []float32) (float32, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, false
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Clamp accumulated floating-point drift back into [-1, 1].
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}
	return float32(sim), true
}
