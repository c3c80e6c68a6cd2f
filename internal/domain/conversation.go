package domain

import "time"

// Conversation records one assistant exchange for later review: the
// question, the reply, and how retrieval behaved (vector or keyword,
// and how many chunks fed the prompt).
type Conversation struct {
	ID              string
	Query           string
	Reply           string
	RetrievalMethod string
	ChunksUsed      int
	CreatedAt       time.Time
}
