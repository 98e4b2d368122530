package store

import (
	"sync"

	"github.com/google/uuid"
)

// TokenGenerator produces run tokens.
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run tokens, so a listing
// sorted by token is sorted by creation time.
//
// Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 as a hyphenated string. Panics if UUID
// generation fails, which does not happen in practice.
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined tokens in order. Enables
// deterministic tests and golden comparison of CLI output.
type FixedGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedGenerator creates a generator returning tokens in order.
// Once exhausted it repeats the last token.
func NewFixedGenerator(tokens ...string) *FixedGenerator {
	return &FixedGenerator{tokens: tokens}
}

func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.tokens) {
		return g.tokens[len(g.tokens)-1]
	}
	t := g.tokens[g.idx]
	g.idx++
	return t
}
