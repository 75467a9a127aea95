package testutil

import "sync"

// FixedIDGenerator returns predetermined ids in order. This enables
// deterministic run records and golden comparison of stored history.
//
// Panics when the ids are exhausted: a test asking for more ids than
// it provided is a bug in the test.
type FixedIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDGenerator creates a generator that returns ids in order.
func NewFixedIDGenerator(ids ...string) *FixedIDGenerator {
	return &FixedIDGenerator{ids: ids}
}

// Generate returns the next id.
func (g *FixedIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic("testutil: all fixed ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
