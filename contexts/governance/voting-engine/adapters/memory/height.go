package memory

import (
	"context"
	"sync"

	"govledger/contexts/governance/voting-engine/ports"
)

// HeightCounter is the host-advanced height source used for local wiring and
// tests. Advancing is the host's job; the engine only ever reads.
type HeightCounter struct {
	mu     sync.RWMutex
	height uint64
}

func NewHeightCounter(initial uint64) *HeightCounter {
	return &HeightCounter{height: initial}
}

func (h *HeightCounter) CurrentHeight(_ context.Context) (uint64, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.height, nil
}

func (h *HeightCounter) Advance(delta uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.height += delta
}

func (h *HeightCounter) Set(height uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.height = height
}

var _ ports.HeightSource = (*HeightCounter)(nil)
