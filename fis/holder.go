package fis

import "sync/atomic"

// Holder publishes the current Engine to concurrent readers.
// Reloads build a new Engine and Swap it in; a live Engine is never mutated.
type Holder struct {
	p atomic.Pointer[Engine]
}

// NewHolder returns a Holder publishing e
func NewHolder(e *Engine) *Holder {
	h := &Holder{}
	h.p.Store(e)
	return h
}

// Load returns the current engine
func (h *Holder) Load() *Engine {
	return h.p.Load()
}

// Swap publishes e and returns the engine it replaced
func (h *Holder) Swap(e *Engine) *Engine {
	return h.p.Swap(e)
}
