package actor

import "sync"

// Watch is a single-writer, many-reader broadcast of the latest value of S.
// Readers always observe the most recently published value, never a stale
// one once a newer value has been published, and a writer never blocks on
// readers.
//
// No dependency in the example pack provides a generic watch-channel
// primitive (lnd/fn/v2 supplies monadic Option/Result, not a broadcast
// channel; nothing else in the retrieved corpus touches this concern), so
// this is a small stdlib-only primitive, the direct Go analogue of
// tokio::sync::watch used by the original implementation.
type Watch[S any] struct {
	mu    sync.Mutex
	value S
}

// NewWatch creates a Watch already holding initial as its first published
// value.
func NewWatch[S any](initial S) *Watch[S] {
	return &Watch[S]{value: initial}
}

// Publish replaces the latest value.
func (w *Watch[S]) Publish(value S) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.value = value
}

// Latest returns the most recently published value.
func (w *Watch[S]) Latest() S {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.value
}
