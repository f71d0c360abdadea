// Package broadcast unifies the two change-propagation channels — the
// in-process bus serving the mutating context and storage events serving
// every other context — behind one subscription, so observers never care
// which channel fired.
//
// There is no ordering or merge across contexts: the last write to the
// shared store wins, and a concurrent increment from another context can be
// lost. That is an accepted property of store-event synchronization.
package broadcast

import (
	"slices"
	"sync"
)

// Bus is a minimal same-context fan-out: subscribers run synchronously, in
// subscription order, on the publisher's goroutine.
type Bus struct {
	mu   sync.Mutex
	subs []func()
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(handler func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subs = append(b.subs, handler)
}

func (b *Bus) Publish() {
	b.mu.Lock()
	handlers := slices.Clone(b.subs)
	b.mu.Unlock()

	for _, handler := range handlers {
		handler()
	}
}
