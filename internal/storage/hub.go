package storage

import (
	"slices"
	"sync"
)

// Event describes one committed change to the backend. Absent values are
// reported as empty strings.
type Event struct {
	Key      string
	OldValue string
	NewValue string
}

// Hub owns the shared backend and fans change events out to attached
// contexts. The writing context never receives its own event; same-context
// observers are served by the in-process bus instead.
type Hub struct {
	mu       sync.Mutex
	backend  Backend
	contexts []*Context
}

func NewHub(backend Backend) *Hub {
	return &Hub{backend: backend}
}

// Attach registers a new context, the analogue of opening another tab.
func (h *Hub) Attach() *Context {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := &Context{
		hub:  h,
		subs: make(map[string][]func(Event)),
	}
	h.contexts = append(h.contexts, ctx)
	return ctx
}

// Detach removes a context; it stops receiving events.
func (h *Hub) Detach(ctx *Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.contexts = slices.DeleteFunc(h.contexts, func(c *Context) bool {
		return c == ctx
	})
}

func (h *Hub) broadcast(origin *Context, event Event) {
	h.mu.Lock()
	contexts := slices.Clone(h.contexts)
	h.mu.Unlock()

	for _, ctx := range contexts {
		if ctx == origin {
			continue
		}
		ctx.dispatch(event)
	}
}

// Context is one attached view of the shared store.
type Context struct {
	hub *Hub

	mu   sync.Mutex
	subs map[string][]func(Event)
}

func (c *Context) Get(key string) (string, bool) {
	return c.hub.backend.Get(key)
}

// Set writes through to the backend and, on success, raises a change event
// in every other attached context.
func (c *Context) Set(key, value string) error {
	old, _ := c.hub.backend.Get(key)

	if err := c.hub.backend.Set(key, value); err != nil {
		return err
	}

	c.hub.broadcast(c, Event{Key: key, OldValue: old, NewValue: value})
	return nil
}

// Delete removes the key. Idempotent: deleting an absent key is a no-op and
// raises no event.
func (c *Context) Delete(key string) error {
	old, existed := c.hub.backend.Get(key)
	if !existed {
		return nil
	}

	if err := c.hub.backend.Delete(key); err != nil {
		return err
	}

	c.hub.broadcast(c, Event{Key: key, OldValue: old})
	return nil
}

// Subscribe registers a handler for changes to key made by other contexts.
func (c *Context) Subscribe(key string, handler func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.subs[key] = append(c.subs[key], handler)
}

func (c *Context) dispatch(event Event) {
	c.mu.Lock()
	handlers := slices.Clone(c.subs[event.Key])
	c.mu.Unlock()

	for _, handler := range handlers {
		handler(event)
	}
}
