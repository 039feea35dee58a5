// Package cell provides the reactive primitive the form engine publishes
// field state through: a typed value holder whose writes notify subscribers.
// Hosts that render form state read cells directly or subscribe to bridge
// changes into their own update mechanism.
package cell

import "sync"

// Cell holds a current value of type T and a set of subscribers that are
// notified on every write. The zero value is not usable; construct with New.
type Cell[T any] struct {
	mu     sync.RWMutex
	val    T
	subs   map[int]func(T)
	nextID int
}

// New creates a cell seeded with v. No notification is emitted for the seed.
func New[T any](v T) *Cell[T] {
	return &Cell[T]{val: v, subs: make(map[int]func(T))}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.val
}

// Set stores v and notifies subscribers. Notifications run on the calling
// goroutine after the internal lock is released, so a subscriber may read or
// write cells (including this one) without deadlocking.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	c.val = v
	fns := make([]func(T), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(v)
	}
}

// Subscribe registers fn to run after every Set and returns a cancel function.
// fn is not invoked with the current value at subscription time. Cancel is
// idempotent.
func (c *Cell[T]) Subscribe(fn func(T)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}
