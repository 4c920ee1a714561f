package session

import "sync"

// Changes is a publish/subscribe channel signalling that listed items are
// stale. It carries no payload. Handlers run synchronously on the notifying
// goroutine, outside the lock.
type Changes struct {
	mu       sync.Mutex
	next     int
	handlers map[int]func()
	closed   bool
}

// NewChanges returns an open channel with no subscribers.
func NewChanges() *Changes {
	return &Changes{handlers: make(map[int]func())}
}

// Subscribe registers handler and returns a function that removes it.
// Subscribing to a closed channel is a no-op.
func (c *Changes) Subscribe(handler func()) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return func() {}
	}
	id := c.next
	c.next++
	c.handlers[id] = handler
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.handlers, id)
	}
}

// Notify calls every current subscriber.
func (c *Changes) Notify() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	handlers := make([]func(), 0, len(c.handlers))
	for _, h := range c.handlers {
		handlers = append(handlers, h)
	}
	c.mu.Unlock()

	for _, h := range handlers {
		h()
	}
}

// Close drops all subscribers. Later Notify calls do nothing.
func (c *Changes) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.handlers = nil
}
