// Package session maps session tokens to live delivery channels.
package session

import "sync"

// Channel is a live, ordered delivery channel to one client. Send must be
// safe for concurrent use by multiple goroutines.
type Channel interface {
	// Send delivers one JSON-encodable payload to the client.
	Send(payload any) error
}

// Registry holds at most one delivery channel per session token. Its
// lifetime is process-wide, but it is constructed explicitly and passed by
// reference to the server and streamer; there is no package-level instance.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]Channel
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{channels: make(map[string]Channel)}
}

// Connect binds a channel to a token. A second connect for the same token
// replaces the mapping; the old transport is not closed, it simply stops
// receiving pushes.
func (r *Registry) Connect(token string, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[token] = ch
}

// Disconnect removes the token's mapping, if any.
func (r *Registry) Disconnect(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.channels, token)
}

// DisconnectChannel removes the mapping only if it still points at ch. A
// transport tearing down after being replaced must not evict its successor.
func (r *Registry) DisconnectChannel(token string, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.channels[token] == ch {
		delete(r.channels, token)
	}
}

// Push delivers a payload to the token's channel. An absent token or a
// failed send is a no-op returning false; callers must not treat either as
// an error.
func (r *Registry) Push(token string, payload any) bool {
	r.mu.RLock()
	ch, ok := r.channels[token]
	r.mu.RUnlock()

	if !ok {
		return false
	}
	return ch.Send(payload) == nil
}

// Len returns the number of connected sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels)
}
