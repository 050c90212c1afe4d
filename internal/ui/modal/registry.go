// Package modal manages named modal overlays.
package modal

import "sync"

// Registry tracks which named modals are open. At most one modal is active at
// a time; opening a second closes the first.
type Registry struct {
	mu     sync.RWMutex
	active string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Open marks the named modal as the active one.
func (r *Registry) Open(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = name
}

// Close hides the named modal. Closing a modal that is not active is a no-op.
func (r *Registry) Close(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == name {
		r.active = ""
	}
}

// CloseAll hides whatever modal is open.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = ""
}

// IsOpen reports whether the named modal is currently shown.
func (r *Registry) IsOpen(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active == name
}

// Active returns the open modal's name, or "" when none is open.
func (r *Registry) Active() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// AnyOpen reports whether any modal is shown.
func (r *Registry) AnyOpen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active != ""
}
