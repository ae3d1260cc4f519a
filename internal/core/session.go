// Session state machine holding the original and working buffers
package core

import (
	"errors"
	"sync"
)

// ErrInvalidState is returned when an operation needs a loaded image.
var ErrInvalidState = errors.New("no image loaded")

// State is the lifecycle position of a Session.
type State int

const (
	StateEmpty State = iota
	StateLoaded
	StateModified
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "EMPTY"
	case StateLoaded:
		return "LOADED"
	case StateModified:
		return "MODIFIED"
	default:
		return "UNKNOWN"
	}
}

// Session tracks the loaded original and the working copy that filters
// replace one step at a time. Only Load replaces the original.
type Session struct {
	mu       sync.RWMutex
	original PixelBuffer
	current  PixelBuffer
	state    State
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{state: StateEmpty}
}

// Load installs b as the original and an independent copy as current.
func (s *Session) Load(b PixelBuffer) error {
	if b.IsEmpty() {
		return ErrInvalidBuffer
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.original = b.Clone()
	s.current = b.Clone()
	s.state = StateLoaded
	return nil
}

// Apply replaces current with f(current). On an empty session it does nothing
// and returns ErrInvalidState.
func (s *Session) Apply(f Filter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateEmpty || s.current.IsEmpty() {
		return ErrInvalidState
	}

	next := f(s.current)
	if next.IsEmpty() {
		return ErrInvalidBuffer
	}

	s.current = next
	if s.current.Equal(s.original) {
		s.state = StateLoaded
	} else {
		s.state = StateModified
	}
	return nil
}

// Reset restores current to a fresh copy of the original.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateEmpty {
		return ErrInvalidState
	}

	s.current = s.original.Clone()
	s.state = StateLoaded
	return nil
}

// Clear drops both buffers and returns to the empty state.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.original = PixelBuffer{}
	s.current = PixelBuffer{}
	s.state = StateEmpty
}

// Current returns the working buffer, or false when nothing is loaded.
func (s *Session) Current() (PixelBuffer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.state != StateEmpty
}

// Original returns the loaded buffer, or false when nothing is loaded.
func (s *Session) Original() (PixelBuffer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.original, s.state != StateEmpty
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// HasImage returns true if an image is loaded
func (s *Session) HasImage() bool {
	return s.State() != StateEmpty
}
