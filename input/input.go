// Package input provides double-buffered keyboard state.
//
// A [State] tracks two key sets: keys currently held down, and keys whose
// down-transition happened within the current frame. The game loop feeds the
// state from backend events and clears the per-frame set exactly once after
// each presented frame, so IsPressed answers "was this key pressed this
// frame?" while IsDown answers "is this key being held?".
//
// State is not safe for concurrent use; the loop owns it and hands it to the
// update callback.
package input

// State holds the double-buffered pressed/just-pressed key sets.
// The zero value is not usable; create one with NewState.
type State struct {
	pressed     map[Key]struct{}
	justPressed map[Key]struct{}
}

// NewState creates an empty input state.
func NewState() *State {
	return &State{
		pressed:     make(map[Key]struct{}),
		justPressed: make(map[Key]struct{}),
	}
}

// Press records a fresh key-down transition: the key joins both the held set
// and the just-pressed set.
//
// Pressing a key that is already held is a no-op, so auto-repeat events that
// slip past the event-translation layer cannot re-trigger IsPressed.
func (s *State) Press(k Key) {
	if _, held := s.pressed[k]; held {
		return
	}
	s.pressed[k] = struct{}{}
	s.justPressed[k] = struct{}{}
}

// Release records a key-up transition: the key leaves the held set.
// The just-pressed set is untouched, so a press and release within the same
// frame is still observable through IsPressed.
func (s *State) Release(k Key) {
	delete(s.pressed, k)
}

// IsDown reports whether the key is currently held.
func (s *State) IsDown(k Key) bool {
	_, ok := s.pressed[k]
	return ok
}

// IsPressed reports whether the key was pressed this frame.
func (s *State) IsPressed(k Key) bool {
	_, ok := s.justPressed[k]
	return ok
}

// PressedKeys returns the keys pressed within this frame.
func (s *State) PressedKeys() []Key {
	out := make([]Key, 0, len(s.justPressed))
	for k := range s.justPressed {
		out = append(out, k)
	}
	return out
}

// HeldKeys returns the keys currently being held down.
func (s *State) HeldKeys() []Key {
	out := make([]Key, 0, len(s.pressed))
	for k := range s.pressed {
		out = append(out, k)
	}
	return out
}

// Clear empties the just-pressed set. The loop calls this exactly once per
// completed frame, after the update callback has run and the frame has been
// presented.
func (s *State) Clear() {
	clear(s.justPressed)
}
