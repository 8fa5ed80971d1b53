// Package progress implements the pure progression model for a reveal
// sequence: an immutable cursor over an ordered element collection with
// copy-on-transition semantics. Nothing here touches timers or performs
// I/O, which keeps every transition replayable and independently
// testable.
package progress

import "github.com/opencode-ai/typeline/internal/script"

// State is an immutable progression snapshot. Cursor counts how many
// elements have been played and always lies in [0, Seq.Len()]. The zero
// value is a finished empty sequence.
type State struct {
	Seq    script.Sequence
	Cursor int
}

// New returns a fresh state over seq with nothing played.
func New(seq script.Sequence) State {
	return State{Seq: seq}
}

// Next returns a state with one more element played. Calling Next on a
// finished state returns the state unchanged.
func (s State) Next() State {
	if s.Finished() {
		return s
	}
	return State{Seq: s.Seq, Cursor: s.Cursor + 1}
}

// Rewind returns a state over the same sequence with nothing played.
func (s State) Rewind() State {
	return State{Seq: s.Seq}
}

// FastForward returns a state with every element played. Idempotent once
// finished.
func (s State) FastForward() State {
	return State{Seq: s.Seq, Cursor: s.Seq.Len()}
}

// Finished reports whether every element has been played. An empty
// sequence is finished from the start.
func (s State) Finished() bool {
	return s.Cursor == s.Seq.Len()
}

// LastPlayed returns the most recently played element, or nil when
// nothing has been played yet.
func (s State) LastPlayed() *script.Element {
	if s.Cursor == 0 {
		return nil
	}
	el := s.Seq.Element(s.Cursor - 1)
	return &el
}

// Upcoming returns the next element to be played, or nil when finished.
func (s State) Upcoming() *script.Element {
	if s.Finished() {
		return nil
	}
	el := s.Seq.Element(s.Cursor)
	return &el
}

// Remaining returns the unplayed elements in order.
func (s State) Remaining() []script.Element {
	out := make([]script.Element, 0, s.Seq.Len()-s.Cursor)
	for i := s.Cursor; i < s.Seq.Len(); i++ {
		out = append(out, s.Seq.Element(i))
	}
	return out
}
