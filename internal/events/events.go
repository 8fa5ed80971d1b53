// Package events records play-through events emitted by the reveal
// driver.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Type categorizes play-through events.
type Type string

const (
	TypeStarted  Type = "playthrough.started"
	TypeRevealed Type = "element.revealed"
	TypeSkipped  Type = "playthrough.skipped"
	TypeRewound  Type = "playthrough.rewound"
	TypeFinished Type = "playthrough.finished"
)

// Event is one entry in a play-through's event stream.
type Event struct {
	// ID is the unique identifier for the event.
	ID string `json:"id"`

	// PlaythroughID groups events belonging to one play-through.
	PlaythroughID string `json:"playthrough_id"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Type categorizes the event.
	Type Type `json:"type"`

	// Index is the element index for reveal events.
	Index int `json:"index,omitempty"`

	// Element is the revealed element's text for reveal events.
	Element string `json:"element,omitempty"`
}

// New builds an event with a fresh ID and the current time.
func New(eventType Type, playthroughID string) Event {
	return Event{
		ID:            uuid.NewString(),
		PlaythroughID: playthroughID,
		Timestamp:     time.Now().UTC(),
		Type:          eventType,
	}
}

// Recorder receives driver events. Implementations must be safe for
// concurrent use; the driver calls Record while holding no locks.
type Recorder interface {
	Record(event Event)
}

// LogRecorder writes events to a zerolog logger, one line per event.
type LogRecorder struct {
	Logger zerolog.Logger
}

// Record logs the event at debug level.
func (r LogRecorder) Record(event Event) {
	entry := r.Logger.Debug().
		Str("event_id", event.ID).
		Str("playthrough_id", event.PlaythroughID).
		Str("type", string(event.Type))
	if event.Type == TypeRevealed {
		entry = entry.Int("index", event.Index).Str("element", event.Element)
	}
	entry.Msg("playthrough event")
}

// MemoryRecorder accumulates events in memory for tests and transcripts.
type MemoryRecorder struct {
	mu     sync.Mutex
	events []Event
}

// Record appends the event.
func (r *MemoryRecorder) Record(event Event) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

// Events returns a copy of all recorded events in order.
func (r *MemoryRecorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// CountType returns how many recorded events have the given type.
func (r *MemoryRecorder) CountType(eventType Type) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, event := range r.events {
		if event.Type == eventType {
			n++
		}
	}
	return n
}
