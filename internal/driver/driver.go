// Package driver implements the scheduling engine that reveals a
// sequence over time. It owns the current progression snapshot, at most
// one pending reveal timer and at most one deferred completion
// notification, and sequences side-effect callbacks with state changes.
package driver

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/opencode-ai/typeline/internal/events"
	"github.com/opencode-ai/typeline/internal/logging"
	"github.com/opencode-ai/typeline/internal/pace"
	"github.com/opencode-ai/typeline/internal/progress"
	"github.com/opencode-ai/typeline/internal/script"
)

// Option configures a Driver.
type Option func(*Driver)

// WithClock overrides the clock. Tests use this to drive playback
// without wall-clock delays.
func WithClock(clock Clock) Option {
	return func(d *Driver) { d.clock = clock }
}

// WithDefaultPace sets the pace used for spans that carry none.
func WithDefaultPace(fn script.PaceFunc) Option {
	return func(d *Driver) { d.resolver.Default = fn }
}

// WithOnFinished sets the completion callback. It is invoked exactly
// once per play-through, on the scheduling turn after the sequence
// finishes.
func WithOnFinished(fn func()) Option {
	return func(d *Driver) { d.onFinished = fn }
}

// WithRecorder sets the play-through event recorder.
func WithRecorder(recorder events.Recorder) Option {
	return func(d *Driver) { d.recorder = recorder }
}

// WithLogger overrides the driver's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Driver) { d.logger = logger }
}

// Driver plays a sequence, revealing one element per timer tick.
//
// All callbacks (span OnReveal hooks, the completion callback, the
// recorder) are invoked with no driver lock held, so they may call back
// into the driver; a generation counter makes the re-entrant call win
// over any scheduling the interrupted transition had left to do.
type Driver struct {
	clock      Clock
	resolver   pace.Resolver
	onFinished func()
	recorder   events.Recorder
	logger     zerolog.Logger

	mu           sync.Mutex
	state        progress.State
	finishedOnce bool
	playID       string
	closed       bool

	// gen invalidates timers and notifications scheduled before a
	// superseding transition. Bumped by every cancel path.
	gen    uint64
	timer  Timer // pending element reveal
	notify Timer // deferred completion notification
}

// New creates a driver and starts playing seq from the beginning.
func New(seq script.Sequence, opts ...Option) *Driver {
	d := &Driver{
		clock:  SystemClock,
		logger: logging.Component("driver"),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.mu.Lock()
	d.resetLocked(seq)
	g := d.gen
	id := d.playID
	d.mu.Unlock()

	d.record(events.New(events.TypeStarted, id))
	d.scheduleAfterCallbacks(g)
	return d
}

// Replace swaps in a new sequence and restarts progression from zero.
// Any pending timer or queued completion notification from the prior
// sequence is canceled first; stale work never fires against the new
// state.
func (d *Driver) Replace(seq script.Sequence) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.cancelLocked()
	d.resetLocked(seq)
	g := d.gen
	id := d.playID
	d.mu.Unlock()

	d.logger.Debug().Str("playthrough_id", id).Int("length", seq.Len()).Msg("sequence replaced")
	d.record(events.New(events.TypeStarted, id))
	d.scheduleAfterCallbacks(g)
}

// Skip fast-forwards to the end, flushing the reveal callback for every
// remaining element synchronously in sequence order. A no-op when the
// sequence is already finished: no transition, no timer, no callbacks.
func (d *Driver) Skip() {
	d.mu.Lock()
	if d.closed || d.state.Finished() {
		d.mu.Unlock()
		return
	}
	d.cancelLocked()
	pending := d.state.Remaining()
	d.state = d.state.FastForward()
	seq := d.state.Seq
	g := d.gen
	id := d.playID
	d.mu.Unlock()

	d.logger.Debug().Str("playthrough_id", id).Int("flushed", len(pending)).Msg("skipped to end")
	d.record(events.New(events.TypeSkipped, id))
	for _, el := range pending {
		d.reveal(seq, el, id)
	}
	d.scheduleAfterCallbacks(g)
}

// Rewind resets progression to the start of the current sequence and
// begins a fresh play-through. The one-shot completion gate is cleared;
// a queued but undelivered completion notification is canceled.
func (d *Driver) Rewind() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.cancelLocked()
	prevID := d.playID
	d.resetLocked(d.state.Seq)
	g := d.gen
	id := d.playID
	d.mu.Unlock()

	d.logger.Debug().Str("playthrough_id", id).Msg("rewound")
	d.record(events.New(events.TypeRewound, prevID))
	d.record(events.New(events.TypeStarted, id))
	d.scheduleAfterCallbacks(g)
}

// ApplyControl drives the driver declaratively: true skips, false
// rewinds, nil does nothing.
func (d *Driver) ApplyControl(signal *bool) {
	if signal == nil {
		return
	}
	if *signal {
		d.Skip()
		return
	}
	d.Rewind()
}

// Progression returns the current progression snapshot.
func (d *Driver) Progression() progress.State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Finished reports whether every element has been revealed.
func (d *Driver) Finished() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.Finished()
}

// Playthrough returns the ID of the current play-through.
func (d *Driver) Playthrough() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.playID
}

// Close tears the driver down, releasing any pending timer and queued
// notification. The driver ignores all calls afterwards.
func (d *Driver) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.cancelLocked()
	d.mu.Unlock()

	d.logger.Debug().Msg("driver closed")
}

// resetLocked installs seq with cursor zero and opens a new
// play-through. Caller holds the lock and has canceled pending work.
func (d *Driver) resetLocked(seq script.Sequence) {
	d.state = progress.New(seq)
	d.finishedOnce = false
	d.playID = uuid.NewString()
}

// cancelLocked stops the pending timer and the queued notification and
// invalidates any of their callbacks already in flight.
func (d *Driver) cancelLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.notify != nil {
		d.notify.Stop()
		d.notify = nil
	}
}

// scheduleAfterCallbacks re-acquires the lock and schedules the next
// transition, unless gen shows that a callback superseded this
// transition in the meantime.
func (d *Driver) scheduleAfterCallbacks(gen uint64) {
	d.mu.Lock()
	if !d.closed && gen == d.gen {
		d.scheduleLocked()
	}
	d.mu.Unlock()
}

// scheduleLocked arms the next pending action for the current state:
// a reveal timer while playing, the deferred completion notification
// once finished. Caller holds the lock; no timer may be pending.
func (d *Driver) scheduleLocked() {
	gen := d.gen
	if !d.state.Finished() {
		delay := d.resolver.Delay(d.state)
		d.timer = d.clock.AfterFunc(delay, func() { d.advance(gen) })
		return
	}
	if !d.finishedOnce && d.notify == nil {
		// Queued for the next scheduling turn rather than a timed
		// delay: the finished state is observable before the
		// notification lands.
		d.notify = d.clock.AfterFunc(0, func() { d.deliverFinished(gen) })
	}
}

// advance plays the next element. Runs on the clock's scheduling turn.
func (d *Driver) advance(gen uint64) {
	d.mu.Lock()
	if d.closed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.state = d.state.Next()
	just := d.state.LastPlayed()
	seq := d.state.Seq
	id := d.playID
	d.mu.Unlock()

	if just != nil {
		d.reveal(seq, *just, id)
	}
	d.scheduleAfterCallbacks(gen)
}

// reveal records and dispatches the side effects for one played element.
func (d *Driver) reveal(seq script.Sequence, el script.Element, playID string) {
	if d.recorder != nil {
		event := events.New(events.TypeRevealed, playID)
		event.Index = el.Index
		event.Element = string(el.Rune)
		d.recorder.Record(event)
	}
	if cb := seq.SpanOf(el).OnReveal; cb != nil {
		cb(el)
	}
}

// deliverFinished invokes the one-shot completion callback. The gate is
// recorded only after the callback returns, so a rewind issued from
// inside the callback observes a play-through that never completed.
func (d *Driver) deliverFinished(gen uint64) {
	d.mu.Lock()
	if d.closed || gen != d.gen || d.finishedOnce {
		d.mu.Unlock()
		return
	}
	d.notify = nil
	cb := d.onFinished
	id := d.playID
	d.mu.Unlock()

	d.logger.Debug().Str("playthrough_id", id).Msg("playthrough finished")
	d.record(events.New(events.TypeFinished, id))
	if cb != nil {
		cb()
	}

	d.mu.Lock()
	if gen == d.gen {
		d.finishedOnce = true
	}
	d.mu.Unlock()
}

func (d *Driver) record(event events.Event) {
	if d.recorder != nil {
		d.recorder.Record(event)
	}
}
