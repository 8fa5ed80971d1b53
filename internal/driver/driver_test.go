package driver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/typeline/internal/events"
	"github.com/opencode-ai/typeline/internal/pace"
	"github.com/opencode-ai/typeline/internal/script"
)

// harness bundles a driver with capture hooks for its side effects.
type harness struct {
	clock    *fakeClock
	drv      *Driver
	revealed []rune
	finished int
	recorder *events.MemoryRecorder
}

func newHarness(t *testing.T, text string, delay time.Duration, opts ...Option) *harness {
	t.Helper()

	h := &harness{clock: newFakeClock(), recorder: &events.MemoryRecorder{}}
	seq := script.New(script.Span{
		Text:     text,
		OnReveal: func(el script.Element) { h.revealed = append(h.revealed, el.Rune) },
	})

	all := []Option{
		WithClock(h.clock),
		WithDefaultPace(pace.Constant(delay)),
		WithOnFinished(func() { h.finished++ }),
		WithRecorder(h.recorder),
	}
	all = append(all, opts...)

	h.drv = New(seq, all...)
	t.Cleanup(h.drv.Close)
	return h
}

func TestPlaybackRevealsInOrder(t *testing.T) {
	h := newHarness(t, "abc", 50*time.Millisecond)

	// First reveal is immediate, each subsequent one 50ms later.
	h.clock.Advance(150 * time.Millisecond)

	require.Equal(t, "abc", string(h.revealed))
	require.True(t, h.drv.Finished())
	require.Equal(t, 1, h.finished)
	require.Equal(t, 3, h.recorder.CountType(events.TypeRevealed))
	require.Equal(t, 1, h.recorder.CountType(events.TypeFinished))
}

func TestFirstRevealIsImmediate(t *testing.T) {
	h := newHarness(t, "abc", 50*time.Millisecond)

	h.clock.Advance(0)
	require.Equal(t, "a", string(h.revealed))

	h.clock.Advance(49 * time.Millisecond)
	require.Equal(t, "a", string(h.revealed))

	h.clock.Advance(1 * time.Millisecond)
	require.Equal(t, "ab", string(h.revealed))
}

func TestSkipFlushesRemainingSynchronously(t *testing.T) {
	h := newHarness(t, "hello", 50*time.Millisecond)

	h.clock.Advance(10 * time.Millisecond)
	require.Equal(t, "h", string(h.revealed))

	h.drv.Skip()

	// All remaining reveals land before the call returns.
	require.Equal(t, "hello", string(h.revealed))
	require.True(t, h.drv.Finished())
	require.Zero(t, h.finished, "completion must wait for the next scheduling turn")

	h.clock.Advance(0)
	require.Equal(t, 1, h.finished)
	require.Equal(t, 5, h.recorder.CountType(events.TypeRevealed))
}

func TestSkipWhenFinishedIsNoop(t *testing.T) {
	h := newHarness(t, "ab", 10*time.Millisecond)

	h.drv.Skip()
	h.clock.Advance(0)
	require.Equal(t, 1, h.finished)

	reveals := h.recorder.CountType(events.TypeRevealed)
	h.drv.Skip()
	h.drv.Skip()

	require.Equal(t, reveals, h.recorder.CountType(events.TypeRevealed))
	require.Equal(t, 1, h.finished)
	require.Zero(t, h.clock.pending(), "no timer may be scheduled by a finished skip")
}

func TestCompletionFiresOncePerPlaythrough(t *testing.T) {
	h := newHarness(t, "abc", 10*time.Millisecond)

	h.drv.Skip()
	h.drv.Skip()
	h.clock.Advance(time.Second)
	require.Equal(t, 1, h.finished)

	// A rewind opens a new play-through with its own notification.
	h.drv.Rewind()
	h.clock.Advance(time.Second)
	require.Equal(t, "abcabc", string(h.revealed))
	require.Equal(t, 2, h.finished)
}

func TestRewindResetsProgressionAndGate(t *testing.T) {
	h := newHarness(t, "abcd", 10*time.Millisecond)

	h.clock.Advance(15 * time.Millisecond)
	require.Equal(t, "ab", string(h.revealed))

	h.drv.Rewind()

	st := h.drv.Progression()
	require.Zero(t, st.Cursor)
	require.False(t, h.drv.finishedOnce)
	require.Zero(t, h.finished)
}

func TestControlSignalToggleProducesNoCompletion(t *testing.T) {
	h := newHarness(t, "abc", 10*time.Millisecond)

	skip, rewind := true, false
	h.drv.ApplyControl(&skip)
	require.True(t, h.drv.Finished())

	h.drv.ApplyControl(&rewind)
	require.False(t, h.drv.Finished())
	require.Zero(t, h.drv.Progression().Cursor)

	// The queued notification from the skip was canceled by the rewind.
	h.clock.Advance(0)
	require.Zero(t, h.finished)
	require.False(t, h.drv.finishedOnce)

	h.drv.ApplyControl(nil)
	require.False(t, h.drv.Finished())
}

func TestReplaceCancelsStaleTimers(t *testing.T) {
	var old, fresh []rune
	clock := newFakeClock()
	finished := 0

	oldSeq := script.New(script.Span{
		Text:     "old",
		OnReveal: func(el script.Element) { old = append(old, el.Rune) },
	})
	newSeq := script.New(script.Span{
		Text:     "new!",
		OnReveal: func(el script.Element) { fresh = append(fresh, el.Rune) },
	})

	drv := New(oldSeq,
		WithClock(clock),
		WithDefaultPace(pace.Constant(50*time.Millisecond)),
		WithOnFinished(func() { finished++ }),
	)
	defer drv.Close()

	clock.Advance(60 * time.Millisecond)
	require.Equal(t, "ol", string(old))

	drv.Replace(newSeq)

	clock.Advance(time.Second)
	require.Equal(t, "ol", string(old), "no callbacks from the superseded sequence may fire")
	require.Equal(t, "new!", string(fresh))
	require.Equal(t, 1, finished)
	require.Equal(t, newSeq.Len(), drv.Progression().Cursor)
}

func TestEmptySequenceFinishesWithOneNotification(t *testing.T) {
	h := newHarness(t, "", 10*time.Millisecond)

	require.True(t, h.drv.Finished())
	require.Empty(t, h.revealed)

	h.clock.Advance(0)
	require.Equal(t, 1, h.finished)

	h.drv.Skip()
	h.clock.Advance(time.Second)
	require.Equal(t, 1, h.finished)
	require.Zero(t, h.recorder.CountType(events.TypeRevealed))
}

func TestNegativePaceClampsToZero(t *testing.T) {
	broken := func(script.Element, *script.Element) time.Duration {
		return -time.Second
	}
	h := newHarness(t, "abc", 0, WithDefaultPace(broken))

	// Clamped to zero delay the whole run collapses into one turn.
	h.clock.Advance(0)
	require.Equal(t, "abc", string(h.revealed))
	require.Equal(t, 1, h.finished)
}

func TestSpanPaceOverridesDefault(t *testing.T) {
	var revealed []rune
	clock := newFakeClock()
	seq := script.New(script.Span{
		Text:     "slow",
		Pace:     pace.Constant(100 * time.Millisecond),
		OnReveal: func(el script.Element) { revealed = append(revealed, el.Rune) },
	})

	drv := New(seq, WithClock(clock), WithDefaultPace(pace.Constant(10*time.Millisecond)))
	defer drv.Close()

	clock.Advance(10 * time.Millisecond)
	require.Equal(t, "s", string(revealed), "span pace, not default, governs the delay")

	clock.Advance(90 * time.Millisecond)
	require.Equal(t, "sl", string(revealed))
}

func TestRevealCallbackMaySkip(t *testing.T) {
	var revealed []rune
	clock := newFakeClock()
	finished := 0

	var drv *Driver
	seq := script.New(script.Span{
		Text: "abc",
		OnReveal: func(el script.Element) {
			revealed = append(revealed, el.Rune)
			if el.Index == 0 {
				drv.Skip()
			}
		},
	})

	drv = New(seq,
		WithClock(clock),
		WithDefaultPace(pace.Constant(50*time.Millisecond)),
		WithOnFinished(func() { finished++ }),
	)
	defer drv.Close()

	clock.Advance(time.Second)
	require.Equal(t, "abc", string(revealed), "each element reveals exactly once")
	require.Equal(t, 1, finished)
}

func TestCompletionCallbackMayRewind(t *testing.T) {
	var revealed []rune
	clock := newFakeClock()
	finished := 0

	var drv *Driver
	seq := script.New(script.Span{
		Text:     "ab",
		OnReveal: func(el script.Element) { revealed = append(revealed, el.Rune) },
	})

	drv = New(seq,
		WithClock(clock),
		WithDefaultPace(pace.Constant(10*time.Millisecond)),
		WithOnFinished(func() {
			finished++
			if finished == 1 {
				drv.Rewind()
			}
		}),
	)
	defer drv.Close()

	clock.Advance(time.Second)
	require.Equal(t, "abab", string(revealed))
	require.Equal(t, 2, finished)
}

func TestCloseReleasesPendingWork(t *testing.T) {
	h := newHarness(t, "abc", 50*time.Millisecond)

	h.clock.Advance(0)
	require.Equal(t, "a", string(h.revealed))

	h.drv.Close()
	require.Zero(t, h.clock.pending(), "close must stop the pending timer")

	h.clock.Advance(time.Second)
	require.Equal(t, "a", string(h.revealed))
	require.Zero(t, h.finished)

	// All controls are inert after close.
	h.drv.Skip()
	h.drv.Rewind()
	require.Equal(t, "a", string(h.revealed))
}

func TestPlaythroughIDChangesOnRewindAndReplace(t *testing.T) {
	h := newHarness(t, "ab", 10*time.Millisecond)

	first := h.drv.Playthrough()
	require.NotEmpty(t, first)

	h.drv.Rewind()
	second := h.drv.Playthrough()
	require.NotEqual(t, first, second)

	h.drv.Replace(script.FromString("xy"))
	require.NotEqual(t, second, h.drv.Playthrough())
}
