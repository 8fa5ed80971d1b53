// Package pace selects the delay between element reveals. A resolver
// picks the pace function for the current progression position, per-span
// override first, then its default; presets cover the common typing
// rhythms.
package pace

import (
	"fmt"
	"time"

	"github.com/fogleman/ease"

	"github.com/opencode-ai/typeline/internal/progress"
	"github.com/opencode-ai/typeline/internal/script"
)

// DefaultDelay is the per-element delay used when nothing else is
// configured.
const DefaultDelay = 40 * time.Millisecond

// Resolver chooses the delay before the next reveal.
type Resolver struct {
	// Default applies when the upcoming element's span has no pace of
	// its own. When nil, Constant(DefaultDelay) is used.
	Default script.PaceFunc
}

// Delay computes the delay before revealing the upcoming element of st.
// The first reveal of a play-through is immediate. A negative delay from
// a pace function is a contract violation and clamps to zero so playback
// never stalls.
func (r Resolver) Delay(st progress.State) time.Duration {
	just := st.LastPlayed()
	if just == nil {
		return 0
	}
	upcoming := st.Upcoming()
	if upcoming == nil {
		return 0
	}

	fn := st.Seq.SpanOf(*upcoming).Pace
	if fn == nil {
		fn = r.Default
	}
	if fn == nil {
		fn = Constant(DefaultDelay)
	}

	d := fn(*just, upcoming)
	if d < 0 {
		return 0
	}
	return d
}

// Constant returns a pace with a fixed delay per element.
func Constant(d time.Duration) script.PaceFunc {
	return func(script.Element, *script.Element) time.Duration {
		return d
	}
}

// Punctuated returns a pace of base per element, pausing longer after
// clause and sentence punctuation the way a person typing would.
func Punctuated(base time.Duration) script.PaceFunc {
	return func(just script.Element, _ *script.Element) time.Duration {
		switch just.Rune {
		case '.', '!', '?', '\n':
			return 6 * base
		case ',', ';', ':':
			return 3 * base
		default:
			return base
		}
	}
}

// Ramp returns a pace that eases from start to end over the first n
// reveals, then holds at end. Useful for an opening line that settles
// into a steady rhythm.
func Ramp(start, end time.Duration, n int) script.PaceFunc {
	if n <= 0 {
		n = 1
	}
	return func(_ script.Element, upcoming *script.Element) time.Duration {
		if upcoming == nil {
			return end
		}
		t := float64(upcoming.Index) / float64(n)
		if t > 1 {
			t = 1
		}
		f := ease.OutQuad(t)
		return start + time.Duration(f*float64(end-start))
	}
}

// Preset resolves a named pace from a script file. base is the span's
// per-element delay.
func Preset(name string, base time.Duration) (script.PaceFunc, error) {
	if base <= 0 {
		base = DefaultDelay
	}
	switch name {
	case "", "constant":
		return Constant(base), nil
	case "punctuated":
		return Punctuated(base), nil
	case "ramp":
		return Ramp(4*base, base, 12), nil
	default:
		return nil, fmt.Errorf("unknown pace %q", name)
	}
}
