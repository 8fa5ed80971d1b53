// Package script provides the sequence model consumed by the reveal engine:
// ordered elements grouped into metadata-bearing spans.
package script

import "time"

// PaceFunc computes the delay before the upcoming element is revealed.
// just is the element that was played last; upcoming is nil once the
// sequence is exhausted. Implementations must be pure: no timers, no
// mutation, same inputs always yield the same delay.
type PaceFunc func(just Element, upcoming *Element) time.Duration

// Element is a single revealable unit of a sequence.
type Element struct {
	// Rune is the element content.
	Rune rune

	// Index is the element's position within the whole sequence.
	Index int

	// Span is the index of the owning span.
	Span int
}

// Span is a contiguous run of elements sharing metadata. All fields are
// optional except Text. Only Pace and OnReveal are interpreted by the
// engine; Style is consumed by renderers and Attrs is an opaque bag for
// callers.
type Span struct {
	// Text supplies the span's elements, one per rune.
	Text string

	// Style names a renderer style for the span.
	Style string

	// Pace overrides the default pace for elements in this span.
	Pace PaceFunc

	// OnReveal is invoked once per play-through for each element in the
	// span, in sequence order, as it is revealed.
	OnReveal func(Element)

	// Attrs carries caller-defined metadata. The engine never reads it.
	Attrs map[string]string
}

// Sequence is an ordered, immutable collection of elements partitioned
// into spans. Build one with New or FromString and treat it as a value.
type Sequence struct {
	spans    []Span
	elements []Element
}

// New builds a sequence from spans. Spans with empty text contribute no
// elements but are retained so span indices stay stable.
func New(spans ...Span) Sequence {
	seq := Sequence{spans: make([]Span, len(spans))}
	copy(seq.spans, spans)

	for si, span := range seq.spans {
		for _, r := range span.Text {
			seq.elements = append(seq.elements, Element{
				Rune:  r,
				Index: len(seq.elements),
				Span:  si,
			})
		}
	}
	return seq
}

// FromString builds a single-span sequence from plain text.
func FromString(text string) Sequence {
	return New(Span{Text: text})
}

// Len returns the number of elements.
func (s Sequence) Len() int {
	return len(s.elements)
}

// Element returns the element at index i.
func (s Sequence) Element(i int) Element {
	return s.elements[i]
}

// Elements returns a copy of all elements in order.
func (s Sequence) Elements() []Element {
	out := make([]Element, len(s.elements))
	copy(out, s.elements)
	return out
}

// Spans returns the number of spans.
func (s Sequence) Spans() int {
	return len(s.spans)
}

// Span returns the span at index i.
func (s Sequence) Span(i int) Span {
	return s.spans[i]
}

// SpanOf returns the span owning el.
func (s Sequence) SpanOf(el Element) Span {
	return s.spans[el.Span]
}

// Text returns the concatenated text of all spans.
func (s Sequence) Text() string {
	out := make([]rune, 0, len(s.elements))
	for _, el := range s.elements {
		out = append(out, el.Rune)
	}
	return string(out)
}

// Equal reports structural equality: same spans with the same text, style
// and attrs. Function-valued metadata is ignored, functions are not
// comparable. Provided for callers that want to avoid replacing a sequence
// with an identical one, which would needlessly restart progression.
func (s Sequence) Equal(other Sequence) bool {
	if len(s.spans) != len(other.spans) {
		return false
	}
	for i, span := range s.spans {
		o := other.spans[i]
		if span.Text != o.Text || span.Style != o.Style {
			return false
		}
		if len(span.Attrs) != len(o.Attrs) {
			return false
		}
		for k, v := range span.Attrs {
			if ov, ok := o.Attrs[k]; !ok || ov != v {
				return false
			}
		}
	}
	return true
}
