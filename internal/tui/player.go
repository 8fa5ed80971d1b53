// Package tui implements the typeline terminal player.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opencode-ai/typeline/internal/config"
	"github.com/opencode-ai/typeline/internal/driver"
	"github.com/opencode-ai/typeline/internal/events"
	"github.com/opencode-ai/typeline/internal/logging"
	"github.com/opencode-ai/typeline/internal/pace"
	"github.com/opencode-ai/typeline/internal/script"
	"github.com/opencode-ai/typeline/internal/tui/styles"
)

// BuildSequence converts a loaded script file into a runtime sequence.
// onReveal is attached to every span; spans without an explicit pace or
// delay inherit the driver's default.
func BuildSequence(file *script.File, cfg config.Config, onReveal func(script.Element)) (script.Sequence, error) {
	spans := make([]script.Span, 0, len(file.Spans))
	for i, spec := range file.Spans {
		span := script.Span{
			Text:     spec.Text,
			Style:    spec.Style,
			OnReveal: onReveal,
			Attrs:    spec.Attrs,
		}
		if spec.Pace != "" || spec.Delay != "" {
			fn, err := pace.Preset(spec.Pace, spec.BaseDelay(cfg.DefaultDelay))
			if err != nil {
				return script.Sequence{}, fmt.Errorf("span %d: %w", i+1, err)
			}
			span.Pace = fn
		}
		spans = append(spans, span)
	}
	return script.New(spans...), nil
}

// Run plays a script in the terminal until it is quit.
func Run(file *script.File, cfg config.Config) error {
	var p *tea.Program

	send := func(msg tea.Msg) {
		if p != nil {
			p.Send(msg)
		}
	}

	seq, err := BuildSequence(file, cfg, func(el script.Element) {
		send(revealMsg{el: el})
	})
	if err != nil {
		return err
	}

	defaultPace, err := cfg.DefaultPace()
	if err != nil {
		return err
	}

	m := newModel(file.Name, seq, styles.BuildStyles(styles.Lookup(cfg.Theme)))
	m.newDriver = func() *driver.Driver {
		return driver.New(seq,
			driver.WithDefaultPace(defaultPace),
			driver.WithOnFinished(func() { send(finishedMsg{}) }),
			driver.WithRecorder(events.LogRecorder{Logger: logging.Component("playthrough")}),
		)
	}

	p = tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if fm, ok := final.(model); ok && fm.drv != nil {
		fm.drv.Close()
	}
	return err
}

type revealMsg struct{ el script.Element }

type finishedMsg struct{}

type driverReadyMsg struct{ drv *driver.Driver }

type model struct {
	title    string
	seq      script.Sequence
	styles   styles.Styles
	width    int
	height   int
	revealed []script.Element
	finished bool

	drv       *driver.Driver
	newDriver func() *driver.Driver
}

func newModel(title string, seq script.Sequence, styleSet styles.Styles) model {
	return model{
		title:  title,
		seq:    seq,
		styles: styleSet,
	}
}

func (m model) Init() tea.Cmd {
	if m.newDriver == nil {
		return nil
	}
	// The driver starts revealing as soon as it exists, so it is built
	// only once the program is consuming messages.
	return func() tea.Msg {
		return driverReadyMsg{drv: m.newDriver()}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case driverReadyMsg:
		m.drv = msg.drv

	case revealMsg:
		m.revealed = append(m.revealed, msg.el)

	case finishedMsg:
		m.finished = true

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if m.drv != nil {
				m.drv.Close()
			}
			return m, tea.Quit
		case " ", "s":
			if m.drv != nil {
				m.drv.Skip()
			}
		case "r":
			m.revealed = nil
			m.finished = false
			if m.drv != nil {
				m.drv.Rewind()
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.renderRevealed())
	if !m.finished {
		b.WriteString(m.styles.Cursor.Render("▌"))
	}
	b.WriteString("\n\n")
	if m.finished {
		b.WriteString(m.styles.Done.Render(m.statusLine()))
	} else {
		b.WriteString(m.styles.Muted.Render(m.statusLine()))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("space skip | r rewind | q quit"))
	b.WriteString("\n")

	return b.String()
}

// renderRevealed renders the revealed prefix, styling each run of
// consecutive elements by its owning span.
func (m model) renderRevealed() string {
	var b strings.Builder

	i := 0
	for i < len(m.revealed) {
		span := m.revealed[i].Span
		var text strings.Builder
		for i < len(m.revealed) && m.revealed[i].Span == span {
			text.WriteRune(m.revealed[i].Rune)
			i++
		}

		name := m.seq.Span(span).Style
		if name == "gradient" {
			b.WriteString(styles.Gradient(text.String(), m.styles.Theme))
			continue
		}
		b.WriteString(m.styles.SpanStyle(name).Render(text.String()))
	}

	return b.String()
}

func (m model) statusLine() string {
	if m.finished {
		return fmt.Sprintf("done - %d elements", m.seq.Len())
	}
	return fmt.Sprintf("%d/%d elements", len(m.revealed), m.seq.Len())
}
