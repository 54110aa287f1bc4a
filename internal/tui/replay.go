// internal/tui/replay.go
// Package tui provides the Bubble Tea viewer that replays a saved model
// response through the extraction engine chunk by chunk.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fileshot/toolstream/internal/toolcall"
	"github.com/fileshot/toolstream/internal/util"
)

// replayState is where the replay currently stands.
type replayState int

const (
	stateStreaming replayState = iota
	statePaused
	stateDone
)

func (s replayState) String() string {
	switch s {
	case statePaused:
		return "paused"
	case stateDone:
		return "done"
	default:
		return "streaming"
	}
}

// tickMsg advances the replay by one chunk. Ticks from an earlier clock
// generation are dropped.
type tickMsg struct {
	gen int
}

// streamEndMsg is sent once the whole input has been fed.
type streamEndMsg struct {
	gen int
}

// model is the Bubble Tea model for the replay viewer.
type model struct {
	engine   *toolcall.Engine
	source   string
	ends     []int
	step     int
	delay    time.Duration
	gen      int
	state    replayState
	segments []toolcall.Segment
	stable   int
	redraws  int
	viewport viewport.Model
	spinner  spinner.Model
	width    int
	height   int
}

// newModel prepares a replay of source in chunk-byte steps.
func newModel(engine *toolcall.Engine, source string, chunk int, delay time.Duration) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &model{
		engine:   engine,
		source:   source,
		ends:     util.ChunkBoundaries(source, chunk),
		delay:    delay,
		segments: engine.Render(""),
		viewport: viewport.New(100, 5),
		spinner:  s,
	}
}

// tickCmd schedules the next replay step on the current clock.
func (m *model) tickCmd() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.delay, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// startClock begins a new tick chain and orphans any tick still in flight.
func (m *model) startClock() tea.Cmd {
	m.gen++
	return tea.Batch(m.spinner.Tick, m.tickCmd())
}

// Init starts the spinner and the replay clock.
func (m *model) Init() tea.Cmd {
	if len(m.ends) == 0 {
		m.state = stateDone
		return nil
	}
	return m.startClock()
}

// advance feeds the next chunk and reports whether input remains.
func (m *model) advance() bool {
	if m.step >= len(m.ends) {
		return false
	}
	next := m.engine.Render(m.source[:m.ends[m.step]])
	m.stable = toolcall.CommonPrefix(m.segments, next)
	m.redraws += len(next) - m.stable
	m.segments = next
	m.step++
	m.refresh()
	return m.step < len(m.ends)
}

func (m *model) restart() {
	m.step = 0
	m.stable = 0
	m.redraws = 0
	m.segments = m.engine.Render("")
	m.state = stateStreaming
	m.refresh()
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "p", " ":
			switch m.state {
			case stateStreaming:
				m.state = statePaused
				m.gen++
				return m, nil
			case statePaused:
				m.state = stateStreaming
				return m, m.startClock()
			}
		case "n", "right":
			if m.state == statePaused && !m.advance() {
				m.state = stateDone
			}
			return m, nil
		case "r":
			m.restart()
			return m, m.startClock()
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		headerHeight := 2
		footerHeight := 2
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 1)
		m.refresh()
		return m, nil

	case tickMsg:
		if m.state != stateStreaming || msg.gen != m.gen {
			return m, nil
		}
		if m.advance() {
			return m, m.tickCmd()
		}
		gen := m.gen
		return m, func() tea.Msg { return streamEndMsg{gen: gen} }

	case streamEndMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.state = stateDone
		return m, nil

	case spinner.TickMsg:
		if m.state == stateStreaming {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// refresh re-renders the segment list into the viewport.
func (m *model) refresh() {
	m.viewport.SetContent(renderSegments(m.segments, m.stable, m.viewport.Width))
	m.viewport.GotoBottom()
}

// View renders the header, the segment viewport and the key help.
func (m *model) View() string {
	var builder strings.Builder

	status := m.state.String()
	if m.state == stateStreaming {
		status = m.spinner.View() + " " + status
	}
	header := fmt.Sprintf("Step %d/%d", m.step, len(m.ends))
	stable := fmt.Sprintf("Stable %d/%d", m.stable, len(m.segments))
	builder.WriteString(headerStyle.Render("toolstream replay"))
	builder.WriteString(badgeStyle.Render(header))
	builder.WriteString(badgeStyle.Render(stable))
	builder.WriteString(badgeStyle.Render(status))
	builder.WriteString("\n\n")

	builder.WriteString(m.viewport.View())
	builder.WriteString("\n")
	builder.WriteString(helpStyle.Render(" p pause · n step · r restart · q quit"))
	return builder.String()
}

// Run replays source in the terminal until the user quits.
func Run(ctx context.Context, engine *toolcall.Engine, source string, chunk int, delay time.Duration) error {
	m := newModel(engine, source, chunk, delay)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("replay viewer: %w", err)
	}
	return nil
}
