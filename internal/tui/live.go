// Package tui provides a live terminal view of a running integration:
// the state components are traced with asciigraph while a stats panel
// shows time, step size and step count.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/kvanta/numint/internal/observers"
	"github.com/kvanta/numint/internal/ode"
)

const (
	graphWidth      = 70
	graphHeight     = 14
	historyCapacity = 400
	stepsPerFrame   = 4
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type TickMsg time.Time

// Model drives the integration one frame at a time.
type Model struct {
	name    string
	sys     ode.System
	stepper ode.Stepper

	// Set when the stepper controls its own step size.
	adaptive ode.AdaptiveStepper

	state   ode.State
	initial ode.State
	t       float64
	dt      float64

	history *observers.History
	running bool
	err     error
}

// NewModel prepares a live view. For an adaptive stepper the controller is
// initialized from x0; fixed steppers advance with constant dt.
func NewModel(name string, sys ode.System, stepper ode.Stepper, x0 ode.State, dt float64) Model {
	m := Model{
		name:    name,
		sys:     sys,
		stepper: stepper,
		state:   x0.Clone(),
		initial: x0.Clone(),
		dt:      dt,
		history: observers.NewHistory(historyCapacity),
		running: true,
	}
	if ad, ok := stepper.(ode.AdaptiveStepper); ok {
		m.adaptive = ad
		m.err = ad.Initialize(x0, 0, dt)
	} else {
		stepper.AdjustSize(m.state)
	}
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.state = m.initial.Clone()
			m.t = 0
			m.history = observers.NewHistory(historyCapacity)
			m.err = nil
			if m.adaptive != nil {
				m.err = m.adaptive.Initialize(m.initial, 0, m.dt)
			}
			m.running = true
		}
		return m, nil

	case TickMsg:
		if m.running && m.err == nil {
			for i := 0; i < stepsPerFrame; i++ {
				m.step()
				if m.err != nil {
					m.running = false
					break
				}
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	if m.adaptive != nil {
		if err := m.adaptive.Advance(m.sys); err != nil {
			m.err = err
			return
		}
		m.state = m.adaptive.CurrentState()
		m.t = m.adaptive.CurrentTime()
	} else {
		if err := m.stepper.DoStep(m.sys, m.state, m.t, m.dt); err != nil {
			m.err = err
			return
		}
		m.t += m.dt
	}

	if !m.state.IsValid() {
		m.err = ode.ErrInvalidState
		return
	}
	m.history.Observe(m.state, m.t)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("numint live — %s", m.name)))
	b.WriteString("\n")

	if m.history.Len() > 1 {
		series := make([][]float64, len(m.state))
		for i := range m.state {
			series[i] = m.history.Component(i)
		}
		graph := asciigraph.PlotMany(series,
			asciigraph.Width(graphWidth),
			asciigraph.Height(graphHeight),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	b.WriteString(m.statsView())

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(fmt.Sprintf("stopped: %v", m.err)))
	}

	b.WriteString(helpStyle.Render("space pause · r reset · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) statsView() string {
	dt := m.dt
	if m.adaptive != nil {
		dt = m.adaptive.CurrentStepSize()
	}

	rows := []struct {
		label, value string
	}{
		{"t", fmt.Sprintf("%.4f", m.t)},
		{"dt", fmt.Sprintf("%.3e", dt)},
		{"steps", fmt.Sprintf("%d", m.stepper.Steps())},
		{"state", fmt.Sprintf("%.4v", m.state)},
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r.label))
		b.WriteString(valueStyle.Render(r.value))
		b.WriteString("\n")
	}
	return b.String()
}

// Run blocks until the live view exits.
func Run(name string, sys ode.System, stepper ode.Stepper, x0 ode.State, dt float64) error {
	p := tea.NewProgram(NewModel(name, sys, stepper, x0, dt))
	_, err := p.Run()
	return err
}
