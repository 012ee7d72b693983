package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/jacobbriones1/DynoDiff/internal/lake"
)

const historyCapacity = 600

var (
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives the live view of the filling curve. Parameters can be
// adjusted mid-run; the closed form is re-solved on every change.
type Model struct {
	params   lake.Parameters
	sol      *lake.Solution
	t, dt    float64
	running  bool
	history  []float64
	selected int // 0=flow, 1=volume, 2=input
	err      error
}

var paramNames = []string{"flow rate", "volume", "input rate"}

// NewModel starts the live view at t = 0.
func NewModel(p lake.Parameters, dt float64) (Model, error) {
	sol, err := lake.Solve(p)
	if err != nil {
		return Model{}, err
	}
	return Model{
		params:  p,
		sol:     sol,
		dt:      dt,
		running: true,
		history: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
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
			m.t = 0
			m.history = m.history[:0]
		case "tab":
			m.selected = (m.selected + 1) % len(paramNames)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		}
		return m, nil

	case TickMsg:
		if m.running {
			m.t += m.dt
			m.history = append(m.history, m.sol.Concentration(m.t))
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}

	return m, nil
}

func (m *Model) adjustParam(factor float64) {
	p := m.params
	switch m.selected {
	case 0:
		p.FlowRate *= factor
	case 1:
		p.Volume *= factor
	case 2:
		p.InputRate *= factor
	}
	sol, err := lake.Solve(p)
	if err != nil {
		m.err = err
		return
	}
	m.params = p
	m.sol = sol
	m.err = nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("lake mixing: σ(t) = (m/v)(1 − exp(−(v/V)t))"))
	b.WriteString("\n")

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(12),
			asciigraph.Width(70),
			asciigraph.Caption("concentration"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	rows := []struct {
		label string
		value string
		param int
	}{
		{"t", fmt.Sprintf("%.1f", m.t), -1},
		{"σ(t)", fmt.Sprintf("%.6f", m.sol.Concentration(m.t)), -1},
		{"steady state", fmt.Sprintf("%.6f", m.sol.SteadyState()), -1},
		{"saturation", fmt.Sprintf("%.1f%%", 100*m.sol.Concentration(m.t)/nonzero(m.sol.SteadyState())), -1},
		{"flow rate v", fmt.Sprintf("%.4f", m.params.FlowRate), 0},
		{"volume V", fmt.Sprintf("%.4f", m.params.Volume), 1},
		{"input rate m", fmt.Sprintf("%.4f", m.params.InputRate), 2},
		{"turnover v/V", fmt.Sprintf("%.6f", m.sol.TurnoverRate()), -1},
	}

	var stats strings.Builder
	for _, row := range rows {
		style := valueStyle
		if row.param == m.selected {
			style = activeParamStyle
		}
		stats.WriteString(labelStyle.Render(row.label))
		stats.WriteString(style.Render(row.value))
		stats.WriteString("\n")
	}
	if m.err != nil {
		stats.WriteString(activeParamStyle.Render(m.err.Error()))
		stats.WriteString("\n")
	}
	b.WriteString(statsStyle.Render(stats.String()))

	b.WriteString(helpStyle.Render("space pause · r reset · tab select param · ↑/↓ adjust · q quit"))
	b.WriteString("\n")

	return b.String()
}

func nonzero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
