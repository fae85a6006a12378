package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/anukaran/pbreactor/internal/reactor"
	"github.com/anukaran/pbreactor/internal/viz"
)

type model struct {
	label  string
	result *reactor.Result
	varIdx int

	width  int
	height int
}

func newModel(label string, res *reactor.Result) model {
	return model{
		label:  label,
		result: res,
		width:  80,
		height: 24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "right", "l", "tab", "down", "j":
			m.varIdx = (m.varIdx + 1) % len(viz.ProfileVars)
		case "left", "h", "shift+tab", "up", "k":
			m.varIdx = (m.varIdx + len(viz.ProfileVars) - 1) % len(viz.ProfileVars)
		}
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	cw := m.width - 12
	ch := m.height - 10
	if cw < 40 {
		cw = 40
	}
	if ch < 8 {
		ch = 8
	}

	variable := viz.ProfileVars[m.varIdx]
	graph, err := viz.ProfilePlot(m.result, variable, cw, ch)
	if err != nil {
		graph = viz.WarnStyle.Render(err.Error())
	}

	var b strings.Builder

	b.WriteString("\n  " + viz.TitleStyle.Render(m.label))
	b.WriteString(viz.LabelStyle.Render(fmt.Sprintf("   [%d/%d] %s", m.varIdx+1, len(viz.ProfileVars), variable)))
	b.WriteString("\n\n")
	for _, line := range strings.Split(graph, "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n  ")
	b.WriteString(viz.LabelStyle.Render("X=") + viz.ValueStyle.Render(fmt.Sprintf("%.2f%%", m.result.Conversion*100)))
	b.WriteString(viz.LabelStyle.Render("  T_out=") + viz.ValueStyle.Render(fmt.Sprintf("%.1fK", m.result.OutletTemp)))
	b.WriteString(viz.LabelStyle.Render("  dP=") + viz.ValueStyle.Render(fmt.Sprintf("%.3gPa", m.result.PressureDrop)))
	b.WriteString("\n\n  " + viz.KeyHintStyle.Render("←/→ switch variable   q quit") + "\n")

	return b.String()
}

// Run opens an interactive profile browser for a solved run.
func Run(label string, res *reactor.Result) error {
	p := tea.NewProgram(newModel(label, res), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
