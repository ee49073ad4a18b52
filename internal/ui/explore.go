package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"atomica/internal/atomics"
	"atomica/internal/target"
)

var (
	exploreTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	exploreErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	exploreDirStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	exploreHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type exploreModel struct {
	input textinput.Model
	extra []atomics.Rule
}

// NewExploreModel returns a Bubble Tea model that probes a target
// identifier as it is typed, showing the capability set and the
// directives it would emit. extra rules come from an overrides file.
func NewExploreModel(initial string, extra []atomics.Rule) tea.Model {
	in := textinput.New()
	in.Placeholder = "riscv32imac-unknown-none-elf"
	in.Prompt = "target> "
	in.SetValue(initial)
	in.Focus()
	return &exploreModel{input: in, extra: extra}
}

func (m *exploreModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *exploreModel) View() string {
	var b strings.Builder
	b.WriteString(exploreTitleStyle.Render("atomica explore"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	raw := strings.TrimSpace(m.input.Value())
	switch {
	case raw == "":
		b.WriteString(exploreHintStyle.Render("type a target identifier to probe it"))
		b.WriteString("\n")
	default:
		tr, err := target.Parse(raw)
		if err != nil {
			b.WriteString(exploreErrStyle.Render(err.Error()))
			b.WriteString("\n")
			break
		}
		set := atomics.Probe(tr, m.extra...)
		for _, w := range atomics.Widths() {
			b.WriteString(fmt.Sprintf("  %-4s %s\n", w, Cell(set.Has(w), true)))
		}
		b.WriteString("\n")
		directives := atomics.Directives(set)
		if len(directives) == 0 {
			b.WriteString(exploreHintStyle.Render("  no directives (fully capable)"))
			b.WriteString("\n")
		} else {
			for _, d := range directives {
				b.WriteString("  ")
				b.WriteString(exploreDirStyle.Render(d))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(exploreHintStyle.Render("enter/esc to quit"))
	b.WriteString("\n")
	return b.String()
}
