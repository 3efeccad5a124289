package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var presetInfo = map[string]string{
	"classic": "twenty drifting spheres",
	"cards":   "camera-facing cards",
	"dense":   "a hundred and twenty points",
	"calm":    "slow drift, auto-rotate",
}

// Picker is a menu for choosing a preset before the live view starts.
type Picker struct {
	presets  []string
	cursor   int
	selected string
	quit     bool
}

// NewPicker returns a picker over the given preset names.
func NewPicker(presets []string) *Picker {
	return &Picker{presets: presets}
}

func (p *Picker) Init() tea.Cmd { return nil }

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		p.quit = true
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.presets)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.presets) > 0 {
			p.selected = p.presets[p.cursor]
		}
		return p, tea.Quit
	}
	return p, nil
}

// Selected returns the chosen preset, or "" when the picker was quit.
func (p *Picker) Selected() string {
	if p.quit {
		return ""
	}
	return p.selected
}

func (p *Picker) View() string {
	var b strings.Builder
	h, sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true), lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	b.WriteString("\n\n    " + h.Render("CONSTELLATION") + "\n    " + sub.Render("pick a preset") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range p.presets {
		desc := presetInfo[name]
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true).Render("▸"), lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true).Render(fmt.Sprintf("%-10s", name)), lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("#555566")).Render(fmt.Sprintf("  %-10s", name)), lipgloss.NewStyle().Foreground(lipgloss.Color("#444455")).Render(desc)))
		}
	}
	key, hint := lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true), lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	b.WriteString("\n    " + key.Render("j/k") + hint.Render(" navigate  ") + key.Render("enter") + hint.Render(" select  ") + key.Render("q") + hint.Render(" quit") + "\n")
	return b.String()
}

// RunPicker shows the picker and returns the chosen preset.
func RunPicker(presets []string) (string, error) {
	p := NewPicker(presets)
	if _, err := tea.NewProgram(p).Run(); err != nil {
		return "", err
	}
	return p.Selected(), nil
}
