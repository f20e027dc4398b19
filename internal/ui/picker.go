package ui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const pickerVisible = 10

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// picker is a minimal single-choice list used when fzf is unavailable.
type picker struct {
	prompt    string
	items     []string
	cursor    int
	offset    int
	chosen    int
	cancelled bool
}

func newPicker(prompt string, items []string) picker {
	return picker{prompt: prompt, items: items, chosen: -1}
}

func (p picker) Init() tea.Cmd { return nil }

func (p picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key.String() {
	case "ctrl+c", "esc", "q":
		p.cancelled = true
		return p, tea.Quit
	case "enter":
		p.chosen = p.cursor
		return p, tea.Quit
	case "up", "k", "ctrl+p":
		if p.cursor > 0 {
			p.cursor--
		} else {
			p.cursor = len(p.items) - 1
		}
	case "down", "j", "ctrl+n":
		if p.cursor < len(p.items)-1 {
			p.cursor++
		} else {
			p.cursor = 0
		}
	}

	// Keep the cursor inside the visible window.
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+pickerVisible {
		p.offset = p.cursor - pickerVisible + 1
	}

	return p, nil
}

func (p picker) View() string {
	var b strings.Builder
	b.WriteString(promptStyle.Render(p.prompt+" >") + "\n")

	end := min(p.offset+pickerVisible, len(p.items))
	for i := p.offset; i < end; i++ {
		if i == p.cursor {
			b.WriteString(cursorStyle.Render("> "+p.items[i]) + "\n")
		} else {
			b.WriteString("  " + p.items[i] + "\n")
		}
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d  enter select, esc cancel", p.cursor+1, len(p.items))))
	return b.String()
}

// pick runs the built-in picker on the terminal.
func pick(prompt string, items []string) (int, error) {
	prog := tea.NewProgram(newPicker(prompt, items), tea.WithOutput(os.Stderr))
	final, err := prog.Run()
	if err != nil {
		return -1, fmt.Errorf("running picker: %w", err)
	}

	p := final.(picker)
	if p.cancelled || p.chosen < 0 {
		return -1, ErrCancelled
	}
	return p.chosen, nil
}
