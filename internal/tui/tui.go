// Package tui is the interactive terminal front end of the explorer.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mcncl/jsonexplorer/internal/explorer"
	"github.com/mcncl/jsonexplorer/internal/renderer"
)

// headerHeight is the number of rows drawn above the tree.
const headerHeight = 4

type focus int

const (
	focusPath focus = iota
	focusBlock
	focusTree
	focusCount
)

var (
	labelStyle     = lipgloss.NewStyle().Bold(true).Width(7)
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c6d0f5")).
			Background(lipgloss.Color("#414559")).
			Padding(0, 1)
)

// Options configures the model.
type Options struct {
	Styles renderer.Styles
	// IsActivate reports whether a key activates the target under the
	// cursor. Nil means Enter and space.
	IsActivate func(key string) bool
	// InputTTY reads keys from the terminal when stdin carried the document.
	InputTTY bool
}

// Model is the bubbletea model over an explorer.Explorer.
type Model struct {
	explorer *explorer.Explorer
	styles   renderer.Styles
	activate func(key string) bool

	pathInput  textinput.Model
	blockInput textinput.Model
	viewport   viewport.Model

	focus   focus
	lines   []renderer.Line
	targets []renderer.Target
	cursor  int
	ready   bool
	width   int
}

// New creates a model with the path field focused.
func New(e *explorer.Explorer, opts Options) *Model {
	if opts.IsActivate == nil {
		opts.IsActivate = func(key string) bool { return key == "enter" || key == " " }
	}

	pi := textinput.New()
	pi.Placeholder = e.Prefix() + "fields[0].value"
	pi.Prompt = ""
	pi.CharLimit = 500
	pi.SetValue(e.Path())
	pi.Focus()

	bi := textinput.New()
	bi.Placeholder = "block or variable name"
	bi.Prompt = ""
	bi.CharLimit = 500
	bi.SetValue(e.Block())

	lines := e.Tree()
	m := &Model{
		explorer:   e,
		styles:     opts.Styles,
		activate:   opts.IsActivate,
		pathInput:  pi,
		blockInput: bi,
		viewport:   viewport.New(80, 20),
		lines:      lines,
		targets:    renderer.Targets(lines),
	}
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.setFocus((m.focus + 1) % focusCount)
			return m, nil
		case "shift+tab":
			m.setFocus((m.focus + focusCount - 1) % focusCount)
			return m, nil
		}

		switch m.focus {
		case focusPath:
			m.pathInput, cmd = m.pathInput.Update(msg)
			m.explorer.SetPath(m.pathInput.Value())
		case focusBlock:
			m.blockInput, cmd = m.blockInput.Update(msg)
			m.explorer.SetBlock(m.blockInput.Value())
		case focusTree:
			m.handleTreeKey(msg.String())
		}
		m.refresh()
		return m, cmd

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if i, ok := m.targetAt(msg.X, msg.Y); ok {
				m.cursor = i
				m.setFocus(focusTree)
				m.explorer.Activate(m.targets[i])
				m.pathInput.SetValue(m.explorer.Path())
				m.refresh()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-1, 1)
		m.pathInput.Width = max(msg.Width-9, 10)
		m.blockInput.Width = max(msg.Width-9, 10)
		m.ready = true
		m.refresh()
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleTreeKey(key string) {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.targets)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(len(m.targets)-1, 0)
	default:
		if len(m.targets) == 0 {
			return
		}
		if m.activate(key) {
			m.explorer.Activate(m.targets[m.cursor])
			m.pathInput.SetValue(m.explorer.Path())
		}
	}
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.pathInput.Blur()
	m.blockInput.Blur()
	switch f {
	case focusPath:
		m.pathInput.Focus()
	case focusBlock:
		m.blockInput.Focus()
	}
	m.refresh()
}

// targetAt maps a screen cell to the target whose key covers it.
func (m *Model) targetAt(x, y int) (int, bool) {
	row := y - headerHeight + m.viewport.YOffset
	if y < headerHeight || row < 0 || row >= len(m.lines) {
		return 0, false
	}
	for i, t := range m.targets {
		if t.Line == row && x >= t.Column && x < t.Column+lipgloss.Width(t.Key) {
			return i, true
		}
	}
	return 0, false
}

// Selected returns the path of the target under the tree cursor, or "" when
// the tree is not focused.
func (m *Model) Selected() string {
	if m.focus != focusTree || len(m.targets) == 0 {
		return ""
	}
	return m.targets[m.cursor].Path
}

// Path returns the contents of the path field.
func (m *Model) Path() string {
	return m.pathInput.Value()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.styles.Text(m.lines, m.Selected()))

	if m.focus != focusTree || len(m.targets) == 0 {
		return
	}
	line := m.targets[m.cursor].Line
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Path") + m.pathInput.View() + "\n")
	b.WriteString(labelStyle.Render("Block") + m.blockInput.View() + "\n")
	b.WriteString(labelStyle.Render("Value") + m.explorer.Display() + "\n")
	b.WriteString("\n")
	b.WriteString(m.viewport.View() + "\n")

	help := "tab: switch field • ↑/↓: move • enter/space: select • esc: quit"
	if m.ready {
		help = statusBarStyle.Width(m.width).Render(help)
	}
	b.WriteString(help)
	return b.String()
}

// Run starts the program in the alternate screen with mouse support.
func Run(e *explorer.Explorer, opts Options) error {
	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if opts.InputTTY {
		programOpts = append(programOpts, tea.WithInputTTY())
	}
	p := tea.NewProgram(New(e, opts), programOpts...)
	_, err := p.Run()
	return err
}
