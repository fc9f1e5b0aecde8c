// Package tui renders the todo list view-model in a terminal with Bubble Tea.
//
// The model owns a contract.TodoList exactly like a browser session does; the
// keyboard stands in for the DOM events.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thesyncim/uicontracts/pkg/contract"
)

type keyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Up     key.Binding
	Down   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Up, k.Down, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Add:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
	Toggle: key.NewBinding(key.WithKeys("ctrl+t", "tab"), key.WithHelp("tab", "toggle")),
	Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
	Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
	Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
}

// Model is the Bubble Tea model of the terminal todo list.
type Model struct {
	todos  contract.TodoList
	input  textinput.Model
	help   help.Model
	cursor int
}

// New returns a model with an empty list and a focused input.
func New() Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 200
	ti.Focus()

	return Model{
		input: ti,
		help:  help.New(),
	}
}

// Todos returns the current list.
func (m Model) Todos() contract.TodoList {
	return m.todos
}

// Cursor returns the index of the selected todo.
func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Add):
			before := m.todos.Len()
			m.todos = m.todos.Add(m.input.Value())
			m.input.SetValue("")
			if m.todos.Len() > before {
				m.cursor = m.todos.Len() - 1
			}
			return m, nil
		case key.Matches(msg, keys.Toggle):
			if next, err := m.todos.Toggle(m.cursor); err == nil {
				m.todos = next
			}
			return m, nil
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, keys.Down):
			if m.cursor < m.todos.Len()-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s   %s\n\n", titleStyle.Render("todos"), mutedStyle.Render(itemsLeft(m.todos.Remaining())))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	for i, todo := range m.todos.Items() {
		prefix := "  "
		if i == m.cursor {
			prefix = selectedStyle.Render("> ")
		}
		box, text := mutedStyle.Render(boxUnchecked), todo.Text
		if todo.Completed {
			box, text = successStyle.Render(boxChecked), doneStyle.Render(todo.Text)
		}
		fmt.Fprintf(&b, "%s%s %s\n", prefix, box, text)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(keys)))
	return panelStyle.Render(b.String())
}

func itemsLeft(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", n)
}

// Run starts the interactive program on in/out and returns the final list.
func Run(in io.Reader, out io.Writer) (contract.TodoList, error) {
	p := tea.NewProgram(New(), tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return contract.TodoList{}, fmt.Errorf("run todo program: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return contract.TodoList{}, nil
	}
	return m.todos, nil
}
