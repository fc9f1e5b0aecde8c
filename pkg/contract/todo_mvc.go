package contract

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrNoSuchTodo is returned when a todo index is out of range.
var ErrNoSuchTodo = errors.New("no such todo")

// Todo is a single entry of the todo list.
type Todo struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// TodoList is the view-model of the TodoMVC example. The zero value is an
// empty list.
type TodoList struct {
	items []Todo
}

// Add appends an incomplete todo. The text is trimmed and blank text is
// ignored.
func (l TodoList) Add(text string) TodoList {
	text = strings.TrimSpace(text)
	if text == "" {
		return l
	}
	items := slices.Clone(l.items)
	items = append(items, Todo{Text: text})
	return TodoList{items: items}
}

// Toggle flips the completed flag of the todo at index. No other todo changes.
func (l TodoList) Toggle(index int) (TodoList, error) {
	if index < 0 || index >= len(l.items) {
		return l, fmt.Errorf("%w: index %d of %d", ErrNoSuchTodo, index, len(l.items))
	}
	items := slices.Clone(l.items)
	items[index].Completed = !items[index].Completed
	return TodoList{items: items}, nil
}

// Items returns a copy of the todos in display order.
func (l TodoList) Items() []Todo {
	return slices.Clone(l.items)
}

// Len returns the number of todos.
func (l TodoList) Len() int {
	return len(l.items)
}

// Remaining returns the number of incomplete todos.
func (l TodoList) Remaining() int {
	n := 0
	for _, it := range l.items {
		if !it.Completed {
			n++
		}
	}
	return n
}
