package server

import (
	"fmt"
	"strconv"

	"github.com/flosch/pongo2/v6"

	"github.com/thesyncim/uicontracts/pkg/contract"
)

// widget binds one view-model to the page of its example. It owns the
// view-model for the lifetime of a single session.
type widget interface {
	// template is the page template name.
	template() string
	// context is the data for the initial render.
	context() pongo2.Context
	// handle applies an event and returns the DOM changes it causes.
	handle(ev Event) ([]Patch, error)
}

func newWidget(app contract.App, clock contract.Clock, r *renderer) (widget, error) {
	switch app {
	case contract.AppCounter:
		return &counterWidget{}, nil
	case contract.AppFiles:
		return &filesWidget{}, nil
	case contract.AppFlightBooker:
		return &flightWidget{form: contract.NewFlightForm(clock)}, nil
	case contract.AppHelloWorld:
		return helloWidget{}, nil
	case contract.AppTemperatureConverter:
		return &temperatureWidget{}, nil
	case contract.AppTodoMVC:
		return &todoWidget{renderer: r}, nil
	default:
		return nil, fmt.Errorf("%w: %q", contract.ErrUnknownApp, app)
	}
}

func unknownEvent(ev Event) error {
	return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
}

type counterWidget struct {
	counter contract.Counter
}

func (w *counterWidget) template() string { return "counter.html" }

func (w *counterWidget) context() pongo2.Context {
	return pongo2.Context{"count": w.counter.String()}
}

func (w *counterWidget) handle(ev Event) ([]Patch, error) {
	if ev.Type != "increment" {
		return nil, unknownEvent(ev)
	}
	w.counter = w.counter.Increment()
	return []Patch{setText("#count", w.counter.String())}, nil
}

type filesWidget struct {
	files contract.FileList
}

func (w *filesWidget) template() string { return "files.html" }

func (w *filesWidget) context() pongo2.Context {
	return pongo2.Context{"files": w.files.String()}
}

func (w *filesWidget) handle(ev Event) ([]Patch, error) {
	if ev.Type != "select-files" {
		return nil, unknownEvent(ev)
	}
	w.files = w.files.Select(ev.Files...)
	return []Patch{setText("#file-view", w.files.String())}, nil
}

type flightWidget struct {
	form    contract.FlightForm
	message string
}

func (w *flightWidget) template() string { return "flight_booker.html" }

func (w *flightWidget) context() pongo2.Context {
	types := make([]string, 0, len(contract.FlightTypes()))
	for _, t := range contract.FlightTypes() {
		types = append(types, t.String())
	}
	return pongo2.Context{
		"flight_types":     types,
		"flight_type":      w.form.Type().String(),
		"departure":        w.form.Departure(),
		"arrival":          w.form.Arrival(),
		"departure_style":  w.form.DepartureStyle(),
		"arrival_style":    w.form.ArrivalStyle(),
		"arrival_disabled": !w.form.ArrivalEnabled(),
		"book_disabled":    !w.form.BookEnabled(),
		"message":          w.message,
	}
}

func (w *flightWidget) handle(ev Event) ([]Patch, error) {
	switch ev.Type {
	case "flight-type":
		t, err := contract.ParseFlightType(ev.Value)
		if err != nil {
			return nil, err
		}
		w.form = w.form.SelectType(t)
	case "departure":
		w.form = w.form.SetDeparture(ev.Value)
	case "arrival":
		w.form = w.form.SetArrival(ev.Value)
	case "book":
		b, err := w.form.Book()
		if err != nil {
			return nil, err
		}
		w.message = b.String()
		return []Patch{setText("#booking-message", w.message)}, nil
	default:
		return nil, unknownEvent(ev)
	}

	// Field values are never patched: the user owns the text being typed.
	w.message = ""
	return []Patch{
		{Selector: "#departure", Disabled: ptr(!w.form.DepartureEnabled()), Style: ptr(w.form.DepartureStyle())},
		{Selector: "#arrival", Disabled: ptr(!w.form.ArrivalEnabled()), Style: ptr(w.form.ArrivalStyle())},
		{Selector: "#book", Disabled: ptr(!w.form.BookEnabled())},
		setText("#booking-message", ""),
	}, nil
}

type helloWidget struct{}

func (helloWidget) template() string { return "hello_world.html" }

func (helloWidget) context() pongo2.Context {
	return pongo2.Context{"greeting": contract.HelloWorld{}.Text()}
}

func (helloWidget) handle(ev Event) ([]Patch, error) {
	return nil, unknownEvent(ev)
}

type temperatureWidget struct {
	temp contract.Temperature
}

func (w *temperatureWidget) template() string { return "temperature_converter.html" }

func (w *temperatureWidget) context() pongo2.Context {
	return pongo2.Context{
		"celsius":    w.temp.Celsius(),
		"fahrenheit": w.temp.Fahrenheit(),
	}
}

func (w *temperatureWidget) handle(ev Event) ([]Patch, error) {
	var changed bool
	switch ev.Type {
	case "celsius":
		w.temp, changed = w.temp.EditCelsius(ev.Value)
		if changed {
			return []Patch{setValue("#fahrenheit", w.temp.Fahrenheit())}, nil
		}
	case "fahrenheit":
		w.temp, changed = w.temp.EditFahrenheit(ev.Value)
		if changed {
			return []Patch{setValue("#celsius", w.temp.Celsius())}, nil
		}
	default:
		return nil, unknownEvent(ev)
	}
	return nil, nil
}

type todoWidget struct {
	todos    contract.TodoList
	renderer *renderer
}

func (w *todoWidget) template() string { return "todo_mvc.html" }

func (w *todoWidget) context() pongo2.Context {
	return pongo2.Context{
		"todos":     w.todos.Items(),
		"remaining": remainingText(w.todos.Remaining()),
	}
}

func (w *todoWidget) handle(ev Event) ([]Patch, error) {
	switch ev.Type {
	case "add":
		w.todos = w.todos.Add(ev.Value)
	case "toggle":
		todos, err := w.todos.Toggle(ev.Index)
		if err != nil {
			return nil, err
		}
		w.todos = todos
	default:
		return nil, unknownEvent(ev)
	}

	items, err := w.renderer.renderString("todo_items.html", w.context())
	if err != nil {
		return nil, err
	}
	return []Patch{
		setHTML("ul.todo-list", items),
		setText(".todo-count", remainingText(w.todos.Remaining())),
	}, nil
}

func remainingText(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return strconv.Itoa(n) + " items left"
}
