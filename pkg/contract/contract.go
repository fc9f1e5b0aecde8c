// Package contract implements the behavioral contracts of the tutorial GUI
// examples as explicitly-owned view-models.
//
// Every view-model is a value type. Transitions take the current value and an
// input and return a new value; the receiver is never mutated. Rendering is not
// this package's concern: callers read the derived state and decide how to put
// it on screen (a DOM patch, a terminal line, a test assertion).
package contract

import (
	"errors"
	"fmt"
	"time"
)

// App names one of the example applications. The value doubles as the
// directory the example page is served from, e.g. "counter/Example.html".
type App string

const (
	AppCounter              App = "counter"
	AppFiles                App = "files"
	AppFlightBooker         App = "flight_booker"
	AppHelloWorld           App = "hello_world"
	AppTemperatureConverter App = "temperature_converter"
	AppTodoMVC              App = "todo_mvc"
)

// ErrUnknownApp is returned by ParseApp for names outside the example set.
var ErrUnknownApp = errors.New("unknown app")

// Apps returns all example applications in a stable order.
func Apps() []App {
	return []App{
		AppCounter,
		AppFiles,
		AppFlightBooker,
		AppHelloWorld,
		AppTemperatureConverter,
		AppTodoMVC,
	}
}

// ParseApp maps a directory name back to its App.
func ParseApp(name string) (App, error) {
	for _, a := range Apps() {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownApp, name)
}

// Title returns the human readable name of the application.
func (a App) Title() string {
	switch a {
	case AppCounter:
		return "Counter"
	case AppFiles:
		return "Files"
	case AppFlightBooker:
		return "Flight Booker"
	case AppHelloWorld:
		return "Hello world"
	case AppTemperatureConverter:
		return "Temperature Converter"
	case AppTodoMVC:
		return "Todo MVC"
	default:
		return "Unknown"
	}
}

// Clock is the time source used for date defaults.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}
