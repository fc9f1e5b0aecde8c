package soak

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/thesyncim/uicontracts/pkg/contract"
)

// checker owns one view-model plus the shadow state its oracle needs.
type checker interface {
	app() contract.App
	step(rng *rand.Rand) error
	reset()
}

func newCheckers() []checker {
	cs := []checker{
		&counterChecker{},
		&filesChecker{},
		&flightChecker{},
		&helloChecker{},
		&temperatureChecker{},
		&todoChecker{},
	}
	for _, c := range cs {
		c.reset()
	}
	return cs
}

type counterChecker struct {
	counter contract.Counter
	clicks  int
}

func (c *counterChecker) app() contract.App { return contract.AppCounter }

func (c *counterChecker) reset() { *c = counterChecker{} }

func (c *counterChecker) step(*rand.Rand) error {
	prev := c.counter.Count()
	c.counter = c.counter.Increment()
	c.clicks++
	if got := c.counter.Count(); got != prev+1 || got != c.clicks {
		return fmt.Errorf("count %d after %d clicks", got, c.clicks)
	}
	return nil
}

type filesChecker struct {
	files contract.FileList
	names []string
}

func (c *filesChecker) app() contract.App { return contract.AppFiles }

func (c *filesChecker) reset() { *c = filesChecker{} }

func (c *filesChecker) step(rng *rand.Rand) error {
	if len(c.names) > 200 {
		c.reset()
	}
	n := rng.IntN(4)
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("file%03d.json", rng.IntN(1000))
		switch rng.IntN(3) {
		case 0:
			paths = append(paths, name)
		case 1:
			paths = append(paths, "testdata/files/"+name)
		default:
			paths = append(paths, `C:\fakepath\`+name)
		}
		c.names = append(c.names, name)
	}
	c.files = c.files.Select(paths...)

	want := "[]"
	if len(c.names) > 0 {
		want = "[<" + strings.Join(c.names, ">, <") + ">]"
	}
	if got := c.files.String(); got != want {
		return fmt.Errorf("rendered %q, want %q", got, want)
	}
	return nil
}

// dateField is the shadow of one flight booker date input.
type dateField struct {
	text  string
	valid bool
	at    time.Time
}

var invalidDates = []string{"not a date", "", "32.01.2022", "29.02.2023", "1.1.2022", "2022-06-22", "22.06.22"}

func randomDate(rng *rand.Rand) dateField {
	if rng.IntN(4) == 0 {
		return dateField{text: invalidDates[rng.IntN(len(invalidDates))]}
	}
	at := time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, rng.IntN(60))
	return dateField{text: at.Format(contract.DateLayout), valid: true, at: at}
}

type flightChecker struct {
	form      contract.FlightForm
	typ       contract.FlightType
	departure dateField
	arrival   dateField
}

func (c *flightChecker) app() contract.App { return contract.AppFlightBooker }

func (c *flightChecker) reset() {
	today := time.Date(2022, time.June, 22, 0, 0, 0, 0, time.UTC)
	c.form = contract.NewFlightForm(contract.ClockFunc(func() time.Time { return today }))
	c.typ = contract.OneWay
	c.departure = dateField{text: "22.06.2022", valid: true, at: today}
	c.arrival = c.departure
}

func (c *flightChecker) step(rng *rand.Rand) error {
	switch rng.IntN(3) {
	case 0:
		c.typ = contract.FlightTypes()[rng.IntN(2)]
		c.form = c.form.SelectType(c.typ)
	case 1:
		c.departure = randomDate(rng)
		c.form = c.form.SetDeparture(c.departure.text)
	default:
		c.arrival = randomDate(rng)
		c.form = c.form.SetArrival(c.arrival.text)
	}

	isReturn := c.typ == contract.Return
	wantBook := c.departure.valid &&
		(!isReturn || (c.arrival.valid && !c.arrival.at.Before(c.departure.at)))

	if got := c.form.BookEnabled(); got != wantBook {
		return fmt.Errorf("book enabled %v, want %v (%s %q -> %q)",
			got, wantBook, c.typ, c.departure.text, c.arrival.text)
	}
	booking, err := c.form.Book()
	if wantBook {
		if err != nil || !booking.Departure.Equal(c.departure.at) {
			return fmt.Errorf("book: %v, departure %v want %v", err, booking.Departure, c.departure.at)
		}
	} else if !errors.Is(err, contract.ErrBookingDisabled) {
		return fmt.Errorf("book on disabled form: %v", err)
	}
	if got := c.form.ArrivalEnabled(); got != isReturn {
		return fmt.Errorf("arrival enabled %v for %s", got, c.typ)
	}
	if !c.form.DepartureEnabled() {
		return fmt.Errorf("departure disabled")
	}
	if flagged := c.form.DepartureStyle() != ""; flagged == c.departure.valid {
		return fmt.Errorf("departure %q flagged=%v", c.departure.text, flagged)
	}
	if flagged := c.form.ArrivalStyle() != ""; flagged != (isReturn && !c.arrival.valid) {
		return fmt.Errorf("arrival %q flagged=%v for %s", c.arrival.text, flagged, c.typ)
	}
	return nil
}

type helloChecker struct{}

func (helloChecker) app() contract.App { return contract.AppHelloWorld }

func (helloChecker) reset() {}

func (helloChecker) step(*rand.Rand) error {
	if got := (contract.HelloWorld{}).Text(); got != "Hello, world!" {
		return fmt.Errorf("greeting %q", got)
	}
	return nil
}

type temperatureChecker struct {
	temp contract.Temperature
}

func (c *temperatureChecker) app() contract.App { return contract.AppTemperatureConverter }

func (c *temperatureChecker) reset() { c.temp = contract.Temperature{} }

func (c *temperatureChecker) step(rng *rand.Rand) error {
	v := rng.IntN(601) - 300

	if rng.IntN(2) == 0 {
		before := c.temp.Fahrenheit()
		if rng.IntN(5) == 0 {
			c.temp, _ = c.temp.EditCelsius(strconv.Itoa(v) + "x")
			if c.temp.Fahrenheit() != before {
				return fmt.Errorf("invalid celsius changed fahrenheit %q -> %q", before, c.temp.Fahrenheit())
			}
			return nil
		}
		c.temp, _ = c.temp.EditCelsius(strconv.Itoa(v))
		// f = (9c + 160) / 5
		if want := strconv.Itoa(divRound(9*v+160, 5)); c.temp.Fahrenheit() != want {
			return fmt.Errorf("%d°C -> %s°F, want %s", v, c.temp.Fahrenheit(), want)
		}
		if v%5 == 0 {
			back, _ := c.temp.EditFahrenheit(c.temp.Fahrenheit())
			if back.Celsius() != strconv.Itoa(v) {
				return fmt.Errorf("round trip %d°C came back as %s", v, back.Celsius())
			}
		}
		return nil
	}

	c.temp, _ = c.temp.EditFahrenheit(strconv.Itoa(v))
	// c = 5(f - 32) / 9
	if want := strconv.Itoa(divRound(5*(v-32), 9)); c.temp.Celsius() != want {
		return fmt.Errorf("%d°F -> %s°C, want %s", v, c.temp.Celsius(), want)
	}
	return nil
}

// divRound divides num by den (den > 0) rounding half away from zero.
func divRound(num, den int) int {
	q, r := num/den, num%den
	if 2*r >= den {
		q++
	} else if -2*r >= den {
		q--
	}
	return q
}

type todoChecker struct {
	todos  contract.TodoList
	shadow []contract.Todo
}

func (c *todoChecker) app() contract.App { return contract.AppTodoMVC }

func (c *todoChecker) reset() { *c = todoChecker{} }

func (c *todoChecker) step(rng *rand.Rand) error {
	if len(c.shadow) > 100 {
		c.reset()
	}

	switch {
	case len(c.shadow) == 0 || rng.IntN(3) == 0:
		text := fmt.Sprintf("task %d", rng.IntN(10000))
		if rng.IntN(10) == 0 {
			text = "   "
		} else {
			c.shadow = append(c.shadow, contract.Todo{Text: text})
		}
		c.todos = c.todos.Add(text)
	default:
		idx := rng.IntN(len(c.shadow) + 1) // one past the end exercises the error path
		next, err := c.todos.Toggle(idx)
		if idx == len(c.shadow) {
			if err == nil {
				return fmt.Errorf("toggle(%d) on %d todos succeeded", idx, len(c.shadow))
			}
		} else {
			if err != nil {
				return fmt.Errorf("toggle(%d): %w", idx, err)
			}
			c.shadow[idx].Completed = !c.shadow[idx].Completed
		}
		c.todos = next
	}

	if got := c.todos.Items(); !slices.Equal(got, c.shadow) {
		return fmt.Errorf("items %v, want %v", got, c.shadow)
	}
	return nil
}
