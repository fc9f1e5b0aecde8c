package contract

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the dd.mm.yyyy format both date fields are parsed with.
const DateLayout = "02.01.2006"

// InvalidDateStyle is the inline style a field carries while its text does
// not parse as a date.
const InvalidDateStyle = "background-color: red;"

// ErrBookingDisabled is returned by Book while the form does not allow a booking.
var ErrBookingDisabled = errors.New("booking disabled")

// FlightType selects between a one-way and a return flight.
type FlightType int

const (
	// OneWay disables the arrival field. It is the initial selection.
	OneWay FlightType = iota
	// Return enables the arrival field and requires arrival >= departure.
	Return
)

// String returns the option text shown in select#flight-type.
func (f FlightType) String() string {
	switch f {
	case OneWay:
		return "One-way flight"
	case Return:
		return "Return flight"
	default:
		return "Unknown"
	}
}

// FlightTypes returns the options in display order.
func FlightTypes() []FlightType {
	return []FlightType{OneWay, Return}
}

// ParseFlightType maps option text back to a FlightType.
func ParseFlightType(s string) (FlightType, error) {
	for _, f := range FlightTypes() {
		if f.String() == s {
			return f, nil
		}
	}
	return OneWay, fmt.Errorf("unknown flight type %q", s)
}

// FlightForm is the view-model of the flight booker example.
//
// The form keeps the raw text of both date fields; validity and enablement
// are derived on every read so the invalid-date flag and the disabled state
// can never drift apart.
//
//	Type    | arrival field | book enabled
//	--------+---------------+---------------------------------------------
//	OneWay  | disabled      | departure valid
//	Return  | enabled       | both valid and arrival >= departure
type FlightForm struct {
	flightType FlightType
	departure  string
	arrival    string
}

// NewFlightForm returns a one-way form with both dates set to today.
func NewFlightForm(clock Clock) FlightForm {
	if clock == nil {
		clock = SystemClock{}
	}
	today := clock.Now().Format(DateLayout)
	return FlightForm{
		flightType: OneWay,
		departure:  today,
		arrival:    today,
	}
}

// SelectType switches the flight type. The arrival text is kept so switching
// back to a return flight restores it.
func (f FlightForm) SelectType(t FlightType) FlightForm {
	f.flightType = t
	return f
}

// SetDeparture replaces the departure text.
func (f FlightForm) SetDeparture(text string) FlightForm {
	f.departure = text
	return f
}

// SetArrival replaces the arrival text.
func (f FlightForm) SetArrival(text string) FlightForm {
	f.arrival = text
	return f
}

// Type returns the selected flight type.
func (f FlightForm) Type() FlightType {
	return f.flightType
}

// Departure returns the departure text as entered.
func (f FlightForm) Departure() string {
	return f.departure
}

// Arrival returns the arrival text as entered.
func (f FlightForm) Arrival() string {
	return f.arrival
}

// DepartureValid reports whether the departure text is a calendar date.
func (f FlightForm) DepartureValid() bool {
	_, err := ParseDate(f.departure)
	return err == nil
}

// ArrivalValid reports whether the arrival text is a calendar date.
func (f FlightForm) ArrivalValid() bool {
	_, err := ParseDate(f.arrival)
	return err == nil
}

// DepartureEnabled is always true; only the arrival field is gated.
func (f FlightForm) DepartureEnabled() bool {
	return true
}

// ArrivalEnabled reports whether the arrival field accepts input.
func (f FlightForm) ArrivalEnabled() bool {
	return f.flightType == Return
}

// DepartureStyle returns the inline style for the departure field.
func (f FlightForm) DepartureStyle() string {
	if f.DepartureValid() {
		return ""
	}
	return InvalidDateStyle
}

// ArrivalStyle returns the inline style for the arrival field. A disabled
// arrival field is never flagged.
func (f FlightForm) ArrivalStyle() string {
	if !f.ArrivalEnabled() || f.ArrivalValid() {
		return ""
	}
	return InvalidDateStyle
}

// BookEnabled reports whether the form may be submitted.
func (f FlightForm) BookEnabled() bool {
	dep, err := ParseDate(f.departure)
	if err != nil {
		return false
	}
	if f.flightType == OneWay {
		return true
	}
	arr, err := ParseDate(f.arrival)
	if err != nil {
		return false
	}
	return !arr.Before(dep)
}

// Booking is a confirmed flight booking.
type Booking struct {
	Type      FlightType
	Departure time.Time
	Arrival   time.Time // zero for one-way flights
}

// String returns the confirmation message.
func (b Booking) String() string {
	if b.Type == Return {
		return fmt.Sprintf("You have booked a return flight from %s to %s.",
			b.Departure.Format(DateLayout), b.Arrival.Format(DateLayout))
	}
	return fmt.Sprintf("You have booked a one-way flight on %s.", b.Departure.Format(DateLayout))
}

// Book confirms the booking, or returns ErrBookingDisabled.
func (f FlightForm) Book() (Booking, error) {
	if !f.BookEnabled() {
		return Booking{}, ErrBookingDisabled
	}
	dep, _ := ParseDate(f.departure)
	b := Booking{Type: f.flightType, Departure: dep}
	if f.flightType == Return {
		b.Arrival, _ = ParseDate(f.arrival)
	}
	return b, nil
}

// ParseDate parses text in DateLayout. Day and month must be two digits and
// the day must exist in the given month.
func ParseDate(text string) (time.Time, error) {
	t, err := time.Parse(DateLayout, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", text, err)
	}
	return t, nil
}
