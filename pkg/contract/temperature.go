package contract

import (
	"math"
	"strconv"
	"strings"
)

// Temperature is the view-model of the temperature converter: two linked
// text fields. Both start blank and nothing is computed until the first edit.
//
// Conversions round half away from zero (math.Round) in both directions, so
// integral round trips such as 20°C <-> 68°F are exact.
type Temperature struct {
	celsius    string
	fahrenheit string
}

// Celsius returns the celsius field text.
func (t Temperature) Celsius() string {
	return t.celsius
}

// Fahrenheit returns the fahrenheit field text.
func (t Temperature) Fahrenheit() string {
	return t.fahrenheit
}

// EditCelsius records a user edit of the celsius field. When the text is a
// number the fahrenheit field is recomputed and the second result is true.
// Otherwise fahrenheit keeps its previous text. The celsius text is never
// rewritten, so the field being typed into is left alone.
func (t Temperature) EditCelsius(text string) (Temperature, bool) {
	t.celsius = text
	c, ok := parseTemperature(text)
	if !ok {
		return t, false
	}
	t.fahrenheit = formatTemperature(CelsiusToFahrenheit(c))
	return t, true
}

// EditFahrenheit is the mirror image of EditCelsius.
func (t Temperature) EditFahrenheit(text string) (Temperature, bool) {
	t.fahrenheit = text
	f, ok := parseTemperature(text)
	if !ok {
		return t, false
	}
	t.celsius = formatTemperature(FahrenheitToCelsius(f))
	return t, true
}

// CelsiusToFahrenheit returns round(c*9/5 + 32).
func CelsiusToFahrenheit(c float64) float64 {
	return math.Round(c*9/5 + 32)
}

// FahrenheitToCelsius returns round((f-32)*5/9).
func FahrenheitToCelsius(f float64) float64 {
	return math.Round((f - 32) * 5 / 9)
}

func parseTemperature(text string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func formatTemperature(v float64) string {
	if v == 0 {
		v = 0 // normalize -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
