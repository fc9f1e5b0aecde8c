package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemperature_InitiallyBlank(t *testing.T) {
	var temp Temperature
	assert.Empty(t, temp.Celsius())
	assert.Empty(t, temp.Fahrenheit())
}

func TestTemperature_EditCelsius(t *testing.T) {
	temp, changed := Temperature{}.EditCelsius("20")
	assert.True(t, changed)
	assert.Equal(t, "20", temp.Celsius())
	assert.Equal(t, "68", temp.Fahrenheit())
}

func TestTemperature_EditFahrenheit(t *testing.T) {
	temp, changed := Temperature{}.EditFahrenheit("41")
	assert.True(t, changed)
	assert.Equal(t, "41", temp.Fahrenheit())
	assert.Equal(t, "5", temp.Celsius())
}

func TestTemperature_InvalidInputLeavesOtherField(t *testing.T) {
	temp, _ := Temperature{}.EditCelsius("20")

	temp, changed := temp.EditCelsius("20x")
	assert.False(t, changed)
	assert.Equal(t, "20x", temp.Celsius(), "the edited field keeps what the user typed")
	assert.Equal(t, "68", temp.Fahrenheit())

	for _, text := range []string{"", "-", "NaN", "Inf"} {
		next, changed := temp.EditFahrenheit(text)
		assert.False(t, changed, "input %q", text)
		assert.Equal(t, "20x", next.Celsius())
	}
}

func TestTemperature_Rounding(t *testing.T) {
	tests := []struct {
		name    string
		celsius string
		want    string
	}{
		{"freezing", "0", "32"},
		{"boiling", "100", "212"},
		{"crossover", "-40", "-40"},
		{"half rounds away from zero", "-17.5", "1"},
		{"fraction", "36.6", "98"},
		{"whitespace trimmed", " 20 ", "68"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			temp, changed := Temperature{}.EditCelsius(tt.celsius)
			assert.True(t, changed)
			assert.Equal(t, tt.want, temp.Fahrenheit())
		})
	}
}

func TestTemperature_NegativeZeroNormalized(t *testing.T) {
	// (31.9-32)*5/9 rounds to -0.
	temp, _ := Temperature{}.EditFahrenheit("31.9")
	assert.Equal(t, "0", temp.Celsius())
}

func TestTemperature_IntegralRoundTrip(t *testing.T) {
	for c := -100; c <= 100; c += 5 {
		// Multiples of 5 convert to whole fahrenheit values, so the trip is exact.
		f := CelsiusToFahrenheit(float64(c))
		assert.Equal(t, float64(c), FahrenheitToCelsius(f), "celsius %d", c)
	}

	temp, _ := Temperature{}.EditCelsius("20")
	temp, _ = temp.EditFahrenheit(temp.Fahrenheit())
	assert.Equal(t, "20", temp.Celsius())
}
