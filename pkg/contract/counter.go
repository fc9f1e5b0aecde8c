package contract

import "strconv"

// Counter is the view-model of the counter example. The zero value is a
// counter showing 0.
type Counter struct {
	count int
}

// Count returns the displayed value.
func (c Counter) Count() int {
	return c.count
}

// Increment returns a counter one higher than c.
func (c Counter) Increment() Counter {
	return Counter{count: c.count + 1}
}

// String renders the count as it appears in #count.
func (c Counter) String() string {
	return strconv.Itoa(c.count)
}
