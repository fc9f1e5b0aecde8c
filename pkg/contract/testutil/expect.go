package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-rod/rod"
)

// WaitTimeout bounds how long an expectation retries before failing.
var WaitTimeout = 5 * time.Second

// WaitFor polls until selector matches an element and predicate, a JS
// function called as predicate(el, ...args), returns true. The selector is
// re-queried on every poll because server patches may replace elements.
func WaitFor(page *rod.Page, selector, predicate string, args ...interface{}) error {
	js := `(sel, ...args) => {
		const el = document.querySelector(sel);
		return el !== null && (` + predicate + `)(el, ...args);
	}`
	params := append([]interface{}{selector}, args...)
	if err := page.Timeout(WaitTimeout).Wait(rod.Eval(js, params...)); err != nil {
		return fmt.Errorf("%s: %s never held: %w", selector, predicate, err)
	}
	return nil
}

// ExpectText asserts the element's textContent equals want.
func ExpectText(t testing.TB, page *rod.Page, selector, want string) {
	t.Helper()
	if err := WaitFor(page, selector, `(el, want) => el.textContent === want`, want); err != nil {
		t.Errorf("%s: text = %q, want %q (%v)", selector, describe(page, selector, "el.textContent"), want, err)
	}
}

// ExpectValue asserts the form control's value equals want.
func ExpectValue(t testing.TB, page *rod.Page, selector, want string) {
	t.Helper()
	if err := WaitFor(page, selector, `(el, want) => el.value === want`, want); err != nil {
		t.Errorf("%s: value = %q, want %q (%v)", selector, describe(page, selector, "el.value"), want, err)
	}
}

// ExpectDisabled asserts the element's disabled state.
func ExpectDisabled(t testing.TB, page *rod.Page, selector string, want bool) {
	t.Helper()
	if err := WaitFor(page, selector, `(el, want) => el.disabled === want`, want); err != nil {
		t.Errorf("%s: disabled = %s, want %v (%v)", selector, describe(page, selector, "el.disabled"), want, err)
	}
}

// ExpectAttr asserts an attribute's exact value.
func ExpectAttr(t testing.TB, page *rod.Page, selector, name, want string) {
	t.Helper()
	if err := WaitFor(page, selector, `(el, name, want) => el.getAttribute(name) === want`, name, want); err != nil {
		t.Errorf("%s: %s = %q, want %q (%v)", selector, name,
			describe(page, selector, fmt.Sprintf("el.getAttribute(%q)", name)), want, err)
	}
}

// ExpectClass asserts whether the element carries class.
func ExpectClass(t testing.TB, page *rod.Page, selector, class string, want bool) {
	t.Helper()
	if err := WaitFor(page, selector, `(el, c, want) => el.classList.contains(c) === want`, class, want); err != nil {
		t.Errorf("%s: class = %q, want contains %q == %v (%v)", selector, describe(page, selector, "el.className"), class, want, err)
	}
}

// ExpectChildCount asserts the number of element children.
func ExpectChildCount(t testing.TB, page *rod.Page, selector string, want int) {
	t.Helper()
	if err := WaitFor(page, selector, `(el, want) => el.children.length === want`, want); err != nil {
		t.Errorf("%s: children = %s, want %d (%v)", selector, describe(page, selector, "el.children.length"), want, err)
	}
}

// describe reads expr for the first element matching selector, for failure
// messages only.
func describe(page *rod.Page, selector, expr string) string {
	res, err := page.Eval(`(sel) => { const el = document.querySelector(sel); return el ? String(`+expr+`) : "<missing>" }`, selector)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return res.Value.Str()
}
