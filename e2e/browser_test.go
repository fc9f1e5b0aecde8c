//go:build e2e

package e2e

import (
	"strings"
	"testing"
)

// TestChrome_CanConnect verifies the E2E infrastructure itself: the shared
// server is reachable, the index lists every example and the browser runs
// the page runtime. It validates plumbing, not example behavior.
func TestChrome_CanConnect(t *testing.T) {
	t.Logf("Navigating to %s", baseURL)

	page, err := client.Navigate(baseURL + "/")
	if err != nil {
		t.Fatalf("failed to navigate: %v", err)
	}
	defer page.Close()

	if err := client.WaitStable(); err != nil {
		t.Fatalf("page not stable: %v", err)
	}

	title := page.MustElement("title").MustText()
	if !strings.Contains(title, "Examples") {
		t.Errorf("unexpected page title: got %q, want contains 'Examples'", title)
	}

	links := page.MustElements("li a")
	if len(links) != 6 {
		t.Errorf("index lists %d examples, want 6", len(links))
	}

	wsResult, err := page.Eval(`() => typeof WebSocket !== 'undefined'`)
	if err != nil {
		t.Fatalf("failed to check WebSocket: %v", err)
	}
	if !wsResult.Value.Bool() {
		t.Error("WebSocket not available in browser")
	}
}
