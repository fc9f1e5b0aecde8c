//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/go-rod/rod"

	"github.com/thesyncim/uicontracts/cmd/examples/server"
	"github.com/thesyncim/uicontracts/pkg/contract"
	"github.com/thesyncim/uicontracts/pkg/contract/testutil"
)

var (
	baseURL string
	client  *testutil.BrowserClient
)

func TestMain(m *testing.M) {
	code, err := run(m)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		code = 1
	}

	// Cleanup: Kill any orphaned Chrome processes
	// This is a safety net for test failures/panics where
	// client.Close() didn't run
	cleanupOrphanedBrowsers()

	os.Exit(code)
}

func run(m *testing.M) (int, error) {
	srv, err := server.NewServer(server.DefaultConfig())
	if err != nil {
		return 1, fmt.Errorf("failed to create server: %w", err)
	}
	addr, err := srv.Start()
	if err != nil {
		return 1, fmt.Errorf("failed to start server: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	// The server returns [::]:port format, Chrome wants a host name.
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return 1, fmt.Errorf("bad server address %q: %w", addr, err)
	}
	baseURL = "http://localhost:" + port

	client, err = testutil.NewBrowserClient(testutil.DefaultBrowserConfig())
	if err != nil {
		return 1, fmt.Errorf("failed to create browser: %w", err)
	}
	defer client.Close()

	return m.Run(), nil
}

// visit opens a fresh page for app and closes it when the test ends.
func visit(t *testing.T, app contract.App) *rod.Page {
	t.Helper()

	page, err := client.Visit(baseURL, app)
	if err != nil {
		t.Fatalf("failed to visit %s: %v", app, err)
	}
	t.Cleanup(func() { _ = page.Close() })
	return page
}

// cleanupOrphanedBrowsers attempts to kill Chrome processes that may have
// been left behind by failed tests. This is best-effort cleanup.
//
// In normal operation, client.Close() handles cleanup.
// This function catches edge cases like panics or os.Exit during tests.
func cleanupOrphanedBrowsers() {
	switch runtime.GOOS {
	case "darwin", "linux":
		// pkill returns non-zero if no processes matched, ignore error
		// Target both chromium (Rod downloads) and chrome (system install)
		_ = exec.Command("pkill", "-f", "chromium|chrome").Run()
	case "windows":
		// taskkill returns non-zero if process not found, ignore error
		_ = exec.Command("taskkill", "/F", "/IM", "chrome.exe").Run()
		_ = exec.Command("taskkill", "/F", "/IM", "chromium.exe").Run()
	}
}
