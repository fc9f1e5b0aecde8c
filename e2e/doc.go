//go:build e2e

// Package e2e provides end-to-end browser specifications for the example pages.
//
// These tests are isolated from the standard test suite via build tags.
// They require a Chrome browser (auto-downloaded by Rod if not present)
// and are intended for CI pipelines or explicit local testing.
//
// Running E2E tests:
//
//	go test -tags=e2e ./e2e/...
//
// Running all tests except E2E:
//
//	go test ./...
//
// E2E tests use:
//   - Rod for browser automation (Chrome DevTools Protocol)
//   - the examples server for the pages and their websocket sessions
//   - BrowserClient and the Expect helpers from pkg/contract/testutil
//
// Test isolation:
// One server and one browser are shared by the package. Every test visits
// its page in a new tab, which opens a new session with a fresh view-model.
package e2e
