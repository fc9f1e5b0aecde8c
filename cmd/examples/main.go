// Command examples hosts the six example pages and the tools around them.
//
// Usage:
//
//	go run ./cmd/examples serve --addr :8080
//	go run ./cmd/examples soak --duration 1h
//	go run ./cmd/examples todo
//
// Open http://localhost:8080 for the index of examples; each one lives at
// /<app>/Example.html.
package main

import (
	"os"

	"github.com/thesyncim/uicontracts/cmd/examples/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
