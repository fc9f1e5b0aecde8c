//go:build e2e

package e2e

import (
	"testing"

	"github.com/thesyncim/uicontracts/pkg/contract"
	"github.com/thesyncim/uicontracts/pkg/contract/testutil"
)

func TestHelloWorld_RendersGreeting(t *testing.T) {
	page := visit(t, contract.AppHelloWorld)

	testutil.ExpectText(t, page, "body div", "Hello, world!")
}
