package view

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"marketfront/internal/api"
	"marketfront/internal/session"

	"go.uber.org/zap"
)

// fixture wires a page controller stack against a scripted terminal:
// input is the newline-separated keystrokes, out captures everything
// the page rendered.
type fixture struct {
	out    *bytes.Buffer
	ui     *UI
	store  *session.Store
	gw     *api.Gateway
	navbar *Navbar
	prices *PriceFormatter
	logger *zap.Logger
}

func newFixture(t *testing.T, baseURL, input string) *fixture {
	t.Helper()

	out := &bytes.Buffer{}
	ui := NewUI(strings.NewReader(input), out)
	store := session.NewStore(filepath.Join(t.TempDir(), "token"))
	logger := zap.NewNop()
	gw := api.NewGateway(api.Config{BaseURL: baseURL}, store, logger)

	return &fixture{
		out:    out,
		ui:     ui,
		store:  store,
		gw:     gw,
		navbar: NewNavbar(store, ui, logger),
		prices: NewPriceFormatter("en-IN"),
		logger: logger,
	}
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	if err := f.store.Set("test-token"); err != nil {
		t.Fatalf("failed to store credential: %v", err)
	}
}

func (f *fixture) rendered() string {
	return f.out.String()
}
