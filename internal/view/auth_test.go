package view

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"marketfront/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginEmptyFieldsNeverReachTheNetwork(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	t.Cleanup(server.Close)

	// Empty username and password, then decline the retry
	f := newFixture(t, server.URL, "\n\nn\n")
	login := NewLoginController(f.gw, f.store, f.ui, f.navbar, f.logger)
	login.RedirectDelay = 0

	page := login.Show(context.Background())

	assert.Equal(t, PageHome, page)
	assert.Contains(t, f.rendered(), "Provide username and password")
	assert.Zero(t, calls.Load())
}

func TestLoginFailureShowsServerMessageAndKeepsAnonymous(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Invalid credentials"}`))
	}))
	t.Cleanup(server.Close)

	f := newFixture(t, server.URL, "alice\nwrong\nn\n")
	login := NewLoginController(f.gw, f.store, f.ui, f.navbar, f.logger)
	login.RedirectDelay = 0

	page := login.Show(context.Background())

	assert.Equal(t, PageHome, page)
	assert.Contains(t, f.rendered(), "Invalid credentials")
	assert.Equal(t, session.StateAnonymous, f.store.State())
}

func TestLoginSuccessPersistsTokenAndRedirectsHome(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token": "issued-token"}`))
	}))
	t.Cleanup(server.Close)

	f := newFixture(t, server.URL, "alice\nsecret\n")
	login := NewLoginController(f.gw, f.store, f.ui, f.navbar, f.logger)
	login.RedirectDelay = 0

	page := login.Show(context.Background())

	assert.Equal(t, PageHome, page)
	assert.Contains(t, f.rendered(), "Login successful")
	require.Equal(t, session.StateAuthenticated, f.store.State())
	assert.Equal(t, "issued-token", f.store.Get())
}

func TestSignupSuccessHandsOverToLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message": "User created successfully"}`))
	}))
	t.Cleanup(server.Close)

	f := newFixture(t, server.URL, "alice\nsecret\n")
	signup := NewSignupController(f.gw, f.ui, f.navbar, f.logger)
	signup.RedirectDelay = 0

	page := signup.Show(context.Background())

	assert.Equal(t, PageLogin, page)
	assert.Contains(t, f.rendered(), "Account created. Please login.")
	// Signup never authenticates
	assert.Equal(t, session.StateAnonymous, f.store.State())
}

func TestSignupConflictShowsServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error": "Username already exists"}`))
	}))
	t.Cleanup(server.Close)

	f := newFixture(t, server.URL, "alice\nsecret\nn\n")
	signup := NewSignupController(f.gw, f.ui, f.navbar, f.logger)
	signup.RedirectDelay = 0

	page := signup.Show(context.Background())

	assert.Equal(t, PageHome, page)
	assert.Contains(t, f.rendered(), "Username already exists")
}
