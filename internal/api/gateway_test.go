package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"marketfront/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGateway(t *testing.T, baseURL string) (*Gateway, *session.Store) {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "token"))
	gw := NewGateway(Config{BaseURL: baseURL, Timeout: 2 * time.Second}, store, zap.NewNop())
	return gw, store
}

func TestItemsSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "9", r.URL.Query().Get("category_id"))
		assert.Equal(t, "100", r.URL.Query().Get("minPrice"))
		assert.Equal(t, "900", r.URL.Query().Get("maxPrice"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "name": "Lamp", "price": 500, "category": "Home"},
			{"ID": 2, "Name": "Chair", "Price": 750, "Category": "Home"},
		})
	}))
	defer ts.Close()

	gw, _ := newTestGateway(t, ts.URL)

	items, err := gw.Items(context.Background(), ItemFilter{CategoryID: "9", MinPrice: "100", MaxPrice: "900"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Lamp", items[0].Name)
	assert.Equal(t, 750.0, items[1].Price)
}

func TestApplicationErrorMessageExtraction(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"error key", `{"error":"invalid credentials"}`, "invalid credentials"},
		{"message key", `{"message":"not found"}`, "not found"},
		{"error key wins over message", `{"error":"first","message":"second"}`, "first"},
		{"unparsable body", `<html>broken</html>`, FallbackMessage},
		{"empty body", ``, FallbackMessage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			gw, _ := newTestGateway(t, ts.URL)

			_, err := gw.Login(context.Background(), "u", "p")
			apiErr, ok := AsAPIError(err)
			require.True(t, ok, "expected APIError, got %v", err)
			assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
			assert.Equal(t, tc.want, apiErr.Message)
		})
	}
}

func TestNetworkFailureClassification(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // refuse connections

	gw, _ := newTestGateway(t, ts.URL)

	_, err := gw.Items(context.Background(), ItemFilter{})
	assert.True(t, IsNetworkError(err), "expected NetworkError, got %v", err)

	_, ok := AsAPIError(err)
	assert.False(t, ok)
}

func TestAuthHeaderAttachedOnlyWhenRequested(t *testing.T) {
	var authHeader, publicHeader string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cart":
			authHeader = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
		case "/items":
			publicHeader = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode([]any{})
		}
	}))
	defer ts.Close()

	gw, store := newTestGateway(t, ts.URL)
	require.NoError(t, store.Set("tok-123"))

	_, err := gw.Cart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", authHeader)

	_, err = gw.Items(context.Background(), ItemFilter{})
	require.NoError(t, err)
	assert.Empty(t, publicHeader)
}

func TestMalformedSuccessBodyTreatedAsEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{{{not json`))
	}))
	defer ts.Close()

	gw, store := newTestGateway(t, ts.URL)
	require.NoError(t, store.Set("tok"))

	items, err := gw.Items(context.Background(), ItemFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)

	cart, err := gw.Cart(context.Background())
	require.NoError(t, err)
	assert.True(t, cart.Empty())
}

func TestCartAcceptsBareArrayResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"item_id": 1, "name": "Lamp", "qty": 2, "price": 500},
		})
	}))
	defer ts.Close()

	gw, store := newTestGateway(t, ts.URL)
	require.NoError(t, store.Set("tok"))

	cart, err := gw.Cart(context.Background())
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 1000.0, cart.Total())
}

func TestLoginSuccessReturnsToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		json.NewEncoder(w).Encode(map[string]string{"token": "jwt-abc"})
	}))
	defer ts.Close()

	gw, _ := newTestGateway(t, ts.URL)

	token, err := gw.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", token)
}

func TestLoginWithoutTokenInBodyFails(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer ts.Close()

	gw, _ := newTestGateway(t, ts.URL)

	_, err := gw.Login(context.Background(), "alice", "secret")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "login failed", apiErr.Message)
}

func TestAddToCartBody(t *testing.T) {
	var got map[string]int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"qty": got["qty"]})
	}))
	defer ts.Close()

	gw, store := newTestGateway(t, ts.URL)
	require.NoError(t, store.Set("tok"))

	require.NoError(t, gw.AddToCart(context.Background(), 42, 3))
	assert.Equal(t, map[string]int{"item_id": 42, "qty": 3}, got)
}
