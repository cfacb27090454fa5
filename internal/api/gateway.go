// Package api issues requests against the remote marketplace and
// classifies every outcome as a value: a decoded payload, an
// *APIError, or a *NetworkError. Nothing panics past this boundary
// and no call is ever retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"marketfront/internal/domain"
	"marketfront/internal/normalize"
	"marketfront/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config holds gateway settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Gateway is the single HTTP surface towards the marketplace API.
// Credentials come from the injected session store; the gateway never
// stores one itself.
type Gateway struct {
	baseURL string
	client  *http.Client
	session *session.Store
	logger  *zap.Logger
}

// NewGateway creates a gateway for the configured origin.
func NewGateway(cfg Config, store *session.Store, logger *zap.Logger) *Gateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Gateway{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		session: store,
		logger:  logger,
	}
}

type call struct {
	method string
	path   string
	query  url.Values
	body   any
	auth   bool
}

// do performs one fire-once request and returns the raw success
// payload. A non-2xx status comes back as *APIError, a transport
// failure as *NetworkError.
func (g *Gateway) do(ctx context.Context, c call) (json.RawMessage, error) {
	target := g.baseURL + c.path
	if len(c.query) > 0 {
		target += "?" + c.query.Encode()
	}

	var reqBody io.Reader
	if c.body != nil {
		encoded, err := json.Marshal(c.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	if c.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.auth {
		for k, v := range g.session.AuthHeaders() {
			req.Header.Set(k, v)
		}
	}

	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("Request failed in transport",
			zap.String("request_id", requestID),
			zap.String("method", c.method),
			zap.String("path", c.path),
			zap.Error(err),
		)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		body = nil
	}

	g.logger.Debug("Request completed",
		zap.String("request_id", requestID),
		zap.String("method", c.method),
		zap.String("path", c.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: messageFromBody(body),
		}
	}

	return body, nil
}

// decode unmarshals a success payload into v. A malformed or empty
// body is treated as empty data, never as a failure that aborts
// rendering.
func (g *Gateway) decode(body json.RawMessage, v any) {
	if len(body) == 0 {
		return
	}
	if err := json.Unmarshal(body, v); err != nil {
		g.logger.Warn("Malformed success payload treated as empty", zap.Error(err))
	}
}

// ItemFilter narrows the item listing. Fields hold the user's raw
// input and are forwarded verbatim; empty fields are omitted.
type ItemFilter struct {
	CategoryID string
	MinPrice   string
	MaxPrice   string
}

func (f ItemFilter) values() url.Values {
	q := url.Values{}
	if f.CategoryID != "" {
		q.Set("category_id", f.CategoryID)
	}
	if f.MinPrice != "" {
		q.Set("minPrice", f.MinPrice)
	}
	if f.MaxPrice != "" {
		q.Set("maxPrice", f.MaxPrice)
	}
	return q
}

// ItemDraft is the seller-provided item payload for create and update.
// Category travels by name on this endpoint only.
type ItemDraft struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	ImageURL     string  `json:"image_url"`
	CategoryName string  `json:"category_name"`
}

// Categories lists all categories.
func (g *Gateway) Categories(ctx context.Context) ([]domain.Category, error) {
	body, err := g.do(ctx, call{method: http.MethodGet, path: "/categories"})
	if err != nil {
		return nil, err
	}

	var recs []any
	g.decode(body, &recs)
	cats, skipped := normalize.Categories(recs)
	if skipped > 0 {
		g.logger.Warn("Dropped category records without identifier", zap.Int("count", skipped))
	}
	return cats, nil
}

// Items lists catalog items matching the filter.
func (g *Gateway) Items(ctx context.Context, f ItemFilter) ([]domain.Item, error) {
	body, err := g.do(ctx, call{method: http.MethodGet, path: "/items", query: f.values()})
	if err != nil {
		return nil, err
	}

	var recs []any
	g.decode(body, &recs)
	items, skipped := normalize.Items(recs)
	if skipped > 0 {
		g.logger.Warn("Dropped item records without identifier", zap.Int("count", skipped))
	}
	return items, nil
}

// SellerItems lists the authenticated seller's own items. Same path as
// Items, but the credential scopes the result server-side.
func (g *Gateway) SellerItems(ctx context.Context) ([]domain.Item, error) {
	body, err := g.do(ctx, call{method: http.MethodGet, path: "/items", auth: true})
	if err != nil {
		return nil, err
	}

	var recs []any
	g.decode(body, &recs)
	items, skipped := normalize.Items(recs)
	if skipped > 0 {
		g.logger.Warn("Dropped item records without identifier", zap.Int("count", skipped))
	}
	return items, nil
}

// CreateItem creates a listing for the authenticated seller.
func (g *Gateway) CreateItem(ctx context.Context, draft ItemDraft) (domain.Item, error) {
	body, err := g.do(ctx, call{method: http.MethodPost, path: "/items", body: draft, auth: true})
	if err != nil {
		return domain.Item{}, err
	}

	var rec map[string]any
	g.decode(body, &rec)
	item, normErr := normalize.Item(rec)
	if normErr != nil {
		// Created but echoed without an id; the follow-up reload is
		// the source of truth anyway.
		return domain.Item{}, nil
	}
	return item, nil
}

// UpdateItem replaces the mutable fields of an existing listing.
func (g *Gateway) UpdateItem(ctx context.Context, id int, draft ItemDraft) (domain.Item, error) {
	body, err := g.do(ctx, call{
		method: http.MethodPut,
		path:   fmt.Sprintf("/items/%d", id),
		body:   draft,
		auth:   true,
	})
	if err != nil {
		return domain.Item{}, err
	}

	var rec map[string]any
	g.decode(body, &rec)
	item, normErr := normalize.Item(rec)
	if normErr != nil {
		return domain.Item{}, nil
	}
	return item, nil
}

// DeleteItem removes a listing.
func (g *Gateway) DeleteItem(ctx context.Context, id int) error {
	_, err := g.do(ctx, call{
		method: http.MethodDelete,
		path:   fmt.Sprintf("/items/%d", id),
		auth:   true,
	})
	return err
}

// Login exchanges credentials for a bearer token. The token is opaque
// and returned as-is.
func (g *Gateway) Login(ctx context.Context, username, password string) (string, error) {
	body, err := g.do(ctx, call{
		method: http.MethodPost,
		path:   "/login",
		body:   map[string]string{"username": username, "password": password},
	})
	if err != nil {
		return "", err
	}

	var payload struct {
		Token string `json:"token"`
	}
	g.decode(body, &payload)
	if payload.Token == "" {
		// A success status without a token is still a failed login
		return "", &APIError{Status: http.StatusOK, Message: "login failed"}
	}
	return payload.Token, nil
}

// Signup creates an account. It does not authenticate.
func (g *Gateway) Signup(ctx context.Context, username, password string) error {
	_, err := g.do(ctx, call{
		method: http.MethodPost,
		path:   "/signup",
		body:   map[string]string{"username": username, "password": password},
	})
	return err
}

// Cart fetches the authenticated user's cart.
func (g *Gateway) Cart(ctx context.Context) (domain.Cart, error) {
	body, err := g.do(ctx, call{method: http.MethodGet, path: "/cart", auth: true})
	if err != nil {
		return domain.Cart{}, err
	}

	var payload any
	g.decode(body, &payload)
	return normalize.Cart(payload), nil
}

// AddToCart adds qty of an item to the cart. The cart itself is not
// re-fetched here; mutations are confirmed by the next read.
func (g *Gateway) AddToCart(ctx context.Context, itemID, qty int) error {
	_, err := g.do(ctx, call{
		method: http.MethodPost,
		path:   "/cart/add",
		body:   map[string]int{"item_id": itemID, "qty": qty},
		auth:   true,
	})
	return err
}

// RemoveFromCart deletes one line from the cart.
func (g *Gateway) RemoveFromCart(ctx context.Context, itemID int) error {
	q := url.Values{}
	q.Set("item_id", fmt.Sprintf("%d", itemID))
	_, err := g.do(ctx, call{
		method: http.MethodDelete,
		path:   "/cart/remove",
		query:  q,
		auth:   true,
	})
	return err
}
