package stub

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handlers implements the marketplace endpoints. Response casing is
// deliberately uneven across endpoints, mirroring the deployed API the
// client was written against: listings use lowercase keys, category
// and created-item echoes use exported ones, and the cart answers with
// a bare array.
type Handlers struct {
	store  *Store
	auth   *Auth
	logger *zap.Logger
}

func NewHandlers(store *Store, auth *Auth, logger *zap.Logger) *Handlers {
	return &Handlers{store: store, auth: auth, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type itemRequest struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	ImageURL     string  `json:"image_url"`
	CategoryName string  `json:"category_name"`
}

// lowercase listing shape
type itemJSON struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
	Category string  `json:"category"`
}

// exported echo shape; no tags on purpose
type itemEcho struct {
	ID       int
	Name     string
	Price    float64
	ImageURL string
	Category string
}

type categoryJSON struct {
	ID   int
	Name string
}

type cartLineJSON struct {
	ItemID   int     `json:"item_id"`
	Name     string  `json:"name"`
	Qty      int     `json:"qty"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
	Category string  `json:"category"`
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	hash, err := h.auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user, err := h.store.CreateUser(req.Username, hash)
	if err != nil {
		respondError(w, http.StatusConflict, "Username already exists")
		return
	}

	h.logger.Info("User created", zap.Int("user_id", user.ID))
	respondJSON(w, http.StatusCreated, map[string]string{"message": "User created successfully"})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.store.FindUser(req.Username)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := h.auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.auth.IssueToken(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	cats := h.store.Categories()
	out := make([]categoryJSON, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryJSON{ID: c.ID, Name: c.Name})
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handlers) GetItems(w http.ResponseWriter, r *http.Request) {
	var filter ItemFilter

	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid category_id")
			return
		}
		filter.CategoryID = &id
	}

	minRaw := r.URL.Query().Get("minPrice")
	maxRaw := r.URL.Query().Get("maxPrice")
	if (minRaw == "") != (maxRaw == "") {
		respondError(w, http.StatusBadRequest, "minPrice and maxPrice must be provided together")
		return
	}
	if minRaw != "" && maxRaw != "" {
		min, err := strconv.ParseFloat(minRaw, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid minPrice")
			return
		}
		max, err := strconv.ParseFloat(maxRaw, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid maxPrice")
			return
		}
		filter.MinPrice = &min
		filter.MaxPrice = &max
	}

	// A valid credential scopes the listing to the seller's own items
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		if ownerID, err := h.auth.VerifyToken(strings.TrimPrefix(authHeader, "Bearer ")); err == nil {
			filter.OwnerID = &ownerID
		}
	}

	items := h.store.Items(filter)
	out := make([]itemJSON, 0, len(items))
	for _, item := range items {
		out = append(out, itemJSON{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			ImageURL: item.ImageURL,
			Category: h.store.ItemCategoryName(item),
		})
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handlers) CreateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusForbidden, "Unauthorized")
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	category, err := h.store.CategoryByName(req.CategoryName)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Category not found")
		return
	}

	item := h.store.CreateItem(Item{
		Name:       req.Name,
		Price:      req.Price,
		ImageURL:   req.ImageURL,
		CategoryID: category.ID,
		OwnerID:    userID,
	})

	respondJSON(w, http.StatusCreated, itemEcho{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		ImageURL: item.ImageURL,
		Category: category.Name,
	})
}

func (h *Handlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	if _, ok := userIDFrom(r.Context()); !ok {
		respondError(w, http.StatusForbidden, "Unauthorized")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var categoryID int
	if req.CategoryName != "" {
		category, err := h.store.CategoryByName(req.CategoryName)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Category not found")
			return
		}
		categoryID = category.ID
	}

	item, err := h.store.UpdateItem(id, func(it *Item) {
		if req.Name != "" {
			it.Name = req.Name
		}
		if req.Price != 0 {
			it.Price = req.Price
		}
		if req.ImageURL != "" {
			it.ImageURL = req.ImageURL
		}
		if categoryID != 0 {
			it.CategoryID = categoryID
		}
	})
	if err != nil {
		respondError(w, http.StatusNotFound, "Item not found")
		return
	}

	respondJSON(w, http.StatusOK, itemEcho{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		ImageURL: item.ImageURL,
		Category: h.store.ItemCategoryName(item),
	})
}

func (h *Handlers) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if _, ok := userIDFrom(r.Context()); !ok {
		respondError(w, http.StatusForbidden, "Unauthorized")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	if err := h.store.DeleteItem(id); err != nil {
		respondError(w, http.StatusNotFound, "Item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	rows := h.store.CartRows(userID)
	out := make([]cartLineJSON, 0, len(rows))
	for _, row := range rows {
		out = append(out, cartLineJSON{
			ItemID:   row.ItemID,
			Name:     row.Name,
			Qty:      row.Qty,
			Price:    row.Price,
			ImageURL: row.ImageURL,
			Category: row.Category,
		})
	}
	// Bare array, not an {"items": ...} wrapper
	respondJSON(w, http.StatusOK, out)
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		ItemID int `json:"item_id"`
		Qty    int `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ItemID == 0 || req.Qty <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid item ID or quantity")
		return
	}

	if err := h.store.AddToCart(userID, req.ItemID, req.Qty); err != nil {
		respondError(w, http.StatusBadRequest, "Item not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"item_id": req.ItemID, "qty": req.Qty})
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	itemID, err := strconv.Atoi(r.URL.Query().Get("item_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	h.store.RemoveFromCart(userID, itemID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Item removed from cart"})
}
