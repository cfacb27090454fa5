package stub

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter assembles the stub API.
func NewRouter(store *Store, auth *Auth, logger *zap.Logger) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(loggingMiddleware(logger))
	router.Use(recoverMiddleware(logger))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	h := NewHandlers(store, auth, logger)
	requireAuth := authMiddleware(auth, logger)

	// Public
	router.Post("/signup", h.Signup)
	router.Post("/login", h.Login)
	router.Get("/categories", h.GetCategories)
	router.Get("/items", h.GetItems)

	// Protected
	router.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/items", h.CreateItem)
		r.Put("/items/{id}", h.UpdateItem)
		r.Delete("/items/{id}", h.DeleteItem)
		r.Get("/cart", h.GetCart)
		r.Post("/cart/add", h.AddToCart)
		r.Delete("/cart/remove", h.RemoveFromCart)
	})

	return router
}
