// Package mockapi is an in-memory stand-in for the storefront REST backend,
// faithful to its external contract: JSON bodies, FastAPI-style
// {"detail": ...} errors and the auth token carried as a `token` query
// parameter. It backs the client's tests and local development; it is not
// the production backend.
package mockapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/padhusmiler/mstex/internal/domain"
)

type Server struct {
	store  *Store
	tokens *tokenIssuer
	upload *uploadStore
	log    *zap.Logger
	router chi.Router
}

// New builds the mock backend. uploadDir may be empty, in which case
// uploaded images are held in memory only.
func New(store *Store, jwtSecret, uploadDir string, log *zap.Logger) *Server {
	s := &Server{
		store:  store,
		tokens: &tokenIssuer{secret: []byte(jwtSecret)},
		upload: newUploadStore(uploadDir),
		log:    log,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(metricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/uploads/{name}", s.serveUpload)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.register)
		r.Post("/auth/login", s.login)
		r.Get("/auth/profile", s.withUser(s.profile))
		r.Put("/auth/profile", s.withUser(s.updateProfile))

		r.Get("/products", s.listProducts)
		r.Get("/products/{id}", s.getProduct)

		r.Post("/admin/products", s.withAdmin(s.createProduct))
		r.Put("/admin/products/{id}", s.withAdmin(s.updateProduct))
		r.Delete("/admin/products/{id}", s.withAdmin(s.deleteProduct))
		r.Post("/admin/upload-image", s.withAdmin(s.uploadImage))

		r.Get("/cart", s.withUser(s.getCart))
		r.Post("/cart/add", s.withUser(s.addToCart))
		r.Put("/cart/update", s.withUser(s.updateCart))
		r.Delete("/cart/remove/{productID}", s.withUser(s.removeFromCart))
		r.Delete("/cart/clear", s.withUser(s.clearCart))

		r.Post("/orders/create", s.withUser(s.createOrder))
		r.Get("/orders", s.withUser(s.listOrders))

		r.Get("/admin/orders", s.withAdmin(s.listAllOrders))
		r.Put("/admin/orders/{id}/status", s.withAdmin(s.updateOrderStatus))
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// userHandler receives the authenticated user resolved from the token.
type userHandler func(w http.ResponseWriter, r *http.Request, user domain.User)

func (s *Server) withUser(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := s.tokens.parse(r.URL.Query().Get("token"))
		if err != nil {
			respondDetail(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		user, err := s.store.User(c.UserID)
		if err != nil {
			respondDetail(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		next(w, r, user)
	}
}

func (s *Server) withAdmin(next userHandler) http.HandlerFunc {
	return s.withUser(func(w http.ResponseWriter, r *http.Request, user domain.User) {
		if user.Role != domain.RoleAdmin {
			respondDetail(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r, user)
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondDetail mirrors the FastAPI error envelope.
func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}
