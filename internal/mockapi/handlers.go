package mockapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/padhusmiler/mstex/internal/domain"
)

type tokenResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type registerRequest struct {
	domain.Profile
	Password string `json:"password"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		respondDetail(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	user, err := s.store.CreateUser(req.Profile, hashPassword(req.Password), domain.RoleUser)
	if errors.Is(err, ErrEmailTaken) {
		respondDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	s.issueToken(w, user)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	user, hash, err := s.store.UserByEmail(req.Email)
	if err != nil || !checkPassword(req.Password, hash) {
		respondDetail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	s.issueToken(w, user)
}

func (s *Server) issueToken(w http.ResponseWriter, user domain.User) {
	token, err := s.tokens.issue(user.ID, user.Email, user.Role)
	if err != nil {
		s.log.Error("failed to issue token", zap.Error(err))
		respondDetail(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	respondJSON(w, http.StatusOK, tokenResponse{Token: token, User: user})
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request, user domain.User) {
	respondJSON(w, http.StatusOK, user)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request, user domain.User) {
	var req domain.Profile
	if !decodeBody(w, r, &req) {
		return
	}
	updated, err := s.store.UpdateUser(user.ID, req)
	if errors.Is(err, ErrEmailTaken) {
		respondDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		respondDetail(w, http.StatusNotFound, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.Products())
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Product(chi.URLParam(r, "id"))
	if err != nil {
		respondDetail(w, http.StatusNotFound, "Product not found")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// validateDraft enforces the size/color invariant server-side as well; the
// admin form checks it first, but the contract should not depend on that.
func validateDraft(w http.ResponseWriter, draft domain.ProductDraft) bool {
	if len(draft.Sizes) == 0 {
		respondDetail(w, http.StatusUnprocessableEntity, "At least one size is required")
		return false
	}
	if len(draft.Colors) == 0 {
		respondDetail(w, http.StatusUnprocessableEntity, "At least one color is required")
		return false
	}
	return true
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request, _ domain.User) {
	var draft domain.ProductDraft
	if !decodeBody(w, r, &draft) {
		return
	}
	if !validateDraft(w, draft) {
		return
	}
	respondJSON(w, http.StatusOK, s.store.CreateProduct(draft))
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request, _ domain.User) {
	var draft domain.ProductDraft
	if !decodeBody(w, r, &draft) {
		return
	}
	if !validateDraft(w, draft) {
		return
	}
	p, err := s.store.UpdateProduct(chi.URLParam(r, "id"), draft)
	if err != nil {
		respondDetail(w, http.StatusNotFound, "Product not found")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request, _ domain.User) {
	if err := s.store.DeleteProduct(chi.URLParam(r, "id")); err != nil {
		respondDetail(w, http.StatusNotFound, "Product not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request, user domain.User) {
	respondJSON(w, http.StatusOK, s.store.Cart(user.ID))
}

func (s *Server) addToCart(w http.ResponseWriter, r *http.Request, user domain.User) {
	var item domain.CartItem
	if !decodeBody(w, r, &item) {
		return
	}
	if item.Quantity < 1 {
		respondDetail(w, http.StatusUnprocessableEntity, "Quantity must be at least 1")
		return
	}
	s.store.AddCartItem(user.ID, item)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Item added to cart"})
}

func (s *Server) updateCart(w http.ResponseWriter, r *http.Request, user domain.User) {
	var items []domain.CartItem
	if !decodeBody(w, r, &items) {
		return
	}
	s.store.ReplaceCartItems(user.ID, items)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Cart updated"})
}

func (s *Server) removeFromCart(w http.ResponseWriter, r *http.Request, user domain.User) {
	s.store.RemoveCartItem(user.ID, chi.URLParam(r, "productID"))
	respondJSON(w, http.StatusOK, map[string]string{"message": "Item removed from cart"})
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request, user domain.User) {
	s.store.ClearCart(user.ID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Cart cleared"})
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request, user domain.User) {
	var draft domain.OrderDraft
	if !decodeBody(w, r, &draft) {
		return
	}
	if len(draft.Items) == 0 {
		respondDetail(w, http.StatusUnprocessableEntity, "Order has no items")
		return
	}
	respondJSON(w, http.StatusOK, s.store.CreateOrder(user.ID, draft))
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request, user domain.User) {
	respondJSON(w, http.StatusOK, s.store.OrdersByUser(user.ID))
}

func (s *Server) listAllOrders(w http.ResponseWriter, r *http.Request, _ domain.User) {
	respondJSON(w, http.StatusOK, s.store.AllOrders())
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request, _ domain.User) {
	status := domain.OrderStatus(r.URL.Query().Get("status"))
	payment := domain.PaymentStatus(r.URL.Query().Get("payment_status"))
	if status == "" {
		respondDetail(w, http.StatusBadRequest, "status is required")
		return
	}
	if err := s.store.UpdateOrderStatus(chi.URLParam(r, "id"), status, payment); err != nil {
		respondDetail(w, http.StatusNotFound, "Order not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Order status updated"})
}
