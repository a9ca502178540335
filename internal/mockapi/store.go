package mockapi

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/padhusmiler/mstex/internal/domain"
)

var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
)

type userRecord struct {
	domain.User
	PasswordHash string
}

// Store is the in-memory state behind the mock backend. Guarded by one
// mutex; the mock favors simplicity over throughput.
type Store struct {
	mu sync.RWMutex

	users   map[string]*userRecord // by id
	byEmail map[string]string      // email -> id

	products   map[string]domain.Product
	productIDs []string // insertion order

	carts map[string]*domain.Cart // by user id

	orders   map[string]*domain.Order
	orderIDs []string
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]*userRecord),
		byEmail:  make(map[string]string),
		products: make(map[string]domain.Product),
		carts:    make(map[string]*domain.Cart),
		orders:   make(map[string]*domain.Order),
	}
}

func (s *Store) CreateUser(profile domain.Profile, passwordHash, role string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[profile.Email]; ok {
		return domain.User{}, ErrEmailTaken
	}
	u := domain.User{
		ID:      uuid.NewString(),
		Email:   profile.Email,
		Name:    profile.Name,
		Phone:   profile.Phone,
		Address: profile.Address,
		Role:    role,
	}
	s.users[u.ID] = &userRecord{User: u, PasswordHash: passwordHash}
	s.byEmail[u.Email] = u.ID
	return u, nil
}

func (s *Store) UserByEmail(email string) (domain.User, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return domain.User{}, "", ErrUserNotFound
	}
	rec := s.users[id]
	return rec.User, rec.PasswordHash, nil
}

func (s *Store) User(id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return rec.User, nil
}

func (s *Store) UpdateUser(id string, profile domain.Profile) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	if profile.Email != "" && profile.Email != rec.Email {
		if _, taken := s.byEmail[profile.Email]; taken {
			return domain.User{}, ErrEmailTaken
		}
		delete(s.byEmail, rec.Email)
		rec.Email = profile.Email
		s.byEmail[rec.Email] = id
	}
	rec.Name = profile.Name
	rec.Phone = profile.Phone
	rec.Address = profile.Address
	return rec.User, nil
}

func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0, len(s.productIDs))
	for _, id := range s.productIDs {
		out = append(out, s.products[id])
	}
	return out
}

func (s *Store) Product(id string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (s *Store) CreateProduct(draft domain.ProductDraft) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := productFromDraft(uuid.NewString(), draft)
	p.CreatedAt = time.Now().UTC()
	s.products[p.ID] = p
	s.productIDs = append(s.productIDs, p.ID)
	return p
}

func (s *Store) UpdateProduct(id string, draft domain.ProductDraft) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.products[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	p := productFromDraft(id, draft)
	p.CreatedAt = old.CreatedAt
	s.products[id] = p
	return p, nil
}

func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(s.products, id)
	for i, pid := range s.productIDs {
		if pid == id {
			s.productIDs = append(s.productIDs[:i], s.productIDs[i+1:]...)
			break
		}
	}
	return nil
}

func productFromDraft(id string, draft domain.ProductDraft) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        draft.Name,
		Description: draft.Description,
		Category:    draft.Category,
		Price:       draft.Price,
		Sizes:       draft.Sizes,
		Colors:      draft.Colors,
		Stock:       draft.Stock,
		Images:      draft.Images,
	}
}

// Cart returns a copy of the user's cart, creating an empty one on first
// access, as the real backend does. The item slice is copied so later
// mutations cannot reach a cart already handed out.
func (s *Store) Cart(userID string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *s.cartLocked(userID)
	c.Items = append([]domain.CartItem{}, c.Items...)
	return c
}

func (s *Store) cartLocked(userID string) *domain.Cart {
	c, ok := s.carts[userID]
	if !ok {
		c = &domain.Cart{
			ID:        uuid.NewString(),
			UserID:    userID,
			Items:     []domain.CartItem{},
			UpdatedAt: time.Now().UTC(),
		}
		s.carts[userID] = c
	}
	return c
}

func (s *Store) AddCartItem(userID string, item domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(userID)
	c.Items = append(c.Items, item)
	c.UpdatedAt = time.Now().UTC()
}

func (s *Store) ReplaceCartItems(userID string, items []domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(userID)
	if items == nil {
		items = []domain.CartItem{}
	}
	c.Items = items
	c.UpdatedAt = time.Now().UTC()
}

func (s *Store) RemoveCartItem(userID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(userID)
	kept := make([]domain.CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	c.UpdatedAt = time.Now().UTC()
}

func (s *Store) ClearCart(userID string) {
	s.ReplaceCartItems(userID, nil)
}

// CreateOrder records the order and clears the user's cart in one step,
// matching the backend's checkout side effect.
func (s *Store) CreateOrder(userID string, draft domain.OrderDraft) domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := &domain.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           draft.Items,
		TotalAmount:     draft.TotalAmount,
		ShippingAddress: draft.ShippingAddress,
		Status:          domain.OrderStatusPending,
		PaymentStatus:   domain.PaymentStatusPending,
		CreatedAt:       time.Now().UTC(),
	}
	s.orders[o.ID] = o
	s.orderIDs = append(s.orderIDs, o.ID)

	c := s.cartLocked(userID)
	c.Items = []domain.CartItem{}
	c.UpdatedAt = time.Now().UTC()
	return *o
}

func (s *Store) OrdersByUser(userID string) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Order
	for _, id := range s.orderIDs {
		if o := s.orders[id]; o.UserID == userID {
			out = append(out, *o)
		}
	}
	if out == nil {
		out = []domain.Order{}
	}
	return out
}

func (s *Store) AllOrders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, 0, len(s.orderIDs))
	for _, id := range s.orderIDs {
		out = append(out, *s.orders[id])
	}
	return out
}

func (s *Store) UpdateOrderStatus(id string, status domain.OrderStatus, payment domain.PaymentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	o.Status = status
	if payment != "" {
		o.PaymentStatus = payment
	}
	return nil
}
