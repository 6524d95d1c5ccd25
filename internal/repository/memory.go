package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"attar/internal/domain"
)

// MemoryStore объединённое in-memory хранилище всех коллекций магазина.
// Используется в тестах и при локальном запуске без MongoDB.
type MemoryStore struct {
	mu           sync.RWMutex
	productsByID map[string]domain.Product
	customers    map[string]domain.Customer
	ordersByID   map[string]domain.Order
	reviewsByID  map[string]domain.Review
	adminsByName map[string]domain.AdminUser
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		productsByID: make(map[string]domain.Product),
		customers:    make(map[string]domain.Customer),
		ordersByID:   make(map[string]domain.Order),
		reviewsByID:  make(map[string]domain.Review),
		adminsByName: make(map[string]domain.AdminUser),
	}
}

// Ensure interfaces
var _ ProductRepository = (*MemoryStore)(nil)

// ProductRepository implementation
func (m *MemoryStore) Create(ctx context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.NewString()
	m.productsByID[p.ID] = *p
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.productsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := p
	return &cp, nil
}

func (m *MemoryStore) Update(ctx context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.productsByID[p.ID]; !ok {
		return ErrNotFound
	}
	m.productsByID[p.ID] = *p
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.productsByID[id]; !ok {
		return ErrNotFound
	}
	delete(m.productsByID, id)
	return nil
}

func (m *MemoryStore) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Product, 0)
	for _, p := range m.productsByID {
		if !containsIgnoreCase(p.Name, f.NameSubstring) {
			continue
		}
		if !equalsIgnoreCase(p.Brand, f.Brand) {
			continue
		}
		if !equalsIgnoreCase(p.Category, f.Category) {
			continue
		}
		if !equalsIgnoreCase(p.Gender, f.Gender) {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// CustomerRepository implementation on wrapper type
type MemoryCustomers struct{ store *MemoryStore }

func NewMemoryCustomers(store *MemoryStore) *MemoryCustomers { return &MemoryCustomers{store: store} }

var _ CustomerRepository = (*MemoryCustomers)(nil)

func (mc *MemoryCustomers) Insert(ctx context.Context, c *domain.Customer) error {
	mc.store.mu.Lock()
	defer mc.store.mu.Unlock()
	for _, existing := range mc.store.customers {
		if existing.Email == c.Email {
			return ErrDuplicateEmail
		}
	}
	c.ID = uuid.NewString()
	if c.RegisteredAt.IsZero() {
		c.RegisteredAt = time.Now().UTC()
	}
	mc.store.customers[c.ID] = *c
	return nil
}

func (mc *MemoryCustomers) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	mc.store.mu.RLock()
	defer mc.store.mu.RUnlock()
	c, ok := mc.store.customers[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (mc *MemoryCustomers) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	mc.store.mu.RLock()
	defer mc.store.mu.RUnlock()
	for _, c := range mc.store.customers {
		if c.Email == email {
			cp := c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (mc *MemoryCustomers) Update(ctx context.Context, c *domain.Customer) error {
	mc.store.mu.Lock()
	defer mc.store.mu.Unlock()
	if _, ok := mc.store.customers[c.ID]; !ok {
		return ErrNotFound
	}
	mc.store.customers[c.ID] = *c
	return nil
}

func (mc *MemoryCustomers) Delete(ctx context.Context, id string) error {
	mc.store.mu.Lock()
	defer mc.store.mu.Unlock()
	if _, ok := mc.store.customers[id]; !ok {
		return ErrNotFound
	}
	delete(mc.store.customers, id)
	return nil
}

func (mc *MemoryCustomers) List(ctx context.Context) ([]domain.Customer, error) {
	mc.store.mu.RLock()
	defer mc.store.mu.RUnlock()
	out := make([]domain.Customer, 0, len(mc.store.customers))
	for _, c := range mc.store.customers {
		out = append(out, c)
	}
	return out, nil
}

// OrderRepository implementation on wrapper type
type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

func (mo *MemoryOrders) Create(ctx context.Context, o *domain.Order) error {
	mo.store.mu.Lock()
	defer mo.store.mu.Unlock()
	o.ID = uuid.NewString()
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now().UTC()
	}
	mo.store.ordersByID[o.ID] = *o
	return nil
}

func (mo *MemoryOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	mo.store.mu.RLock()
	defer mo.store.mu.RUnlock()
	o, ok := mo.store.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := o
	return &cp, nil
}

func (mo *MemoryOrders) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	mo.store.mu.RLock()
	defer mo.store.mu.RUnlock()
	for _, o := range mo.store.ordersByID {
		if o.IdempotencyKey != "" && o.IdempotencyKey == key {
			cp := o
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (mo *MemoryOrders) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	mo.store.mu.Lock()
	defer mo.store.mu.Unlock()
	o, ok := mo.store.ordersByID[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	mo.store.ordersByID[id] = o
	return nil
}

func (mo *MemoryOrders) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	mo.store.mu.RLock()
	defer mo.store.mu.RUnlock()
	out := make([]domain.Order, 0)
	for _, o := range mo.store.ordersByID {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (mo *MemoryOrders) List(ctx context.Context) ([]domain.Order, error) {
	mo.store.mu.RLock()
	defer mo.store.mu.RUnlock()
	out := make([]domain.Order, 0, len(mo.store.ordersByID))
	for _, o := range mo.store.ordersByID {
		out = append(out, o)
	}
	return out, nil
}

// ReviewRepository implementation on wrapper type
type MemoryReviews struct{ store *MemoryStore }

func NewMemoryReviews(store *MemoryStore) *MemoryReviews { return &MemoryReviews{store: store} }

var _ ReviewRepository = (*MemoryReviews)(nil)

func (mr *MemoryReviews) Create(ctx context.Context, r *domain.Review) error {
	mr.store.mu.Lock()
	defer mr.store.mu.Unlock()
	r.ID = uuid.NewString()
	if r.ReviewDate.IsZero() {
		r.ReviewDate = time.Now().UTC()
	}
	mr.store.reviewsByID[r.ID] = *r
	return nil
}

func (mr *MemoryReviews) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	mr.store.mu.RLock()
	defer mr.store.mu.RUnlock()
	out := make([]domain.Review, 0)
	for _, r := range mr.store.reviewsByID {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (mr *MemoryReviews) List(ctx context.Context) ([]domain.Review, error) {
	mr.store.mu.RLock()
	defer mr.store.mu.RUnlock()
	out := make([]domain.Review, 0, len(mr.store.reviewsByID))
	for _, r := range mr.store.reviewsByID {
		out = append(out, r)
	}
	return out, nil
}

func (mr *MemoryReviews) Delete(ctx context.Context, id string) error {
	mr.store.mu.Lock()
	defer mr.store.mu.Unlock()
	if _, ok := mr.store.reviewsByID[id]; !ok {
		return ErrNotFound
	}
	delete(mr.store.reviewsByID, id)
	return nil
}

// AdminRepository implementation on wrapper type
type MemoryAdmins struct{ store *MemoryStore }

func NewMemoryAdmins(store *MemoryStore) *MemoryAdmins { return &MemoryAdmins{store: store} }

var _ AdminRepository = (*MemoryAdmins)(nil)

func (ma *MemoryAdmins) Insert(ctx context.Context, a *domain.AdminUser) error {
	ma.store.mu.Lock()
	defer ma.store.mu.Unlock()
	if _, ok := ma.store.adminsByName[a.Username]; ok {
		return ErrDuplicateUsername
	}
	a.ID = uuid.NewString()
	ma.store.adminsByName[a.Username] = *a
	return nil
}

func (ma *MemoryAdmins) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	ma.store.mu.RLock()
	defer ma.store.mu.RUnlock()
	a, ok := ma.store.adminsByName[username]
	if !ok {
		return nil, ErrNotFound
	}
	cp := a
	return &cp, nil
}
