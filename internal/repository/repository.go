package repository

import (
	"context"
	"errors"
	"strings"

	"attar/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail возвращается при попытке зарегистрировать занятый email
var ErrDuplicateEmail = errors.New("email already registered")

// ErrDuplicateUsername возвращается при попытке завести занятый username админа
var ErrDuplicateUsername = errors.New("username already taken")

// ProductFilter параметры фильтрации каталога
type ProductFilter struct {
	NameSubstring string
	Brand         string
	Category      string
	Gender        string
	MinPrice      *int64
	MaxPrice      *int64
}

// ProductRepository интерфейс хранилища товаров
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ProductFilter) ([]domain.Product, error)
}

// CustomerRepository интерфейс хранилища покупателей.
// Insert обязан сам отклонять дубликаты email (ErrDuplicateEmail),
// а не полагаться только на проверку в сервисе.
type CustomerRepository interface {
	Insert(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Customer, error)
}

// OrderRepository интерфейс хранилища заказов
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
}

// ReviewRepository интерфейс хранилища отзывов
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	List(ctx context.Context) ([]domain.Review, error)
	Delete(ctx context.Context, id string) error
}

// AdminRepository интерфейс хранилища админских учёток.
// Insert отклоняет занятый username (ErrDuplicateUsername) в обоих бэкендах.
type AdminRepository interface {
	Insert(ctx context.Context, a *domain.AdminUser) error
	GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// helper: empty filter value or exact match without case
func equalsIgnoreCase(s, want string) bool {
	if want == "" {
		return true
	}
	return strings.EqualFold(s, want)
}
