package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"attar/internal/domain"
	"attar/internal/repository"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrUnknownCustomer = errors.New("unknown customer")
)

// OrderService превращает корзину сессии в персистентный заказ
type OrderService struct {
	cart      *CartService
	customers repository.CustomerRepository
	orders    repository.OrderRepository
	log       *logrus.Logger
}

func NewOrderService(cart *CartService, customers repository.CustomerRepository, orders repository.OrderRepository, log *logrus.Logger) *OrderService {
	return &OrderService{cart: cart, customers: customers, orders: orders, log: log}
}

// Checkout создаёт заказ из корзины. Позиции разрешаются по каталогу так же,
// как при просмотре корзины: итог считается по актуальным ценам, пропавшие
// из каталога позиции отбрасываются. Запись заказа и очистка корзины у
// вызывающего не атомарны; повтор запроса дедуплицируется ключом
// идемпотентности, если клиент его прислал.
func (s *OrderService) Checkout(ctx context.Context, lines []domain.CartLine, customerID, idemKey string) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownCustomer
		}
		return nil, err
	}

	if idemKey != "" {
		existing, err := s.orders.GetByIdempotencyKey(ctx, idemKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	view, err := s.cart.Resolve(ctx, lines)
	if err != nil {
		return nil, err
	}
	if len(view.Stale) > 0 {
		s.log.WithFields(logrus.Fields{
			"customer_id": customerID,
			"stale":       len(view.Stale),
		}).Warn("dropping cart lines no longer present in catalog")
	}
	if len(view.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	snapshot := make([]domain.CartLine, 0, len(view.Lines))
	for _, lv := range view.Lines {
		snapshot = append(snapshot, domain.CartLine{
			ProductID: lv.ProductID,
			Name:      lv.Name,
			Price:     lv.Price,
			Quantity:  lv.Quantity,
		})
	}

	o := domain.Order{
		CustomerID:     customerID,
		Lines:          snapshot,
		TotalPrice:     view.TotalPrice,
		OrderDate:      time.Now().UTC(),
		Status:         domain.OrderStatusPending,
		IdempotencyKey: idemKey,
	}
	if err := s.orders.Create(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrder возвращает заказ по id
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.orders.GetByID(ctx, id)
}

// ListOrders все заказы, для админки
func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// ListCustomerOrders заказы одного покупателя
func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	if customerID == "" {
		return nil, ErrInvalidInput
	}
	return s.orders.ListByCustomer(ctx, customerID)
}

// UpdateStatus админский перевод статуса; сам заказ после создания не меняется
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if id == "" || !domain.ValidStatus(status) {
		return ErrInvalidInput
	}
	return s.orders.UpdateStatus(ctx, id, status)
}
