package service

import (
	"context"
	"errors"

	"attar/internal/domain"
	"attar/internal/repository"
)

var (
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrProductNotFound = errors.New("product not found")
)

// CartService реализует логику корзины: добавление позиций,
// разрешение по каталогу и очистку. Сама корзина живёт в сессии
// и передаётся в каждую операцию явно.
type CartService struct {
	products repository.ProductRepository
}

func NewCartService(products repository.ProductRepository) *CartService {
	return &CartService{products: products}
}

// AddLine добавляет позицию с снапшотом имени и цены на момент добавления.
// Повторное добавление того же товара создаёт отдельную строку — корзина
// фиксирует историю добавлений, а не агрегирует количества.
func (s *CartService) AddLine(ctx context.Context, lines []domain.CartLine, productID string, quantity int64) ([]domain.CartLine, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return append(lines, domain.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  quantity,
	}), nil
}

// Resolve повторно разрешает каждую позицию по каталогу и считает итоги
// по актуальным ценам. Позиции, чей товар пропал из каталога, попадают
// в Stale и в итог не входят.
func (s *CartService) Resolve(ctx context.Context, lines []domain.CartLine) (*domain.CartView, error) {
	view := &domain.CartView{Lines: make([]domain.CartLineView, 0, len(lines))}
	for _, line := range lines {
		p, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				view.Stale = append(view.Stale, line)
				continue
			}
			return nil, err
		}
		total := p.Price * line.Quantity
		view.Lines = append(view.Lines, domain.CartLineView{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  line.Quantity,
			Total:     total,
		})
		view.TotalPrice += total
	}
	return view, nil
}

// Clear опустошает корзину; повторный вызов над пустой корзиной — no-op
func (s *CartService) Clear([]domain.CartLine) []domain.CartLine {
	return nil
}
