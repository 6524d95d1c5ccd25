package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"attar/internal/domain"
	"attar/internal/repository"
)

// ReviewService отзывы о товарах
type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
}

func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository) *ReviewService {
	return &ReviewService{reviews: reviews, products: products}
}

// Create принимает отзыв только на существующий товар, рейтинг 1..5
func (s *ReviewService) Create(ctx context.Context, productID, customerID string, rating int, comment string) (*domain.Review, error) {
	if customerID == "" || rating < 1 || rating > 5 {
		return nil, ErrInvalidInput
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	r := domain.Review{
		ProductID:  productID,
		CustomerID: customerID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
		ReviewDate: time.Now().UTC(),
	}
	if err := s.reviews.Create(ctx, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListByProduct отзывы одного товара, для страницы товара
func (s *ReviewService) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	if productID == "" {
		return nil, ErrInvalidInput
	}
	return s.reviews.ListByProduct(ctx, productID)
}

// List все отзывы, для админки
func (s *ReviewService) List(ctx context.Context) ([]domain.Review, error) {
	return s.reviews.List(ctx)
}

// Delete админское удаление отзыва
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.reviews.Delete(ctx, id)
}
