package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"attar/internal/domain"
	"attar/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Минимальная длина общего секрета, как в исходной форме регистрации
const minPhoneLen = 6

// CustomerService регистрация и вход покупателей.
// Покупатель аутентифицируется парой email + phone (общий секрет),
// это отдельная схема от админской и намеренно с ней не объединена.
type CustomerService struct {
	customers repository.CustomerRepository
}

func NewCustomerService(customers repository.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// Register создаёт покупателя; занятый email отклоняется и здесь,
// и уникальным индексом хранилища
func (s *CustomerService) Register(ctx context.Context, name, email, phone string) (*domain.Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || !strings.Contains(email, "@") || len(phone) < minPhoneLen {
		return nil, ErrInvalidInput
	}

	if _, err := s.customers.GetByEmail(ctx, email); err == nil {
		return nil, repository.ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	c := domain.Customer{
		Name:         name,
		Email:        email,
		Phone:        phone,
		RegisteredAt: time.Now().UTC(),
	}
	if err := s.customers.Insert(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Login проверяет пару email + phone. Ответ не различает "нет такого email"
// и "неверный секрет".
func (s *CustomerService) Login(ctx context.Context, email, phone string) (*domain.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	c, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if c.Phone != phone {
		return nil, ErrInvalidCredentials
	}
	return c, nil
}

// GetByID возвращает покупателя по id
func (s *CustomerService) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.customers.GetByID(ctx, id)
}

// List все покупатели, для админки
func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}

// Update админское редактирование карточки покупателя
func (s *CustomerService) Update(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	if c.ID == "" || c.Name == "" || c.Email == "" {
		return nil, ErrInvalidInput
	}
	cp := c
	cp.Email = strings.ToLower(strings.TrimSpace(cp.Email))
	if err := s.customers.Update(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// Delete удаляет покупателя; его заказы остаются со слабой ссылкой
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.customers.Delete(ctx, id)
}
