package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"attar/internal/domain"
	"attar/internal/repository"
)

// AuthService вход в админку: username + bcrypt-хэш пароля
type AuthService struct {
	admins repository.AdminRepository
}

func NewAuthService(admins repository.AdminRepository) *AuthService {
	return &AuthService{admins: admins}
}

// Login сверяет пароль с хэшем; неизвестный username и неверный пароль
// дают один и тот же ответ
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.AdminUser, error) {
	a, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

// CreateAdmin заводит учётку с хэшированием пароля; используется при сидинге
func (s *AuthService) CreateAdmin(ctx context.Context, username, password string) (*domain.AdminUser, error) {
	if username == "" || len(password) < 8 {
		return nil, ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	a := domain.AdminUser{Username: username, PasswordHash: string(hash)}
	if err := s.admins.Insert(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
