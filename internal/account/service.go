package account

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, a Account) (Account, error) {
	if _, err := s.repo.GetByEmail(ctx, a.Email); err == nil {
		return Account{}, ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return Account{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	a.Password = string(hashed)
	return s.repo.Create(ctx, a)
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (Account, error) {
	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return Account{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)) != nil {
		return Account{}, ErrInvalidCredentials
	}

	return a, nil
}
