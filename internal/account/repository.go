package account

import (
	"context"
	"strings"
	"sync"
)

type Repository interface {
	GetByEmail(ctx context.Context, email string) (Account, error)
	Create(ctx context.Context, a Account) (Account, error)
}

type InMemoryRepository struct {
	mu       sync.RWMutex
	accounts []Account
	nextID   int
}

func NewInMemoryRepository(seed []Account) *InMemoryRepository {
	repo := &InMemoryRepository{
		accounts: make([]Account, 0, len(seed)),
		nextID:   1,
	}

	maxID := 0
	for _, a := range seed {
		repo.accounts = append(repo.accounts, a)
		if a.ID > maxID {
			maxID = a.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return Account{}, ErrNotFound
}

func (r *InMemoryRepository) Create(ctx context.Context, a Account) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.ID = r.nextID
	r.nextID++
	r.accounts = append(r.accounts, a)
	return a, nil
}
