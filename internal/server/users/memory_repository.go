package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/itemvault/internal/common"
	"github.com/google/uuid"
)

// MemoryRepository keeps credentials in a process-local map. It is the
// default backend; deployments that need durable credentials select the
// Postgres implementation instead.
type MemoryRepository struct {
	mu    sync.Mutex
	users map[string]User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]User)}
}

func (r *MemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}

	u := *user
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	r.users[u.Email] = u

	saved := u
	return &saved, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}

	found := u
	return &found, nil
}
