package memory

import (
	"context"
	"sync"

	"contactkeeper/application/ports"
	"contactkeeper/domain/user"
)

// UserRepository is an in-memory ports.UserRepository for development
// mode and tests
type UserRepository struct {
	mu    sync.RWMutex
	users map[user.ID]user.User
}

// NewUserRepository creates an empty in-memory user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[user.ID]user.User),
	}
}

// Save persists a user
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = *u
	return nil
}

// FindByID returns (nil, nil) when the id is unknown
func (r *UserRepository) FindByID(ctx context.Context, id user.ID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	out := u
	return &out, nil
}

// FindByEmail returns (nil, nil) when no user has the email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
