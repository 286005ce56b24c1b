package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/carsapi/internal/common"
	"github.com/dmitrijs2005/carsapi/internal/server/models"
)

// MemoryRepository keeps users in a map keyed by username.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.User), now: time.Now}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}

	user.CreatedAt = r.now().UTC()
	stored := *user
	stored.PasswordHash = append([]byte(nil), user.PasswordHash...)
	r.users[user.UserName] = stored

	return user, nil
}

func (r *MemoryRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

// Count reports the number of stored users.
func (r *MemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
