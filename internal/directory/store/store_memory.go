package store

import (
	"context"
	"sync"

	"github.com/nraford7/matchmaker-gem-68-sub000/internal/directory/models"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/platform/sentinel"
)

type InMemory struct {
	mu    sync.RWMutex
	users map[id.UserID]models.User
}

func NewInMemory() *InMemory {
	return &InMemory{users: make(map[id.UserID]models.User)}
}

func (s *InMemory) Save(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *InMemory) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[userID]; ok {
		return &u, nil
	}
	return nil, sentinel.ErrNotFound
}
