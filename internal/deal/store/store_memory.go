package store

import (
	"context"
	"sync"

	"github.com/nraford7/matchmaker-gem-68-sub000/internal/deal/models"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/platform/sentinel"
)

// InMemory keeps deals in a map. Callers receive clones so redaction never
// mutates stored state.
type InMemory struct {
	mu    sync.RWMutex
	deals map[id.DealID]*models.Deal
}

func NewInMemory() *InMemory {
	return &InMemory{deals: make(map[id.DealID]*models.Deal)}
}

// Save inserts or replaces a deal.
func (s *InMemory) Save(_ context.Context, deal *models.Deal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deals[deal.ID] = deal.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, dealID id.DealID) (*models.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.deals[dealID]; ok {
		return d.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}
