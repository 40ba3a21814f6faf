package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/models"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/platform/sentinel"
)

type pairKey struct {
	user id.UserID
	deal id.DealID
}

// InMemory stores registrations under a single mutex so insert-if-absent and
// compare-and-set updates are atomic.
type InMemory struct {
	mu     sync.RWMutex
	byID   map[id.RegistrationID]*models.Registration
	byPair map[pairKey]id.RegistrationID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:   make(map[id.RegistrationID]*models.Registration),
		byPair: make(map[pairKey]id.RegistrationID),
	}
}

func (s *InMemory) FindByPair(_ context.Context, userID id.UserID, dealID id.DealID) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	regID, ok := s.byPair[pairKey{user: userID, deal: dealID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(s.byID[regID]), nil
}

func (s *InMemory) FindByID(_ context.Context, regID id.RegistrationID) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if reg, ok := s.byID[regID]; ok {
		return clone(reg), nil
	}
	return nil, sentinel.ErrNotFound
}

// InsertIfAbsent stores reg unless the pair already has a record, in which
// case the existing record is returned with created=false.
func (s *InMemory) InsertIfAbsent(_ context.Context, reg *models.Registration) (*models.Registration, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{user: reg.UserID, deal: reg.DealID}
	if existing, ok := s.byPair[key]; ok {
		return clone(s.byID[existing]), false, nil
	}
	stored := clone(reg)
	s.byID[reg.ID] = stored
	s.byPair[key] = reg.ID
	return clone(stored), true, nil
}

// UpdateStatusIfCurrent moves the record to next only when it is still in
// expected. Returns sentinel.ErrInvalidState when another writer got there
// first.
func (s *InMemory) UpdateStatusIfCurrent(_ context.Context, regID id.RegistrationID, expected, next models.Status, now time.Time) (*models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.byID[regID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if reg.Status != expected {
		return nil, sentinel.ErrInvalidState
	}
	reg.Status = next
	reg.UpdatedAt = now
	return clone(reg), nil
}

// ListByDeal returns the deal's records in the given status, oldest first.
func (s *InMemory) ListByDeal(_ context.Context, dealID id.DealID, status models.Status) ([]*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Registration
	for _, reg := range s.byID {
		if reg.DealID == dealID && reg.Status == status {
			out = append(out, clone(reg))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func clone(reg *models.Registration) *models.Registration {
	c := *reg
	return &c
}
