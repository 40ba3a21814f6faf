package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/models"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/platform/sentinel"
)

type RegistrationStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *RegistrationStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestRegistrationStoreSuite(t *testing.T) {
	suite.Run(t, new(RegistrationStoreSuite))
}

func newRegistration(userID id.UserID, dealID id.DealID, status models.Status, createdAt time.Time) *models.Registration {
	return &models.Registration{
		ID:        id.NewRegistrationID(),
		UserID:    userID,
		DealID:    dealID,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func (s *RegistrationStoreSuite) TestInsertIfAbsent() {
	userID, dealID := id.UserID(uuid.New()), id.DealID(uuid.New())

	first := newRegistration(userID, dealID, models.StatusRegistered, time.Now())
	stored, created, err := s.store.InsertIfAbsent(s.ctx, first)
	s.Require().NoError(err)
	s.True(created)
	s.Equal(first.ID, stored.ID)

	second := newRegistration(userID, dealID, models.StatusApproved, time.Now())
	stored, created, err = s.store.InsertIfAbsent(s.ctx, second)
	s.Require().NoError(err)
	s.False(created)
	s.Equal(first.ID, stored.ID, "existing record wins")
	s.Equal(models.StatusRegistered, stored.Status)

	_, err = s.store.FindByID(s.ctx, second.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// TestConcurrentInsert verifies exactly one record survives racing inserts for a pair.
func (s *RegistrationStoreSuite) TestConcurrentInsert() {
	userID, dealID := id.UserID(uuid.New()), id.DealID(uuid.New())
	const goroutines = 50

	var wg sync.WaitGroup
	var createdCount atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, created, err := s.store.InsertIfAbsent(s.ctx, newRegistration(userID, dealID, models.StatusRegistered, time.Now()))
			if err == nil && created {
				createdCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), createdCount.Load())
	list, err := s.store.ListByDeal(s.ctx, dealID, models.StatusRegistered)
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *RegistrationStoreSuite) TestUpdateStatusIfCurrent() {
	reg := newRegistration(id.UserID(uuid.New()), id.DealID(uuid.New()), models.StatusRegistered, time.Now())
	_, _, err := s.store.InsertIfAbsent(s.ctx, reg)
	s.Require().NoError(err)

	s.Run("applies when status matches", func() {
		later := reg.CreatedAt.Add(time.Minute)
		updated, err := s.store.UpdateStatusIfCurrent(s.ctx, reg.ID, models.StatusRegistered, models.StatusApproved, later)
		s.Require().NoError(err)
		s.Equal(models.StatusApproved, updated.Status)
		s.Equal(later, updated.UpdatedAt)
	})

	s.Run("refuses when status moved on", func() {
		_, err := s.store.UpdateStatusIfCurrent(s.ctx, reg.ID, models.StatusRegistered, models.StatusRejected, time.Now())
		s.ErrorIs(err, sentinel.ErrInvalidState)

		found, err := s.store.FindByID(s.ctx, reg.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusApproved, found.Status)
	})

	s.Run("unknown id", func() {
		_, err := s.store.UpdateStatusIfCurrent(s.ctx, id.NewRegistrationID(), models.StatusRegistered, models.StatusApproved, time.Now())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestConcurrentUpdate verifies racing approve/reject writes produce one winner.
func (s *RegistrationStoreSuite) TestConcurrentUpdate() {
	reg := newRegistration(id.UserID(uuid.New()), id.DealID(uuid.New()), models.StatusRegistered, time.Now())
	_, _, err := s.store.InsertIfAbsent(s.ctx, reg)
	s.Require().NoError(err)

	var wg sync.WaitGroup
	var wins, conflicts atomic.Int32
	for i := 0; i < 20; i++ {
		next := models.StatusApproved
		if i%2 == 1 {
			next = models.StatusRejected
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.UpdateStatusIfCurrent(s.ctx, reg.ID, models.StatusRegistered, next, time.Now())
			switch {
			case err == nil:
				wins.Add(1)
			case err == sentinel.ErrInvalidState:
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), wins.Load())
	s.Equal(int32(19), conflicts.Load())
}

func (s *RegistrationStoreSuite) TestListByDealOrdersOldestFirst() {
	dealID := id.DealID(uuid.New())
	base := time.Now()
	newer := newRegistration(id.UserID(uuid.New()), dealID, models.StatusRegistered, base.Add(time.Hour))
	older := newRegistration(id.UserID(uuid.New()), dealID, models.StatusRegistered, base)
	approved := newRegistration(id.UserID(uuid.New()), dealID, models.StatusApproved, base)
	other := newRegistration(id.UserID(uuid.New()), id.DealID(uuid.New()), models.StatusRegistered, base)
	for _, r := range []*models.Registration{newer, older, approved, other} {
		_, _, err := s.store.InsertIfAbsent(s.ctx, r)
		s.Require().NoError(err)
	}

	list, err := s.store.ListByDeal(s.ctx, dealID, models.StatusRegistered)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(older.ID, list[0].ID)
	s.Equal(newer.ID, list[1].ID)
}
