package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	dealModels "github.com/nraford7/matchmaker-gem-68-sub000/internal/deal/models"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/metrics"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/models"
	portMocks "github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/ports/mocks"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/service/mocks"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
	dErrors "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain-errors"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/platform/sentinel"
)

// Service-level tests cover authorization, state-machine guards, and error
// translation with mocked collaborators. Race behavior is covered by the
// store suites and the workflow tests in workflow_test.go.

type ServiceSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockStore     *mocks.MockStore
	mockDeals     *portMocks.MockDealPort
	mockDirectory *portMocks.MockDirectoryPort
	mockPublisher *portMocks.MockEventPublisher
	metrics       *metrics.Metrics
	service       *Service
	now           time.Time
	owner         id.UserID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStore = mocks.NewMockStore(s.ctrl)
	s.mockDeals = portMocks.NewMockDealPort(s.ctrl)
	s.mockDirectory = portMocks.NewMockDirectoryPort(s.ctrl)
	s.mockPublisher = portMocks.NewMockEventPublisher(s.ctrl)
	s.metrics = metrics.NewWith(prometheus.NewRegistry())
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.owner = id.UserID(uuid.New())

	var err error
	s.service, err = New(s.mockStore, s.mockDeals, s.mockDirectory,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
		WithPublisher(s.mockPublisher),
		WithClock(func() time.Time { return s.now }),
	)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) deal(level id.PrivacyLevel) *dealModels.Deal {
	owner := s.owner
	return &dealModels.Deal{ID: id.DealID(uuid.New()), UploaderID: &owner, PrivacyLevel: level, Name: "Acme"}
}

func (s *ServiceSuite) pending(deal *dealModels.Deal, userID id.UserID) *models.Registration {
	return &models.Registration{
		ID:        id.NewRegistrationID(),
		UserID:    userID,
		DealID:    deal.ID,
		Status:    models.StatusRegistered,
		CreatedAt: s.now.Add(-time.Hour),
		UpdatedAt: s.now.Add(-time.Hour),
	}
}

func (s *ServiceSuite) TestNew() {
	s.Run("nil store returns error", func() {
		_, err := New(nil, s.mockDeals, nil)
		s.Error(err)
		s.Contains(err.Error(), "registration store is required")
	})

	s.Run("nil deal port returns error", func() {
		_, err := New(s.mockStore, nil, nil)
		s.Error(err)
		s.Contains(err.Error(), "deal port is required")
	})
}

func (s *ServiceSuite) TestRegister() {
	ctx := context.Background()
	viewer := id.UserID(uuid.New())

	s.Run("anonymous viewer is unauthenticated", func() {
		_, err := s.service.Register(ctx, id.UserID{}, id.DealID(uuid.New()))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthenticated))
	})

	s.Run("missing deal is not found", func() {
		dealID := id.DealID(uuid.New())
		s.mockDeals.EXPECT().GetDeal(gomock.Any(), dealID).Return(nil, dErrors.New(dErrors.CodeNotFound, "deal not found"))

		_, err := s.service.Register(ctx, viewer, dealID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	levels := map[id.PrivacyLevel]models.Status{
		id.PrivacyOpen:           models.StatusApproved,
		id.PrivacyConfidential:   models.StatusApproved,
		id.PrivacyInvitationOnly: models.StatusRegistered,
	}
	for level, want := range levels {
		s.Run("initial status for "+string(level), func() {
			deal := s.deal(level)
			s.mockDeals.EXPECT().GetDeal(gomock.Any(), deal.ID).Return(deal, nil)
			s.mockStore.EXPECT().InsertIfAbsent(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, reg *models.Registration) (*models.Registration, bool, error) {
					return reg, true, nil
				})
			s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, e models.Event) error {
					s.Equal(deal.ID, e.DealID)
					s.Equal(viewer, e.UserID)
					s.Equal(want, e.Status)
					s.Require().NotNil(e.OwnerID)
					s.Equal(s.owner, *e.OwnerID)
					return nil
				})

			reg, err := s.service.Register(ctx, viewer, deal.ID)
			s.Require().NoError(err)
			s.Equal(want, reg.Status)
			s.Equal(s.now, reg.CreatedAt)
		})
	}

	s.Run("existing registration is returned without a new event", func() {
		deal := s.deal(id.PrivacyInvitationOnly)
		existing := s.pending(deal, viewer)
		s.mockDeals.EXPECT().GetDeal(gomock.Any(), deal.ID).Return(deal, nil)
		s.mockStore.EXPECT().InsertIfAbsent(gomock.Any(), gomock.Any()).Return(existing, false, nil)

		reg, err := s.service.Register(ctx, viewer, deal.ID)
		s.Require().NoError(err)
		s.Equal(existing.ID, reg.ID)
	})

	s.Run("publish failure does not fail the registration", func() {
		deal := s.deal(id.PrivacyConfidential)
		s.mockDeals.EXPECT().GetDeal(gomock.Any(), deal.ID).Return(deal, nil)
		s.mockStore.EXPECT().InsertIfAbsent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, reg *models.Registration) (*models.Registration, bool, error) {
				return reg, true, nil
			})
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		_, err := s.service.Register(ctx, viewer, deal.ID)
		s.Require().NoError(err)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.EventPublishFailures))
	})

	s.Run("store failure is internal", func() {
		deal := s.deal(id.PrivacyConfidential)
		s.mockDeals.EXPECT().GetDeal(gomock.Any(), deal.ID).Return(deal, nil)
		s.mockStore.EXPECT().InsertIfAbsent(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("db down"))

		_, err := s.service.Register(ctx, viewer, deal.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestApproveReject() {
	ctx := context.Background()
	viewer := id.UserID(uuid.New())

	s.Run("owner approves pending registration", func() {
		deal := s.deal(id.PrivacyInvitationOnly)
		reg := s.pending(deal, viewer)
		approved := *reg
		approved.Status = models.StatusApproved
		approved.UpdatedAt = s.now

		s.mockStore.EXPECT().FindByID(gomock.Any(), reg.ID).Return(reg, nil)
		s.mockDeals.EXPECT().GetDeal(gomock.Any(), deal.ID).Return(deal, nil)
		s.mockStore.EXPECT().UpdateStatusIfCurrent(gomock.Any(), reg.ID, models.StatusRegistered, models.StatusApproved, s.now).Return(&approved, nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e models.Event) error {
				s.Equal(models.EventApproved, e.Type)
				return nil
			})

		got, err := s.service.Approve(ctx, reg.ID, s.owner)
		s.Require().NoError(err)
		s.Equal(models.StatusApproved, got.Status)
		s.Equal(s.now, got.UpdatedAt)
	})

	s.Run("owner rejects pending registration", func() {
		deal := s.deal(id.PrivacyInvitationOnly)
		reg := s.pending(deal, viewer)
		rejected := *reg
		rejected.Status = models.StatusRejected

		s.mockStore.EXPECT().FindByID(gomock.Any(), reg.ID).Return(reg, nil)
		s.mockDeals.EXPECT().GetDeal(gomock.Any(), deal.ID).Return(deal, nil)
		s.mockStore.EXPECT().UpdateStatusIfCurrent(gomock.Any(), reg.ID, models.StatusRegistered, models.StatusRejected, s.now).Return(&rejected, nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		got, err := s.service.Reject(ctx, reg.ID, s.owner)
		s.Require().NoError(err)
		s.Equal(models.StatusRejected, got.Status)
	})

	s.Run("non-owner is forbidden and nothing is written", func() {
		deal := s.deal(id.PrivacyInvitationOnly)
		reg := s.pending(deal, viewer)
		s.mockStore.EXPECT().FindByID(gomock.Any(), reg.ID).Return(reg, nil)
		s.mockDeals.EXPECT().GetDeal(gomock.Any(), deal.ID).Return(deal, nil)

		_, err := s.service.Approve(ctx, reg.ID, viewer)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		s.Equal(1.0, testutil.ToFloat64(s.metrics.Transitions.WithLabelValues("APPROVED", "forbidden")))
	})

	s.Run("legacy deal without uploader is forbidden to everyone", func() {
		deal := s.deal(id.PrivacyInvitationOnly)
		deal.UploaderID = nil
		reg := s.pending(deal, viewer)
		s.mockStore.EXPECT().FindByID(gomock.Any(), reg.ID).Return(reg, nil)
		s.mockDeals.EXPECT().GetDeal(gomock.Any(), deal.ID).Return(deal, nil)

		_, err := s.service.Reject(ctx, reg.ID, s.owner)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	for _, terminal := range []models.Status{models.StatusApproved, models.StatusRejected} {
		s.Run("terminal "+string(terminal)+" record is invalid state", func() {
			deal := s.deal(id.PrivacyInvitationOnly)
			reg := s.pending(deal, viewer)
			reg.Status = terminal
			s.mockStore.EXPECT().FindByID(gomock.Any(), reg.ID).Return(reg, nil).Times(2)
			s.mockDeals.EXPECT().GetDeal(gomock.Any(), deal.ID).Return(deal, nil).Times(2)

			_, err := s.service.Approve(ctx, reg.ID, s.owner)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
			_, err = s.service.Reject(ctx, reg.ID, s.owner)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
		})
	}

	s.Run("losing a concurrent transition is invalid state", func() {
		deal := s.deal(id.PrivacyInvitationOnly)
		reg := s.pending(deal, viewer)
		s.mockStore.EXPECT().FindByID(gomock.Any(), reg.ID).Return(reg, nil)
		s.mockDeals.EXPECT().GetDeal(gomock.Any(), deal.ID).Return(deal, nil)
		s.mockStore.EXPECT().UpdateStatusIfCurrent(gomock.Any(), reg.ID, models.StatusRegistered, models.StatusApproved, s.now).Return(nil, sentinel.ErrInvalidState)

		_, err := s.service.Approve(ctx, reg.ID, s.owner)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	s.Run("unknown registration is not found", func() {
		regID := id.NewRegistrationID()
		s.mockStore.EXPECT().FindByID(gomock.Any(), regID).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.Approve(ctx, regID, s.owner)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("anonymous actor is unauthenticated", func() {
		_, err := s.service.Reject(ctx, id.NewRegistrationID(), id.UserID{})
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthenticated))
	})
}

func (s *ServiceSuite) TestListPending() {
	ctx := context.Background()

	s.Run("non-owner receives an empty list", func() {
		deal := s.deal(id.PrivacyInvitationOnly)
		s.mockDeals.EXPECT().GetDeal(gomock.Any(), deal.ID).Return(deal, nil)

		list, err := s.service.ListPending(ctx, deal.ID, id.UserID(uuid.New()))
		s.Require().NoError(err)
		s.NotNil(list)
		s.Empty(list)
	})

	s.Run("owner receives pending records joined with identity", func() {
		deal := s.deal(id.PrivacyInvitationOnly)
		alice, bob := id.UserID(uuid.New()), id.UserID(uuid.New())
		records := []*models.Registration{s.pending(deal, alice), s.pending(deal, bob)}

		s.mockDeals.EXPECT().GetDeal(gomock.Any(), deal.ID).Return(deal, nil)
		s.mockStore.EXPECT().ListByDeal(gomock.Any(), deal.ID, models.StatusRegistered).Return(records, nil)
		s.mockDirectory.EXPECT().GetDisplayIdentity(gomock.Any(), alice).Return(models.Identity{Name: "Alice", Email: "alice@example.com"}, nil)
		s.mockDirectory.EXPECT().GetDisplayIdentity(gomock.Any(), bob).Return(models.Identity{}, errors.New("directory down"))

		list, err := s.service.ListPending(ctx, deal.ID, s.owner)
		s.Require().NoError(err)
		s.Require().Len(list, 2)
		s.Equal("Alice", list[0].Identity.Name)
		s.Equal(bob, list[1].UserID)
		s.Empty(list[1].Identity.Email, "failed lookups keep the entry without identity")
	})

	s.Run("missing deal is not found", func() {
		dealID := id.DealID(uuid.New())
		s.mockDeals.EXPECT().GetDeal(gomock.Any(), dealID).Return(nil, dErrors.New(dErrors.CodeNotFound, "deal not found"))

		_, err := s.service.ListPending(ctx, dealID, s.owner)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestFindForViewer() {
	ctx := context.Background()
	dealID := id.DealID(uuid.New())

	s.Run("anonymous viewer has no registration", func() {
		reg, err := s.service.FindForViewer(ctx, id.UserID{}, dealID)
		s.NoError(err)
		s.Nil(reg)
	})

	s.Run("absence is not an error", func() {
		viewer := id.UserID(uuid.New())
		s.mockStore.EXPECT().FindByPair(gomock.Any(), viewer, dealID).Return(nil, sentinel.ErrNotFound)

		reg, err := s.service.FindForViewer(ctx, viewer, dealID)
		s.NoError(err)
		s.Nil(reg)
	})

	s.Run("store failures propagate", func() {
		viewer := id.UserID(uuid.New())
		s.mockStore.EXPECT().FindByPair(gomock.Any(), viewer, dealID).Return(nil, errors.New("timeout"))

		_, err := s.service.FindForViewer(ctx, viewer, dealID)
		s.Error(err)
	})
}
