package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/metrics"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/models"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/ports"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
	dErrors "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain-errors"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/platform/sentinel"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/requestcontext"
)

// Store is the registration record store. Implementations must make
// InsertIfAbsent and UpdateStatusIfCurrent atomic.
type Store interface {
	FindByPair(ctx context.Context, userID id.UserID, dealID id.DealID) (*models.Registration, error)
	FindByID(ctx context.Context, regID id.RegistrationID) (*models.Registration, error)
	InsertIfAbsent(ctx context.Context, reg *models.Registration) (*models.Registration, bool, error)
	UpdateStatusIfCurrent(ctx context.Context, regID id.RegistrationID, expected, next models.Status, now time.Time) (*models.Registration, error)
	ListByDeal(ctx context.Context, dealID id.DealID, status models.Status) ([]*models.Registration, error)
}

// Service runs the register/approve/reject workflow.
//
// Authorization lives here: only a deal's uploader may move a pending
// registration, and only the uploader sees the pending list.
type Service struct {
	store     Store
	deals     ports.DealPort
	directory ports.DirectoryPort
	publisher ports.EventPublisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithPublisher(p ports.EventPublisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithClock fixes the clock. Without it the request time captured by the
// requesttime middleware is used, falling back to time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New builds the workflow. directory may be nil, in which case pending
// entries carry no identity.
func New(store Store, deals ports.DealPort, directory ports.DirectoryPort, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("registration store is required")
	}
	if deals == nil {
		return nil, errors.New("deal port is required")
	}
	s := &Service{
		store:     store,
		deals:     deals,
		directory: directory,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Register records viewer's interest in a deal. Calling it again for the
// same pair returns the existing record unchanged.
func (s *Service) Register(ctx context.Context, viewer id.UserID, dealID id.DealID) (*models.Registration, error) {
	if viewer.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthenticated, "viewer identity required")
	}
	deal, err := s.deals.GetDeal(ctx, dealID)
	if err != nil {
		return nil, err
	}

	now := s.timestamp(ctx)
	candidate, err := models.NewRegistration(id.NewRegistrationID(), viewer, deal.ID, deal.Level(), now)
	if err != nil {
		return nil, err
	}
	reg, created, err := s.store.InsertIfAbsent(ctx, candidate)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record registration")
	}
	if !created {
		s.log(ctx, slog.LevelDebug, "registration already exists",
			"registration_id", reg.ID.String(), "deal_id", dealID.String(), "user_id", viewer.String())
		return reg, nil
	}

	s.metrics.IncrementCreated(string(reg.Status))
	s.log(ctx, slog.LevelInfo, "registration created",
		"registration_id", reg.ID.String(),
		"deal_id", dealID.String(),
		"user_id", viewer.String(),
		"privacy_level", string(deal.Level()),
		"status", string(reg.Status),
	)
	s.publish(ctx, models.EventFor(reg, deal.UploaderID, now))
	return reg, nil
}

// Approve moves a pending registration to APPROVED.
func (s *Service) Approve(ctx context.Context, regID id.RegistrationID, actor id.UserID) (*models.Registration, error) {
	return s.transition(ctx, regID, actor, models.StatusApproved)
}

// Reject moves a pending registration to REJECTED.
func (s *Service) Reject(ctx context.Context, regID id.RegistrationID, actor id.UserID) (*models.Registration, error) {
	return s.transition(ctx, regID, actor, models.StatusRejected)
}

func (s *Service) transition(ctx context.Context, regID id.RegistrationID, actor id.UserID, next models.Status) (*models.Registration, error) {
	if actor.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthenticated, "viewer identity required")
	}
	reg, err := s.store.FindByID(ctx, regID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "registration not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load registration")
	}
	deal, err := s.deals.GetDeal(ctx, reg.DealID)
	if err != nil {
		return nil, err
	}
	if !deal.IsOwnedBy(actor) {
		s.metrics.IncrementTransition(string(next), "forbidden")
		s.log(ctx, slog.LevelWarn, "registration transition denied",
			"registration_id", regID.String(), "deal_id", reg.DealID.String(), "actor_id", actor.String())
		return nil, dErrors.New(dErrors.CodeForbidden, "only the deal owner can act on registrations")
	}
	if err := reg.CanTransitionTo(next); err != nil {
		s.metrics.IncrementTransition(string(next), "invalid_state")
		return nil, err
	}

	now := s.timestamp(ctx)
	updated, err := s.store.UpdateStatusIfCurrent(ctx, regID, models.StatusRegistered, next, now)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrInvalidState):
			// A concurrent approve/reject won.
			s.metrics.IncrementTransition(string(next), "invalid_state")
			return nil, dErrors.New(dErrors.CodeInvalidState, "registration is no longer pending")
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "registration not found")
		default:
			s.metrics.IncrementTransition(string(next), "error")
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update registration")
		}
	}

	s.metrics.IncrementTransition(string(next), "applied")
	s.log(ctx, slog.LevelInfo, "registration status changed",
		"registration_id", regID.String(),
		"deal_id", updated.DealID.String(),
		"user_id", updated.UserID.String(),
		"actor_id", actor.String(),
		"status", string(updated.Status),
	)
	s.publish(ctx, models.EventFor(updated, deal.UploaderID, now))
	return updated, nil
}

// ListPending returns the deal's REGISTERED records, oldest first, joined
// with requester identity. Non-owners get an empty list.
func (s *Service) ListPending(ctx context.Context, dealID id.DealID, actor id.UserID) ([]models.PendingRegistration, error) {
	if actor.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthenticated, "viewer identity required")
	}
	deal, err := s.deals.GetDeal(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if !deal.IsOwnedBy(actor) {
		return []models.PendingRegistration{}, nil
	}

	records, err := s.store.ListByDeal(ctx, dealID, models.StatusRegistered)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registrations")
	}
	pending := make([]models.PendingRegistration, 0, len(records))
	for _, reg := range records {
		entry := models.PendingRegistration{Registration: *reg}
		if s.directory != nil {
			identity, err := s.directory.GetDisplayIdentity(ctx, reg.UserID)
			if err != nil {
				s.log(ctx, slog.LevelWarn, "directory lookup failed",
					"user_id", reg.UserID.String(), "error", err)
			} else {
				entry.Identity = identity
			}
		}
		pending = append(pending, entry)
	}
	return pending, nil
}

// FindForViewer returns the viewer's registration on a deal, or nil when the
// viewer has not registered. Anonymous viewers never have one.
func (s *Service) FindForViewer(ctx context.Context, viewer id.UserID, dealID id.DealID) (*models.Registration, error) {
	if viewer.IsNil() {
		return nil, nil
	}
	reg, err := s.store.FindByPair(ctx, viewer, dealID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return reg, nil
}

func (s *Service) publish(ctx context.Context, event models.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.metrics.IncrementPublishFailure()
		s.log(ctx, slog.LevelWarn, "failed to publish registration event",
			"event_type", string(event.Type), "registration_id", event.RegistrationID.String(), "error", err)
	}
}

func (s *Service) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if s.logger == nil {
		return
	}
	if requestID := middleware.GetReqID(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	s.logger.Log(ctx, level, msg, args...)
}

func (s *Service) timestamp(ctx context.Context) time.Time {
	if s.now != nil {
		return s.now()
	}
	return requestcontext.Now(ctx).UTC()
}
