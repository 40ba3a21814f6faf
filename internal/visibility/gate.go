package visibility

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	dealModels "github.com/nraford7/matchmaker-gem-68-sub000/internal/deal/models"
	regModels "github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/models"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/visibility/metrics"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
	dErrors "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain-errors"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/platform/circuit"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/platform/sentinel"
)

var tracer = otel.Tracer("github.com/nraford7/matchmaker-gem-68-sub000/internal/visibility")

var errLookupSuspended = fmt.Errorf("registration lookups suspended: %w", sentinel.ErrUnavailable)

const (
	outcomeFull       = "full"
	outcomeAnonymized = "anonymized"
	outcomeDegraded   = "degraded"

	defaultBatchConcurrency = 8
)

// DealSource loads deals by id. Returns a CodeNotFound domain error for
// unknown deals.
type DealSource interface {
	GetDeal(ctx context.Context, dealID id.DealID) (*dealModels.Deal, error)
}

// RegistrationSource returns the viewer's registration for a deal, or nil
// when none exists.
type RegistrationSource interface {
	FindForViewer(ctx context.Context, viewer id.UserID, dealID id.DealID) (*regModels.Registration, error)
}

// Access is the CheckAccess result.
type Access struct {
	AccessDecision
	IsOwner bool `json:"is_owner"`
}

// Gate answers "what may this viewer see". A nil viewer is an anonymous
// visitor: never an owner, never registered.
type Gate struct {
	deals            DealSource
	registrations    RegistrationSource
	breaker          *circuit.Breaker
	logger           *slog.Logger
	metrics          *metrics.Metrics
	batchConcurrency int
}

type Option func(*Gate)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gate) {
		g.metrics = m
	}
}

// WithBreaker guards registration lookups. While open, lookups are skipped
// and gated deals degrade to the most restrictive view.
func WithBreaker(b *circuit.Breaker) Option {
	return func(g *Gate) {
		g.breaker = b
	}
}

// WithBatchConcurrency bounds parallel work inside one batch resolution.
func WithBatchConcurrency(n int) Option {
	return func(g *Gate) {
		if n > 0 {
			g.batchConcurrency = n
		}
	}
}

func NewGate(deals DealSource, registrations RegistrationSource, opts ...Option) (*Gate, error) {
	if deals == nil {
		return nil, errors.New("deal source is required")
	}
	if registrations == nil {
		return nil, errors.New("registration source is required")
	}
	g := &Gate{
		deals:            deals,
		registrations:    registrations,
		batchConcurrency: defaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.New(slog.DiscardHandler)
	}
	return g, nil
}

// Resolve returns the view of deal that viewer may see. A failed
// registration lookup degrades to the most restrictive view; it is never
// reported as an error.
func (g *Gate) Resolve(ctx context.Context, deal *dealModels.Deal, viewer id.UserID) (*dealModels.Deal, error) {
	if deal == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "deal not found")
	}
	ctx, span := tracer.Start(ctx, "visibility.Gate.Resolve")
	defer span.End()

	view, outcome := g.resolve(ctx, deal, viewer)
	span.SetAttributes(
		attribute.String("deal.id", deal.ID.String()),
		attribute.String("deal.privacy_level", string(deal.Level())),
		attribute.String("visibility.outcome", outcome),
	)
	return view, nil
}

// ResolveByID loads the deal and resolves it.
func (g *Gate) ResolveByID(ctx context.Context, dealID id.DealID, viewer id.UserID) (*dealModels.Deal, error) {
	deal, err := g.deals.GetDeal(ctx, dealID)
	if err != nil {
		return nil, err
	}
	return g.Resolve(ctx, deal, viewer)
}

// ResolveBatch resolves each deal independently and keeps input order. nil
// entries are dropped.
func (g *Gate) ResolveBatch(ctx context.Context, deals []*dealModels.Deal, viewer id.UserID) []*dealModels.Deal {
	ctx, span := tracer.Start(ctx, "visibility.Gate.ResolveBatch")
	defer span.End()
	span.SetAttributes(attribute.Int("batch.size", len(deals)))
	start := time.Now()

	views := make([]*dealModels.Deal, len(deals))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.batchConcurrency)
	for i, deal := range deals {
		if deal == nil {
			continue
		}
		eg.Go(func() error {
			views[i], _ = g.resolve(egCtx, deal, viewer)
			return nil
		})
	}
	_ = eg.Wait()

	g.metrics.ObserveBatch(len(deals), start)
	return lo.Compact(views)
}

// ResolveIDs loads and resolves deals by id, keeping input order. Unknown
// ids and deals that fail to load are left out of the result.
func (g *Gate) ResolveIDs(ctx context.Context, dealIDs []id.DealID, viewer id.UserID) []*dealModels.Deal {
	ctx, span := tracer.Start(ctx, "visibility.Gate.ResolveIDs")
	defer span.End()
	span.SetAttributes(attribute.Int("batch.size", len(dealIDs)))
	start := time.Now()

	views := make([]*dealModels.Deal, len(dealIDs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.batchConcurrency)
	for i, dealID := range dealIDs {
		eg.Go(func() error {
			deal, err := g.deals.GetDeal(egCtx, dealID)
			if err != nil {
				if !dErrors.HasCode(err, dErrors.CodeNotFound) {
					g.logger.WarnContext(egCtx, "deal lookup failed in batch", "deal_id", dealID.String(), "error", err)
				}
				return nil
			}
			views[i], _ = g.resolve(egCtx, deal, viewer)
			return nil
		})
	}
	_ = eg.Wait()

	g.metrics.ObserveBatch(len(dealIDs), start)
	return lo.Compact(views)
}

// CheckAccess reports the decision without transforming the deal. Unlike
// Resolve, a failed registration lookup is returned as an error so callers do
// not show a misleading "request access" prompt.
func (g *Gate) CheckAccess(ctx context.Context, dealID id.DealID, viewer id.UserID) (*Access, error) {
	ctx, span := tracer.Start(ctx, "visibility.Gate.CheckAccess")
	defer span.End()
	span.SetAttributes(attribute.String("deal.id", dealID.String()))

	deal, err := g.deals.GetDeal(ctx, dealID)
	if err != nil {
		span.SetStatus(codes.Error, "deal lookup failed")
		return nil, err
	}
	reg, err := g.lookup(ctx, deal, viewer)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "registration lookup failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check access")
	}
	decision := Evaluate(deal, viewer, reg)
	span.SetAttributes(attribute.Bool("visibility.has_access", decision.HasAccess))
	return &Access{AccessDecision: decision, IsOwner: deal.IsOwnedBy(viewer)}, nil
}

func (g *Gate) resolve(ctx context.Context, deal *dealModels.Deal, viewer id.UserID) (*dealModels.Deal, string) {
	level := deal.Level()
	reg, err := g.lookup(ctx, deal, viewer)
	if err != nil {
		g.logger.WarnContext(ctx, "registration lookup failed, serving most restrictive view",
			"deal_id", deal.ID.String(), "error", err)
		g.metrics.IncrementResolution(outcomeDegraded, string(level))
		return Anonymize(deal, id.PrivacyInvitationOnly), outcomeDegraded
	}
	if Evaluate(deal, viewer, reg).HasAccess {
		g.metrics.IncrementResolution(outcomeFull, string(level))
		return deal.Clone(), outcomeFull
	}
	g.metrics.IncrementResolution(outcomeAnonymized, string(level))
	return Anonymize(deal, level), outcomeAnonymized
}

// lookup fetches the registration only when the decision can depend on it.
func (g *Gate) lookup(ctx context.Context, deal *dealModels.Deal, viewer id.UserID) (*regModels.Registration, error) {
	if !needsRegistration(deal, viewer) || viewer.IsNil() {
		return nil, nil
	}
	if g.breaker != nil && !g.breaker.Allow() {
		g.metrics.IncrementLookup("skipped")
		return nil, errLookupSuspended
	}

	reg, err := g.registrations.FindForViewer(ctx, viewer, deal.ID)
	if err != nil {
		g.metrics.IncrementLookup("error")
		g.recordFailure(ctx)
		return nil, err
	}
	g.recordSuccess(ctx)
	if reg == nil {
		g.metrics.IncrementLookup("miss")
	} else {
		g.metrics.IncrementLookup("hit")
	}
	return reg, nil
}

func (g *Gate) recordFailure(ctx context.Context) {
	if g.breaker == nil {
		return
	}
	if _, change := g.breaker.RecordFailure(); change.Opened {
		g.metrics.SetBreakerOpen(true)
		g.logger.WarnContext(ctx, "registration lookup breaker opened", "breaker", g.breaker.Name())
	}
}

func (g *Gate) recordSuccess(ctx context.Context) {
	if g.breaker == nil {
		return
	}
	if _, change := g.breaker.RecordSuccess(); change.Closed {
		g.metrics.SetBreakerOpen(false)
		g.logger.InfoContext(ctx, "registration lookup breaker closed", "breaker", g.breaker.Name())
	}
}
