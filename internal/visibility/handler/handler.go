package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/samber/lo"

	dealModels "github.com/nraford7/matchmaker-gem-68-sub000/internal/deal/models"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/visibility"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
	dErrors "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain-errors"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/platform/httputil"
	authmw "github.com/nraford7/matchmaker-gem-68-sub000/pkg/platform/middleware/auth"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/requestcontext"
)

// MaxBatchIDs caps GET /deals?ids=.
const MaxBatchIDs = 100

// Gate defines the visibility operations the handler needs.
type Gate interface {
	ResolveByID(ctx context.Context, dealID id.DealID, viewer id.UserID) (*dealModels.Deal, error)
	ResolveIDs(ctx context.Context, dealIDs []id.DealID, viewer id.UserID) []*dealModels.Deal
	CheckAccess(ctx context.Context, dealID id.DealID, viewer id.UserID) (*visibility.Access, error)
}

// DealListResponse is the body of GET /deals.
type DealListResponse struct {
	Deals []*dealModels.Deal `json:"deals"`
}

// Handler serves deal reads. Every route accepts anonymous viewers.
type Handler struct {
	gate         Gate
	logger       *slog.Logger
	jwtValidator authmw.JWTValidator
}

func New(gate Gate, jwtValidator authmw.JWTValidator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		gate:         gate,
		logger:       logger,
		jwtValidator: jwtValidator,
	}
}

// Register registers the deal read routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(authmw.OptionalAuth(h.jwtValidator, h.logger))
		r.Get("/deals", h.handleListDeals)
		r.Get("/deals/{dealID}", h.handleGetDeal)
		r.Get("/deals/{dealID}/access", h.handleCheckAccess)
	})
}

func (h *Handler) handleGetDeal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetReqID(ctx)

	dealID, err := id.ParseDealID(chi.URLParam(r, "dealID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid deal id"))
		return
	}

	deal, err := h.gate.ResolveByID(ctx, dealID, requestcontext.UserID(ctx))
	if err != nil {
		h.logFailure(ctx, "failed to resolve deal", err, "deal_id", dealID.String(), "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, deal)
}

func (h *Handler) handleListDeals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dealIDs, err := parseIDs(r.URL.Query().Get("ids"))
	if err != nil {
		h.logger.WarnContext(ctx, "invalid deal list request",
			"request_id", middleware.GetReqID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	deals := h.gate.ResolveIDs(ctx, dealIDs, requestcontext.UserID(ctx))
	if deals == nil {
		deals = []*dealModels.Deal{}
	}
	httputil.WriteJSON(w, http.StatusOK, DealListResponse{Deals: deals})
}

func (h *Handler) handleCheckAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetReqID(ctx)

	dealID, err := id.ParseDealID(chi.URLParam(r, "dealID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid deal id"))
		return
	}

	access, err := h.gate.CheckAccess(ctx, dealID, requestcontext.UserID(ctx))
	if err != nil {
		h.logFailure(ctx, "failed to check deal access", err, "deal_id", dealID.String(), "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, access)
}

// logFailure logs internal errors at error level and client errors at debug.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err.Error())
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, args...)
		return
	}
	h.logger.DebugContext(ctx, msg, args...)
}

// parseIDs reads a comma separated id list, dropping blanks and duplicates
// while keeping first-seen order.
func parseIDs(raw string) ([]id.DealID, error) {
	parts := lo.Uniq(lo.Compact(lo.Map(strings.Split(raw, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})))
	if len(parts) > MaxBatchIDs {
		return nil, dErrors.New(dErrors.CodeBadRequest, "too many deal ids")
	}
	dealIDs := make([]id.DealID, 0, len(parts))
	for _, part := range parts {
		dealID, err := id.ParseDealID(part)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid deal id: "+part)
		}
		dealIDs = append(dealIDs, dealID)
	}
	return dealIDs, nil
}
