package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/models"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
	dErrors "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain-errors"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/platform/httputil"
	authmw "github.com/nraford7/matchmaker-gem-68-sub000/pkg/platform/middleware/auth"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/requestcontext"
)

// Service defines the interface for registration workflow operations.
type Service interface {
	Register(ctx context.Context, viewer id.UserID, dealID id.DealID) (*models.Registration, error)
	Approve(ctx context.Context, regID id.RegistrationID, actor id.UserID) (*models.Registration, error)
	Reject(ctx context.Context, regID id.RegistrationID, actor id.UserID) (*models.Registration, error)
	ListPending(ctx context.Context, dealID id.DealID, actor id.UserID) ([]models.PendingRegistration, error)
}

// PendingListResponse is the body of the owner review list.
type PendingListResponse struct {
	Registrations []models.PendingRegistration `json:"registrations"`
}

// Handler handles registration workflow endpoints. All routes require auth.
type Handler struct {
	registrations Service
	logger        *slog.Logger
	jwtValidator  authmw.JWTValidator
}

// New creates a new registration Handler.
func New(registrations Service, jwtValidator authmw.JWTValidator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		registrations: registrations,
		logger:        logger,
		jwtValidator:  jwtValidator,
	}
}

// Register registers the workflow routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/deals/{dealID}/registrations", h.handleRegister)
		r.Get("/deals/{dealID}/registrations/pending", h.handleListPending)
		r.Post("/registrations/{registrationID}/approve", h.handleApprove)
		r.Post("/registrations/{registrationID}/reject", h.handleReject)
	})
}

// handleRegister records the viewer's interest. Repeating the call returns
// the existing registration unchanged.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetReqID(ctx)

	dealID, err := id.ParseDealID(chi.URLParam(r, "dealID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid deal id"))
		return
	}

	reg, err := h.registrations.Register(ctx, requestcontext.UserID(ctx), dealID)
	if err != nil {
		h.logFailure(ctx, "failed to register for deal", err,
			"deal_id", dealID.String(),
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reg)
}

func (h *Handler) handleListPending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetReqID(ctx)

	dealID, err := id.ParseDealID(chi.URLParam(r, "dealID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid deal id"))
		return
	}

	pending, err := h.registrations.ListPending(ctx, dealID, requestcontext.UserID(ctx))
	if err != nil {
		h.logFailure(ctx, "failed to list pending registrations", err,
			"deal_id", dealID.String(),
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}
	if pending == nil {
		pending = []models.PendingRegistration{}
	}
	httputil.WriteJSON(w, http.StatusOK, PendingListResponse{Registrations: pending})
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.handleDecision(w, r, "approve", h.registrations.Approve)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.handleDecision(w, r, "reject", h.registrations.Reject)
}

type decisionFunc func(ctx context.Context, regID id.RegistrationID, actor id.UserID) (*models.Registration, error)

func (h *Handler) handleDecision(w http.ResponseWriter, r *http.Request, action string, decide decisionFunc) {
	ctx := r.Context()
	requestID := middleware.GetReqID(ctx)

	regID, err := id.ParseRegistrationID(chi.URLParam(r, "registrationID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid registration id"))
		return
	}

	reg, err := decide(ctx, regID, requestcontext.UserID(ctx))
	if err != nil {
		h.logFailure(ctx, "failed to "+action+" registration", err,
			"registration_id", regID.String(),
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reg)
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err.Error())
	switch dErrors.CodeOf(err) {
	case dErrors.CodeInternal:
		h.logger.ErrorContext(ctx, msg, args...)
	case dErrors.CodeForbidden:
		h.logger.WarnContext(ctx, msg, args...)
	default:
		h.logger.DebugContext(ctx, msg, args...)
	}
}
