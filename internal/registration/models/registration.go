package models

import (
	"time"

	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
	dErrors "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain-errors"
)

// Status is the lifecycle state of a registration.
type Status string

const (
	StatusRegistered Status = "REGISTERED"
	StatusApproved   Status = "APPROVED"
	StatusRejected   Status = "REJECTED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusRegistered, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo allows REGISTERED → APPROVED and REGISTERED → REJECTED only.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusRegistered && (next == StatusApproved || next == StatusRejected)
}

func (s Status) String() string {
	return string(s)
}

// Registration is a viewer's request for full access to one deal.
//
// Invariants:
//   - at most one Registration exists per (UserID, DealID)
//   - Status only moves out of REGISTERED, and only via the deal owner
//   - records are never deleted
type Registration struct {
	ID        id.RegistrationID `json:"id"`
	UserID    id.UserID         `json:"user_id"`
	DealID    id.DealID         `json:"deal_id"`
	Status    Status            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// InitialStatusFor returns the status a new registration starts in.
// INVITATION_ONLY deals wait for the owner; CONFIDENTIAL registrations are
// self-service and OPEN ones are bookkeeping only.
func InitialStatusFor(level id.PrivacyLevel) Status {
	if level.Normalize() == id.PrivacyInvitationOnly {
		return StatusRegistered
	}
	return StatusApproved
}

func NewRegistration(regID id.RegistrationID, userID id.UserID, dealID id.DealID, level id.PrivacyLevel, now time.Time) (*Registration, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthenticated, "viewer identity required")
	}
	if dealID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "deal id required")
	}
	return &Registration{
		ID:        regID,
		UserID:    userID,
		DealID:    dealID,
		Status:    InitialStatusFor(level),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CanTransitionTo returns InvalidState when the registration is no longer
// pending.
func (r *Registration) CanTransitionTo(next Status) error {
	if !r.Status.CanTransitionTo(next) {
		return dErrors.New(dErrors.CodeInvalidState, "registration is "+string(r.Status)+", not "+string(StatusRegistered))
	}
	return nil
}

// Identity is the display identity of a viewer, read from the directory.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PendingRegistration is a REGISTERED record joined with the requester's
// identity for the owner's review list.
type PendingRegistration struct {
	Registration
	Identity Identity `json:"identity"`
}
