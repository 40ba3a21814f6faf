package models

import (
	"time"

	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
)

// EventType names a registration lifecycle notification.
type EventType string

const (
	EventRequested EventType = "registration.requested"
	EventApproved  EventType = "registration.approved"
	EventRejected  EventType = "registration.rejected"
)

// Event notifies the owner and viewer UIs of a registration change.
// It is a notification feed, not an audit record.
type Event struct {
	Type           EventType         `json:"type"`
	RegistrationID id.RegistrationID `json:"registration_id"`
	DealID         id.DealID         `json:"deal_id"`
	UserID         id.UserID         `json:"user_id"`
	OwnerID        *id.UserID        `json:"owner_id,omitempty"`
	Status         Status            `json:"status"`
	OccurredAt     time.Time         `json:"occurred_at"`
}

// EventFor builds the event describing reg's current status.
func EventFor(reg *Registration, owner *id.UserID, at time.Time) Event {
	t := EventRequested
	switch reg.Status {
	case StatusApproved:
		t = EventApproved
	case StatusRejected:
		t = EventRejected
	}
	return Event{
		Type:           t,
		RegistrationID: reg.ID,
		DealID:         reg.DealID,
		UserID:         reg.UserID,
		OwnerID:        owner,
		Status:         reg.Status,
		OccurredAt:     at,
	}
}
