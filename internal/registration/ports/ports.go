package ports

import (
	"context"

	dealModels "github.com/nraford7/matchmaker-gem-68-sub000/internal/deal/models"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/models"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
)

// DealPort resolves the deal a registration refers to.
// Returns a CodeNotFound domain error when the deal does not exist.
type DealPort interface {
	GetDeal(ctx context.Context, dealID id.DealID) (*dealModels.Deal, error)
}

// DirectoryPort supplies display identity for the owner's review list.
type DirectoryPort interface {
	GetDisplayIdentity(ctx context.Context, userID id.UserID) (models.Identity, error)
}

// EventPublisher emits registration lifecycle notifications.
type EventPublisher interface {
	Publish(ctx context.Context, event models.Event) error
}
