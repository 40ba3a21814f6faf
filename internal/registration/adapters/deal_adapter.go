package adapters

import (
	"context"
	"errors"

	dealModels "github.com/nraford7/matchmaker-gem-68-sub000/internal/deal/models"
	dealStore "github.com/nraford7/matchmaker-gem-68-sub000/internal/deal/store"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/ports"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
	dErrors "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain-errors"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/platform/sentinel"
)

// DealAdapter implements ports.DealPort over a deal store or cache.
type DealAdapter struct {
	deals dealStore.Lookup
}

func NewDealAdapter(deals dealStore.Lookup) ports.DealPort {
	return &DealAdapter{deals: deals}
}

func (a *DealAdapter) GetDeal(ctx context.Context, dealID id.DealID) (*dealModels.Deal, error) {
	deal, err := a.deals.FindByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "deal not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load deal")
	}
	return deal, nil
}
