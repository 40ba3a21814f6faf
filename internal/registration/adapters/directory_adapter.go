package adapters

import (
	"context"

	directoryModels "github.com/nraford7/matchmaker-gem-68-sub000/internal/directory/models"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/models"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/ports"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/email"
)

// UserFinder is the directory store read interface.
type UserFinder interface {
	FindByID(ctx context.Context, userID id.UserID) (*directoryModels.User, error)
}

// DirectoryAdapter implements ports.DirectoryPort. A missing display name is
// derived from the email local part.
type DirectoryAdapter struct {
	users UserFinder
}

func NewDirectoryAdapter(users UserFinder) ports.DirectoryPort {
	return &DirectoryAdapter{users: users}
}

func (a *DirectoryAdapter) GetDisplayIdentity(ctx context.Context, userID id.UserID) (models.Identity, error) {
	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		return models.Identity{}, err
	}
	name := user.Name
	if name == "" {
		name = email.DisplayNameFromEmail(user.Email)
	}
	return models.Identity{Name: name, Email: user.Email}, nil
}
