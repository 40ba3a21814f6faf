//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/nraford7/matchmaker-gem-68-sub000/internal/directory/models"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/directory/store"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/platform/sentinel"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/testutil/containers"
)

type PostgresDirectorySuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresDirectorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresDirectorySuite))
}

func (s *PostgresDirectorySuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresDirectorySuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "directory_users"))
}

func (s *PostgresDirectorySuite) TestSaveAndFind() {
	ctx := context.Background()
	user := models.User{ID: id.UserID(uuid.New()), Name: "Grace Hopper", Email: "grace@example.com"}

	_, err := s.store.FindByID(ctx, user.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.Save(ctx, user))
	user.Name = "Rear Admiral Hopper"
	s.Require().NoError(s.store.Save(ctx, user), "save upserts")

	got, err := s.store.FindByID(ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(user, *got)
}
