package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nraford7/matchmaker-gem-68-sub000/internal/directory/models"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/platform/sentinel"
)

// PostgresStore reads the directory_users table maintained by the account service.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, user models.User) error {
	query := `
		INSERT INTO directory_users (id, name, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email
	`
	if _, err := s.db.ExecContext(ctx, query, uuid.UUID(user.ID), user.Name, user.Email); err != nil {
		return fmt.Errorf("save directory user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	query := `SELECT id, name, email FROM directory_users WHERE id = $1`
	var (
		u   models.User
		uid uuid.UUID
	)
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(userID)).Scan(&uid, &u.Name, &u.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find directory user: %w", err)
	}
	u.ID = id.UserID(uid)
	return &u, nil
}
