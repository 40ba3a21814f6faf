package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/models"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/platform/sentinel"
)

// PostgresStore persists registrations in PostgreSQL. The unique constraint
// on (user_id, deal_id) backs InsertIfAbsent; updates are conditional on the
// current status.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const registrationColumns = `id, user_id, deal_id, status, created_at, updated_at`

func (s *PostgresStore) FindByPair(ctx context.Context, userID id.UserID, dealID id.DealID) (*models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM deal_registrations WHERE user_id = $1 AND deal_id = $2`
	reg, err := scanRegistration(s.db.QueryRowContext(ctx, query, uuid.UUID(userID), uuid.UUID(dealID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find registration by pair: %w", err)
	}
	return reg, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, regID id.RegistrationID) (*models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM deal_registrations WHERE id = $1`
	reg, err := scanRegistration(s.db.QueryRowContext(ctx, query, uuid.UUID(regID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find registration by id: %w", err)
	}
	return reg, nil
}

// InsertIfAbsent relies on ON CONFLICT DO NOTHING, so concurrent inserts for
// the same pair leave exactly one row. The loser reads the winner's row.
func (s *PostgresStore) InsertIfAbsent(ctx context.Context, reg *models.Registration) (*models.Registration, bool, error) {
	query := `
		INSERT INTO deal_registrations (` + registrationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, deal_id) DO NOTHING
		RETURNING ` + registrationColumns
	stored, err := scanRegistration(s.db.QueryRowContext(ctx, query,
		uuid.UUID(reg.ID),
		uuid.UUID(reg.UserID),
		uuid.UUID(reg.DealID),
		string(reg.Status),
		reg.CreatedAt,
		reg.UpdatedAt,
	))
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("insert registration: %w", err)
	}
	existing, err := s.FindByPair(ctx, reg.UserID, reg.DealID)
	if err != nil {
		return nil, false, fmt.Errorf("read existing registration: %w", err)
	}
	return existing, false, nil
}

func (s *PostgresStore) UpdateStatusIfCurrent(ctx context.Context, regID id.RegistrationID, expected, next models.Status, now time.Time) (*models.Registration, error) {
	query := `
		UPDATE deal_registrations
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
		RETURNING ` + registrationColumns
	reg, err := scanRegistration(s.db.QueryRowContext(ctx, query, uuid.UUID(regID), string(expected), string(next), now))
	if err == nil {
		return reg, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update registration status: %w", err)
	}
	// No row matched: either the record is gone or its status moved on.
	if _, findErr := s.FindByID(ctx, regID); findErr != nil {
		return nil, findErr
	}
	return nil, sentinel.ErrInvalidState
}

func (s *PostgresStore) ListByDeal(ctx context.Context, dealID id.DealID, status models.Status) ([]*models.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM deal_registrations
		WHERE deal_id = $1 AND status = $2
		ORDER BY created_at ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(dealID), string(status))
	if err != nil {
		return nil, fmt.Errorf("list registrations by deal: %w", err)
	}
	defer rows.Close()

	var out []*models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		out = append(out, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registrations: %w", err)
	}
	return out, nil
}

type registrationRow interface {
	Scan(dest ...any) error
}

func scanRegistration(row registrationRow) (*models.Registration, error) {
	var (
		reg                   models.Registration
		regID, userID, dealID uuid.UUID
		status                string
	)
	if err := row.Scan(&regID, &userID, &dealID, &status, &reg.CreatedAt, &reg.UpdatedAt); err != nil {
		return nil, err
	}
	reg.ID = id.RegistrationID(regID)
	reg.UserID = id.UserID(userID)
	reg.DealID = id.DealID(dealID)
	reg.Status = models.Status(status)
	return &reg, nil
}
