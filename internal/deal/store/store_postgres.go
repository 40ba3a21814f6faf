package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/nraford7/matchmaker-gem-68-sub000/internal/deal/models"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/platform/sentinel"
)

// PostgresStore reads and writes deals in PostgreSQL.
// Deal CRUD belongs to another service; Save exists for seeding and tests.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const dealColumns = `id, uploader_id, privacy_level, stage, name, description, irr, time_horizon,
		location, check_size_required, sector_tags, geography_tags, created_at, updated_at`

func (s *PostgresStore) Save(ctx context.Context, deal *models.Deal) error {
	query := `
		INSERT INTO deals (` + dealColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			uploader_id = EXCLUDED.uploader_id,
			privacy_level = EXCLUDED.privacy_level,
			stage = EXCLUDED.stage,
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			irr = EXCLUDED.irr,
			time_horizon = EXCLUDED.time_horizon,
			location = EXCLUDED.location,
			check_size_required = EXCLUDED.check_size_required,
			sector_tags = EXCLUDED.sector_tags,
			geography_tags = EXCLUDED.geography_tags,
			updated_at = EXCLUDED.updated_at
	`
	var uploader *uuid.UUID
	if deal.UploaderID != nil {
		u := uuid.UUID(*deal.UploaderID)
		uploader = &u
	}
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(deal.ID),
		uploader,
		string(deal.Level()),
		deal.Stage,
		deal.Name,
		deal.Description,
		deal.IRR,
		deal.TimeHorizon,
		deal.Location,
		deal.CheckSizeRequired,
		pq.Array(models.NormalizeTags(deal.SectorTags)),
		pq.Array(models.NormalizeTags(deal.GeographyTags)),
		deal.CreatedAt,
		deal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save deal: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, dealID id.DealID) (*models.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = $1`
	deal, err := scanDeal(s.db.QueryRowContext(ctx, query, uuid.UUID(dealID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find deal by id: %w", err)
	}
	return deal, nil
}

type dealRow interface {
	Scan(dest ...any) error
}

func scanDeal(row dealRow) (*models.Deal, error) {
	var (
		deal         models.Deal
		dealID       uuid.UUID
		uploader     uuid.NullUUID
		level        string
		irr          sql.NullFloat64
		checkSize    sql.NullInt64
		sectorTags   pq.StringArray
		geographyTag pq.StringArray
	)
	if err := row.Scan(
		&dealID,
		&uploader,
		&level,
		&deal.Stage,
		&deal.Name,
		&deal.Description,
		&irr,
		&deal.TimeHorizon,
		&deal.Location,
		&checkSize,
		&sectorTags,
		&geographyTag,
		&deal.CreatedAt,
		&deal.UpdatedAt,
	); err != nil {
		return nil, err
	}
	deal.ID = id.DealID(dealID)
	if uploader.Valid {
		u := id.UserID(uploader.UUID)
		deal.UploaderID = &u
	}
	deal.PrivacyLevel = id.PrivacyLevel(level).Normalize()
	if irr.Valid {
		deal.IRR = &irr.Float64
	}
	if checkSize.Valid {
		deal.CheckSizeRequired = &checkSize.Int64
	}
	deal.SectorTags = []string(sectorTags)
	deal.GeographyTags = []string(geographyTag)
	return &deal, nil
}
