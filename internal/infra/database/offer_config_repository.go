package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/xavierca1/ligue-outreach/internal/entity"
)

// offer_config holds at most one row, pinned to this id.
const offerConfigID = 1

type OfferConfigRepository struct {
	DB *sql.DB
	sb sq.StatementBuilderType
}

func NewOfferConfigRepository(db *sql.DB) *OfferConfigRepository {
	return &OfferConfigRepository{
		DB: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *OfferConfigRepository) Get(ctx context.Context) (*entity.OfferConfig, error) {
	sqlStr, args, err := r.sb.
		Select("niche_name", "icp_description", "offer_description", "from_name", "from_email", "calendly_url", "created_at", "updated_at").
		From("offer_config").
		Where(sq.Eq{"id": offerConfigID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build offer config select: %w", err)
	}

	var c entity.OfferConfig
	err = r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(
		&c.NicheName,
		&c.ICPDescription,
		&c.OfferDescription,
		&c.FromName,
		&c.FromEmail,
		&c.CalendlyURL,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrOfferConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query offer config: %w", err)
	}
	return &c, nil
}

// Upsert writes the singleton. CreatedAt of an existing row is preserved and
// copied back into cfg.
func (r *OfferConfigRepository) Upsert(ctx context.Context, cfg *entity.OfferConfig) error {
	sqlStr, args, err := r.sb.
		Insert("offer_config").
		Columns("id", "niche_name", "icp_description", "offer_description", "from_name", "from_email", "calendly_url", "created_at", "updated_at").
		Values(offerConfigID, cfg.NicheName, cfg.ICPDescription, cfg.OfferDescription, cfg.FromName, cfg.FromEmail, cfg.CalendlyURL, cfg.CreatedAt, cfg.UpdatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			niche_name = EXCLUDED.niche_name,
			icp_description = EXCLUDED.icp_description,
			offer_description = EXCLUDED.offer_description,
			from_name = EXCLUDED.from_name,
			from_email = EXCLUDED.from_email,
			calendly_url = EXCLUDED.calendly_url,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at, updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build offer config upsert: %w", err)
	}

	if err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&cfg.CreatedAt, &cfg.UpdatedAt); err != nil {
		return fmt.Errorf("upsert offer config: %w", err)
	}
	return nil
}
