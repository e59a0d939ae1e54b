package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dossinstitute/eventquest/internal/model"

	"github.com/Masterminds/squirrel"
)

type sponsor struct {
	SponsorID    int64  `db:"sponsor_id"`
	CompanyName  string `db:"company_name"`
	Wallet       string `db:"wallet"`
	RewardPoolID int64  `db:"reward_pool_id"`
}

func (s *sponsor) toModel() *model.Sponsor {
	return &model.Sponsor{
		SponsorID:    s.SponsorID,
		CompanyName:  s.CompanyName,
		Wallet:       s.Wallet,
		RewardPoolID: s.RewardPoolID,
	}
}

func (r *Repository) CreateSponsor(ctx context.Context, s *model.Sponsor) (int64, error) {
	query, args, err := squirrel.
		Insert("sponsors").
		SetMap(map[string]interface{}{
			"company_name":   s.CompanyName,
			"wallet":         s.Wallet,
			"reward_pool_id": s.RewardPoolID,
		}).
		Suffix("RETURNING sponsor_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sponsor insert query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("failed to insert sponsor: %w", err)
	}
	return id, nil
}

func (r *Repository) GetSponsor(ctx context.Context, sponsorID int64) (*model.Sponsor, error) {
	query, args, err := squirrel.
		Select("sponsor_id", "company_name", "wallet", "reward_pool_id").
		From("sponsors").
		Where(squirrel.Eq{"sponsor_id": sponsorID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sponsor select query: %w", err)
	}

	var s sponsor
	if err := r.db.GetContext(ctx, &s, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sponsor: %w", err)
	}
	return s.toModel(), nil
}

func (r *Repository) UpdateSponsor(ctx context.Context, s *model.Sponsor) error {
	query, args, err := squirrel.
		Update("sponsors").
		SetMap(map[string]interface{}{
			"company_name":   s.CompanyName,
			"wallet":         s.Wallet,
			"reward_pool_id": s.RewardPoolID,
		}).
		Where(squirrel.Eq{"sponsor_id": s.SponsorID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sponsor update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update sponsor: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) DeleteSponsor(ctx context.Context, sponsorID int64) error {
	query, args, err := squirrel.
		Delete("sponsors").
		Where(squirrel.Eq{"sponsor_id": sponsorID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sponsor delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete sponsor: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) ListSponsors(ctx context.Context) ([]*model.Sponsor, error) {
	query, args, err := squirrel.
		Select("sponsor_id", "company_name", "wallet", "reward_pool_id").
		From("sponsors").
		OrderBy("sponsor_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sponsor list query: %w", err)
	}

	var rows []sponsor
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list sponsors: %w", err)
	}

	sponsors := make([]*model.Sponsor, len(rows))
	for i := range rows {
		sponsors[i] = rows[i].toModel()
	}
	return sponsors, nil
}

func (r *Repository) GetSponsorCount(ctx context.Context) (int64, error) {
	return r.count(ctx, "sponsors")
}

func (r *Repository) GetSponsorByIndex(ctx context.Context, index int64) (*model.Sponsor, error) {
	query, args, err := squirrel.
		Select("sponsor_id", "company_name", "wallet", "reward_pool_id").
		From("sponsors").
		OrderBy("sponsor_id").
		Offset(uint64(index)).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sponsor index query: %w", err)
	}

	var s sponsor
	if err := r.db.GetContext(ctx, &s, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sponsor by index: %w", err)
	}
	return s.toModel(), nil
}
