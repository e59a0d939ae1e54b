package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dossinstitute/eventquest/internal/model"

	"github.com/Masterminds/squirrel"
)

type rewardPool struct {
	RewardPoolID   int64 `db:"reward_pool_id"`
	TransferAmount int64 `db:"transfer_amount"`
	QuestEventID   int64 `db:"quest_event_id"`
	SponsorID      int64 `db:"sponsor_id"`
}

func (p *rewardPool) toModel() *model.RewardPool {
	return &model.RewardPool{
		RewardPoolID:   p.RewardPoolID,
		TransferAmount: p.TransferAmount,
		QuestEventID:   p.QuestEventID,
		SponsorID:      p.SponsorID,
	}
}

var rewardPoolColumns = []string{
	"reward_pool_id", "transfer_amount", "quest_event_id", "sponsor_id",
}

func (r *Repository) CreateRewardPool(ctx context.Context, p *model.RewardPool) (int64, error) {
	query, args, err := squirrel.
		Insert("reward_pools").
		Columns("transfer_amount", "quest_event_id", "sponsor_id").
		Values(p.TransferAmount, p.QuestEventID, p.SponsorID).
		Suffix("RETURNING reward_pool_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build reward pool insert query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("failed to insert reward pool: %w", err)
	}
	return id, nil
}

func (r *Repository) GetRewardPool(ctx context.Context, id int64) (*model.RewardPool, error) {
	query, args, err := squirrel.
		Select(rewardPoolColumns...).
		From("reward_pools").
		Where(squirrel.Eq{"reward_pool_id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build reward pool select query: %w", err)
	}

	var p rewardPool
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reward pool: %w", err)
	}
	return p.toModel(), nil
}

func (r *Repository) UpdateRewardPool(ctx context.Context, p *model.RewardPool) error {
	query, args, err := squirrel.
		Update("reward_pools").
		Set("transfer_amount", p.TransferAmount).
		Set("quest_event_id", p.QuestEventID).
		Set("sponsor_id", p.SponsorID).
		Where(squirrel.Eq{"reward_pool_id": p.RewardPoolID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build reward pool update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update reward pool: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) DeleteRewardPool(ctx context.Context, id int64) error {
	query, args, err := squirrel.
		Delete("reward_pools").
		Where(squirrel.Eq{"reward_pool_id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build reward pool delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete reward pool: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) ListRewardPools(ctx context.Context) ([]*model.RewardPool, error) {
	query, args, err := squirrel.
		Select(rewardPoolColumns...).
		From("reward_pools").
		OrderBy("reward_pool_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build reward pool list query: %w", err)
	}

	var rows []rewardPool
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list reward pools: %w", err)
	}

	pools := make([]*model.RewardPool, len(rows))
	for i := range rows {
		pools[i] = rows[i].toModel()
	}
	return pools, nil
}

func (r *Repository) GetRewardPoolCount(ctx context.Context) (int64, error) {
	return r.count(ctx, "reward_pools")
}

func (r *Repository) GetRewardPoolByIndex(ctx context.Context, index int64) (*model.RewardPool, error) {
	query, args, err := squirrel.
		Select(rewardPoolColumns...).
		From("reward_pools").
		OrderBy("reward_pool_id").
		Offset(uint64(index)).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build reward pool index query: %w", err)
	}

	var p rewardPool
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reward pool by index: %w", err)
	}
	return p.toModel(), nil
}
