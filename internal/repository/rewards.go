package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dossinstitute/eventquest/internal/model"

	"github.com/Masterminds/squirrel"
)

type reward struct {
	RewardID          int64  `db:"reward_id"`
	AttendeeID        int64  `db:"attendee_id"`
	RewardPoolID      int64  `db:"reward_pool_id"`
	Amount            int64  `db:"amount"`
	RewardType        string `db:"reward_type"`
	PoolWalletAddress string `db:"pool_wallet_address"`
}

func (rw *reward) toModel() *model.Reward {
	return &model.Reward{
		RewardID:          rw.RewardID,
		AttendeeID:        rw.AttendeeID,
		RewardPoolID:      rw.RewardPoolID,
		Amount:            rw.Amount,
		RewardType:        rw.RewardType,
		PoolWalletAddress: rw.PoolWalletAddress,
	}
}

var rewardColumns = []string{
	"reward_id", "attendee_id", "reward_pool_id",
	"amount", "reward_type", "pool_wallet_address",
}

func rewardSetMap(rw *model.Reward) map[string]interface{} {
	return map[string]interface{}{
		"attendee_id":         rw.AttendeeID,
		"reward_pool_id":      rw.RewardPoolID,
		"amount":              rw.Amount,
		"reward_type":         rw.RewardType,
		"pool_wallet_address": rw.PoolWalletAddress,
	}
}

func (r *Repository) CreateReward(ctx context.Context, rw *model.Reward) (int64, error) {
	query, args, err := squirrel.
		Insert("rewards").
		SetMap(rewardSetMap(rw)).
		Suffix("RETURNING reward_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build reward insert query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("failed to insert reward: %w", err)
	}
	return id, nil
}

func (r *Repository) GetReward(ctx context.Context, id int64) (*model.Reward, error) {
	query, args, err := squirrel.
		Select(rewardColumns...).
		From("rewards").
		Where(squirrel.Eq{"reward_id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build reward select query: %w", err)
	}

	var rw reward
	if err := r.db.GetContext(ctx, &rw, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reward: %w", err)
	}
	return rw.toModel(), nil
}

func (r *Repository) UpdateReward(ctx context.Context, rw *model.Reward) error {
	query, args, err := squirrel.
		Update("rewards").
		SetMap(rewardSetMap(rw)).
		Where(squirrel.Eq{"reward_id": rw.RewardID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build reward update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update reward: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) DeleteReward(ctx context.Context, id int64) error {
	query, args, err := squirrel.
		Delete("rewards").
		Where(squirrel.Eq{"reward_id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build reward delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete reward: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) ListRewards(ctx context.Context) ([]*model.Reward, error) {
	query, args, err := squirrel.
		Select(rewardColumns...).
		From("rewards").
		OrderBy("reward_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build reward list query: %w", err)
	}

	var rows []reward
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}

	rewards := make([]*model.Reward, len(rows))
	for i := range rows {
		rewards[i] = rows[i].toModel()
	}
	return rewards, nil
}

func (r *Repository) GetRewardCount(ctx context.Context) (int64, error) {
	return r.count(ctx, "rewards")
}

func (r *Repository) GetRewardByIndex(ctx context.Context, index int64) (*model.Reward, error) {
	query, args, err := squirrel.
		Select(rewardColumns...).
		From("rewards").
		OrderBy("reward_id").
		Offset(uint64(index)).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build reward index query: %w", err)
	}

	var rw reward
	if err := r.db.GetContext(ctx, &rw, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reward by index: %w", err)
	}
	return rw.toModel(), nil
}
