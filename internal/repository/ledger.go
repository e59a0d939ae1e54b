package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"

	"github.com/dossinstitute/eventquest/internal/model"

	"github.com/Masterminds/squirrel"
)

type rewardConfig struct {
	QuestID      int64  `db:"quest_id"`
	RewardType   string `db:"reward_type"`
	TokenAddress string `db:"token_address"`
	Tier         int    `db:"tier"`
	Amount       string `db:"amount"`
}

// SetRewardConfig installs or replaces the payout configured for a quest.
func (r *Repository) SetRewardConfig(ctx context.Context, c *model.RewardConfig) error {
	query, args, err := squirrel.
		Insert("reward_configs").
		Columns("quest_id", "reward_type", "token_address", "tier", "amount").
		Values(c.QuestID, c.RewardType, c.TokenAddress, c.Tier, c.Amount.String()).
		Suffix(`ON CONFLICT (quest_id) DO UPDATE SET
			reward_type = EXCLUDED.reward_type,
			token_address = EXCLUDED.token_address,
			tier = EXCLUDED.tier,
			amount = EXCLUDED.amount`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build reward config upsert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to set reward config: %w", err)
	}
	return nil
}

func (r *Repository) GetRewardConfig(ctx context.Context, questID int64) (*model.RewardConfig, error) {
	query, args, err := squirrel.
		Select("quest_id", "reward_type", "token_address", "tier", "amount").
		From("reward_configs").
		Where(squirrel.Eq{"quest_id": questID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build reward config select query: %w", err)
	}

	var row rewardConfig
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reward config: %w", err)
	}

	amount, ok := new(big.Int).SetString(row.Amount, 10)
	if !ok {
		return nil, fmt.Errorf("invalid stored reward amount %q", row.Amount)
	}

	return &model.RewardConfig{
		QuestID:      row.QuestID,
		RewardType:   row.RewardType,
		TokenAddress: row.TokenAddress,
		Tier:         row.Tier,
		Amount:       amount,
	}, nil
}

// IsDistributed reports whether the (quest, recipient) pair already has a
// ledger entry.
func (r *Repository) IsDistributed(ctx context.Context, questID int64, recipient string) (bool, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From("reward_distributions").
		Where(squirrel.Eq{"quest_id": questID, "recipient": recipient}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build distribution check query: %w", err)
	}

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("failed to check distribution: %w", err)
	}
	return count > 0, nil
}

// MarkDistributed writes the ledger entry for a completed payout. A second
// mark for the same pair returns ErrAlreadyDistributed; entries are never
// updated or deleted.
func (r *Repository) MarkDistributed(ctx context.Context, d *model.Distribution) error {
	query, args, err := squirrel.
		Insert("reward_distributions").
		Columns("quest_id", "recipient", "tx_ref").
		Values(d.QuestID, d.Recipient, d.TxRef).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build distribution insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyDistributed
		}
		return fmt.Errorf("failed to mark distribution: %w", err)
	}
	return nil
}

// GetDistribution returns the ledger entry for one (quest, recipient) pair.
func (r *Repository) GetDistribution(ctx context.Context, questID int64, recipient string) (*model.Distribution, error) {
	query, args, err := squirrel.
		Select("quest_id", "recipient", "tx_ref", "distributed_at").
		From("reward_distributions").
		Where(squirrel.Eq{"quest_id": questID, "recipient": recipient}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build distribution select query: %w", err)
	}

	var d struct {
		QuestID       int64        `db:"quest_id"`
		Recipient     string       `db:"recipient"`
		TxRef         string       `db:"tx_ref"`
		DistributedAt sql.NullTime `db:"distributed_at"`
	}
	if err := r.db.GetContext(ctx, &d, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get distribution: %w", err)
	}

	return &model.Distribution{
		QuestID:       d.QuestID,
		Recipient:     d.Recipient,
		TxRef:         d.TxRef,
		DistributedAt: d.DistributedAt.Time,
	}, nil
}
