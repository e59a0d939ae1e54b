package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dossinstitute/eventquest/internal/metrics"
	"github.com/dossinstitute/eventquest/internal/model"
	"github.com/dossinstitute/eventquest/internal/repository"
	"github.com/dossinstitute/eventquest/pkg/auth"
	"github.com/dossinstitute/eventquest/pkg/logger"

	"go.uber.org/zap"
)

// RewardService configures per-quest payouts and distributes them at most
// once per (quest, recipient) pair.
type RewardService struct {
	repo     LedgerRepository
	transfer Transferor
}

func NewRewardService(repo LedgerRepository, transfer Transferor) *RewardService {
	return &RewardService{
		repo:     repo,
		transfer: transfer,
	}
}

// SetReward installs or replaces the payout configured for a quest.
func (s *RewardService) SetReward(ctx context.Context, p auth.Principal, c *model.RewardConfig) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	if c.RewardType == "" {
		return ErrRewardTypeRequired
	}
	if err := s.repo.SetRewardConfig(ctx, c); err != nil {
		return fmt.Errorf("failed to set reward: %w", err)
	}
	return nil
}

// GetReward returns the payout configured for a quest.
func (s *RewardService) GetReward(ctx context.Context, questID int64) (*model.RewardConfig, error) {
	c, err := s.repo.GetRewardConfig(ctx, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, err
	}
	return c, nil
}

// DistributeReward pays the configured reward to a registered recipient. The
// ledger is checked before the transfer and written after it settles; a
// recipient is paid at most once per quest, and a failed transfer leaves the
// ledger untouched so the payout can be retried.
func (s *RewardService) DistributeReward(ctx context.Context, p auth.Principal, questID int64, recipient string) (string, error) {
	if !p.IsAdmin() {
		return "", ErrPermissionDenied
	}

	config, err := s.repo.GetRewardConfig(ctx, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrRewardNotConfigured
		}
		return "", fmt.Errorf("failed to load reward config: %w", err)
	}

	// A user record is the only registration distribution requires; quest
	// enrollment is tracked separately and does not gate payouts.
	if _, err := s.repo.GetUserByWallet(ctx, recipient); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotRegistered
		}
		return "", fmt.Errorf("failed to look up recipient: %w", err)
	}

	distributed, err := s.repo.IsDistributed(ctx, questID, recipient)
	if err != nil {
		return "", fmt.Errorf("failed to check ledger: %w", err)
	}
	if distributed {
		return "", ErrRewardDistributed
	}

	txRef, err := s.transfer.Transfer(ctx, config.TokenAddress, recipient, config.Amount)
	if err != nil {
		return "", fmt.Errorf("failed to transfer reward: %w", err)
	}

	if err := s.repo.MarkDistributed(ctx, &model.Distribution{
		QuestID:   questID,
		Recipient: recipient,
		TxRef:     txRef,
	}); err != nil {
		if errors.Is(err, repository.ErrAlreadyDistributed) {
			// A concurrent distribution won the race after our transfer
			// settled. Surface the conflict; the ledger keeps the first entry.
			return "", ErrRewardDistributed
		}
		return "", fmt.Errorf("failed to record distribution: %w", err)
	}

	metrics.RewardsDistributed.Inc()
	logger.Logger().Info("reward distributed",
		zap.Int64("quest_id", questID),
		zap.String("recipient", recipient),
		zap.String("tx_ref", txRef))
	return txRef, nil
}

// IsRewardDistributed reports whether a recipient has been paid for a quest.
func (s *RewardService) IsRewardDistributed(ctx context.Context, questID int64, recipient string) (bool, error) {
	return s.repo.IsDistributed(ctx, questID, recipient)
}

// GetDistribution returns the ledger entry for one payout.
func (s *RewardService) GetDistribution(ctx context.Context, questID int64, recipient string) (*model.Distribution, error) {
	return s.repo.GetDistribution(ctx, questID, recipient)
}
