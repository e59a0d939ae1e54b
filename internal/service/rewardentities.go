package service

import (
	"context"
	"fmt"

	"github.com/dossinstitute/eventquest/internal/model"
	"github.com/dossinstitute/eventquest/pkg/auth"
)

// RewardEntityService manages the reward and reward pool registries. Actual
// payouts go through RewardService.
type RewardEntityService struct {
	repo        RewardEntityRepository
	questEvents QuestEventRepository
}

func NewRewardEntityService(repo RewardEntityRepository, questEvents QuestEventRepository) *RewardEntityService {
	return &RewardEntityService{
		repo:        repo,
		questEvents: questEvents,
	}
}

func (s *RewardEntityService) CreateReward(ctx context.Context, p auth.Principal, rw *model.Reward) (int64, error) {
	if !p.IsAdmin() {
		return 0, ErrPermissionDenied
	}
	if rw.RewardType == "" {
		return 0, ErrRewardTypeRequired
	}
	id, err := s.repo.CreateReward(ctx, rw)
	if err != nil {
		return 0, fmt.Errorf("failed to create reward: %w", err)
	}
	return id, nil
}

func (s *RewardEntityService) GetReward(ctx context.Context, id int64) (*model.Reward, error) {
	return s.repo.GetReward(ctx, id)
}

func (s *RewardEntityService) UpdateReward(ctx context.Context, p auth.Principal, rw *model.Reward) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	if rw.RewardType == "" {
		return ErrRewardTypeRequired
	}
	return s.repo.UpdateReward(ctx, rw)
}

func (s *RewardEntityService) DeleteReward(ctx context.Context, p auth.Principal, id int64) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	return s.repo.DeleteReward(ctx, id)
}

func (s *RewardEntityService) ListRewards(ctx context.Context) ([]*model.Reward, error) {
	return s.repo.ListRewards(ctx)
}

func (s *RewardEntityService) GetRewardCount(ctx context.Context) (int64, error) {
	return s.repo.GetRewardCount(ctx)
}

func (s *RewardEntityService) GetRewardByIndex(ctx context.Context, index int64) (*model.Reward, error) {
	count, err := s.repo.GetRewardCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count rewards: %w", err)
	}
	if index < 0 || index >= count {
		return nil, ErrIndexOutOfBounds
	}
	return s.repo.GetRewardByIndex(ctx, index)
}

func (s *RewardEntityService) CreateRewardPool(ctx context.Context, p auth.Principal, pool *model.RewardPool) (int64, error) {
	if !p.IsAdmin() {
		return 0, ErrPermissionDenied
	}
	if _, err := s.questEvents.GetQuestEvent(ctx, pool.QuestEventID); err != nil {
		return 0, fmt.Errorf("failed to validate quest event: %w", err)
	}
	id, err := s.repo.CreateRewardPool(ctx, pool)
	if err != nil {
		return 0, fmt.Errorf("failed to create reward pool: %w", err)
	}
	return id, nil
}

func (s *RewardEntityService) GetRewardPool(ctx context.Context, id int64) (*model.RewardPool, error) {
	return s.repo.GetRewardPool(ctx, id)
}

func (s *RewardEntityService) UpdateRewardPool(ctx context.Context, p auth.Principal, pool *model.RewardPool) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	return s.repo.UpdateRewardPool(ctx, pool)
}

func (s *RewardEntityService) DeleteRewardPool(ctx context.Context, p auth.Principal, id int64) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	return s.repo.DeleteRewardPool(ctx, id)
}

func (s *RewardEntityService) ListRewardPools(ctx context.Context) ([]*model.RewardPool, error) {
	return s.repo.ListRewardPools(ctx)
}

func (s *RewardEntityService) GetRewardPoolCount(ctx context.Context) (int64, error) {
	return s.repo.GetRewardPoolCount(ctx)
}

func (s *RewardEntityService) GetRewardPoolByIndex(ctx context.Context, index int64) (*model.RewardPool, error) {
	count, err := s.repo.GetRewardPoolCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count reward pools: %w", err)
	}
	if index < 0 || index >= count {
		return nil, ErrIndexOutOfBounds
	}
	return s.repo.GetRewardPoolByIndex(ctx, index)
}
