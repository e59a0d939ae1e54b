package service

import (
	"context"
	"fmt"

	"github.com/dossinstitute/eventquest/internal/model"
	"github.com/dossinstitute/eventquest/pkg/auth"
)

// MinInteractions is the lowest interaction requirement a quest definition
// may carry.
const MinInteractions = 3

type QuestService struct {
	repo QuestRepository
}

func NewQuestService(repo QuestRepository) *QuestService {
	return &QuestService{
		repo: repo,
	}
}

func (s *QuestService) CreateQuest(ctx context.Context, p auth.Principal, q *model.Quest) (int64, error) {
	if !p.IsAdmin() {
		return 0, ErrPermissionDenied
	}
	if q.DefaultInteractions < MinInteractions {
		return 0, ErrInvalidInteractions
	}
	id, err := s.repo.CreateQuest(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("failed to create quest: %w", err)
	}
	return id, nil
}

func (s *QuestService) GetQuest(ctx context.Context, questID int64) (*model.Quest, error) {
	return s.repo.GetQuest(ctx, questID)
}

func (s *QuestService) UpdateQuest(ctx context.Context, p auth.Principal, q *model.Quest) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	if q.DefaultInteractions < MinInteractions {
		return ErrInvalidInteractions
	}
	return s.repo.UpdateQuest(ctx, q)
}

func (s *QuestService) DeleteQuest(ctx context.Context, p auth.Principal, questID int64) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	return s.repo.DeleteQuest(ctx, questID)
}

func (s *QuestService) ListQuests(ctx context.Context) ([]*model.Quest, error) {
	return s.repo.ListQuests(ctx)
}

func (s *QuestService) GetQuestCount(ctx context.Context) (int64, error) {
	return s.repo.GetQuestCount(ctx)
}

func (s *QuestService) GetQuestByIndex(ctx context.Context, index int64) (*model.Quest, error) {
	count, err := s.repo.GetQuestCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count quests: %w", err)
	}
	if index < 0 || index >= count {
		return nil, ErrIndexOutOfBounds
	}
	return s.repo.GetQuestByIndex(ctx, index)
}
