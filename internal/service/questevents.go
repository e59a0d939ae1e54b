package service

import (
	"context"
	"fmt"

	"github.com/dossinstitute/eventquest/internal/model"
	"github.com/dossinstitute/eventquest/pkg/auth"
)

type QuestEventService struct {
	repo QuestEventRepository
}

func NewQuestEventService(repo QuestEventRepository) *QuestEventService {
	return &QuestEventService{
		repo: repo,
	}
}

func (s *QuestEventService) CreateQuestEvent(ctx context.Context, p auth.Principal, q *model.QuestEvent) (int64, error) {
	if !p.IsAdmin() {
		return 0, ErrPermissionDenied
	}
	id, err := s.repo.CreateQuestEvent(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("failed to create quest event: %w", err)
	}
	return id, nil
}

func (s *QuestEventService) GetQuestEvent(ctx context.Context, questEventID int64) (*model.QuestEvent, error) {
	return s.repo.GetQuestEvent(ctx, questEventID)
}

func (s *QuestEventService) UpdateQuestEvent(ctx context.Context, p auth.Principal, q *model.QuestEvent) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	return s.repo.UpdateQuestEvent(ctx, q)
}

func (s *QuestEventService) DeleteQuestEvent(ctx context.Context, p auth.Principal, questEventID int64) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	return s.repo.DeleteQuestEvent(ctx, questEventID)
}

func (s *QuestEventService) ListQuestEvents(ctx context.Context) ([]*model.QuestEvent, error) {
	return s.repo.ListQuestEvents(ctx)
}

func (s *QuestEventService) GetQuestEventCount(ctx context.Context) (int64, error) {
	return s.repo.GetQuestEventCount(ctx)
}

func (s *QuestEventService) GetQuestEventByIndex(ctx context.Context, index int64) (*model.QuestEvent, error) {
	count, err := s.repo.GetQuestEventCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count quest events: %w", err)
	}
	if index < 0 || index >= count {
		return nil, ErrIndexOutOfBounds
	}
	return s.repo.GetQuestEventByIndex(ctx, index)
}
