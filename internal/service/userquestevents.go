package service

import (
	"context"
	"fmt"

	"github.com/dossinstitute/eventquest/internal/model"
	"github.com/dossinstitute/eventquest/pkg/auth"
)

type UserQuestEventService struct {
	repo UserQuestEventRepository
}

func NewUserQuestEventService(repo UserQuestEventRepository) *UserQuestEventService {
	return &UserQuestEventService{
		repo: repo,
	}
}

func (s *UserQuestEventService) CreateUserQuestEvent(ctx context.Context, p auth.Principal, u *model.UserQuestEvent) (int64, error) {
	if !p.IsAdmin() {
		return 0, ErrPermissionDenied
	}
	id, err := s.repo.CreateUserQuestEvent(ctx, u)
	if err != nil {
		return 0, fmt.Errorf("failed to create user quest event: %w", err)
	}
	return id, nil
}

func (s *UserQuestEventService) GetUserQuestEvent(ctx context.Context, id int64) (*model.UserQuestEvent, error) {
	return s.repo.GetUserQuestEvent(ctx, id)
}

func (s *UserQuestEventService) UpdateUserQuestEvent(ctx context.Context, p auth.Principal, u *model.UserQuestEvent) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	return s.repo.UpdateUserQuestEvent(ctx, u)
}

func (s *UserQuestEventService) DeleteUserQuestEvent(ctx context.Context, p auth.Principal, id int64) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	return s.repo.DeleteUserQuestEvent(ctx, id)
}

func (s *UserQuestEventService) ListUserQuestEvents(ctx context.Context) ([]*model.UserQuestEvent, error) {
	return s.repo.ListUserQuestEvents(ctx)
}

func (s *UserQuestEventService) GetUserQuestEventCount(ctx context.Context) (int64, error) {
	return s.repo.GetUserQuestEventCount(ctx)
}

func (s *UserQuestEventService) GetUserQuestEventByIndex(ctx context.Context, index int64) (*model.UserQuestEvent, error) {
	count, err := s.repo.GetUserQuestEventCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count user quest events: %w", err)
	}
	if index < 0 || index >= count {
		return nil, ErrIndexOutOfBounds
	}
	return s.repo.GetUserQuestEventByIndex(ctx, index)
}

// GetQuestsForUser lists a user's quest event participation records.
func (s *UserQuestEventService) GetQuestsForUser(ctx context.Context, userID int64) ([]*model.UserQuestEvent, error) {
	return s.repo.GetQuestsForUser(ctx, userID)
}
