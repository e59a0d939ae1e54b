package service

import (
	"context"
	"fmt"

	"github.com/dossinstitute/eventquest/internal/model"
	"github.com/dossinstitute/eventquest/pkg/auth"
)

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, p auth.Principal, ev *model.Event) (int64, error) {
	if !p.IsAdmin() {
		return 0, ErrPermissionDenied
	}
	id, err := s.repo.CreateEvent(ctx, ev)
	if err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}
	return id, nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID int64) (*model.Event, error) {
	return s.repo.GetEvent(ctx, eventID)
}

func (s *EventService) UpdateEvent(ctx context.Context, p auth.Principal, ev *model.Event) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	return s.repo.UpdateEvent(ctx, ev)
}

func (s *EventService) DeleteEvent(ctx context.Context, p auth.Principal, eventID int64) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	return s.repo.DeleteEvent(ctx, eventID)
}

func (s *EventService) ListEvents(ctx context.Context) ([]*model.Event, error) {
	return s.repo.ListEvents(ctx)
}

func (s *EventService) GetEventCount(ctx context.Context) (int64, error) {
	return s.repo.GetEventCount(ctx)
}

func (s *EventService) GetEventByIndex(ctx context.Context, index int64) (*model.Event, error) {
	count, err := s.repo.GetEventCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	if index < 0 || index >= count {
		return nil, ErrIndexOutOfBounds
	}
	return s.repo.GetEventByIndex(ctx, index)
}
