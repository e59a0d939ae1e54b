package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dossinstitute/eventquest/internal/model"
	"github.com/dossinstitute/eventquest/internal/repository"
	"github.com/dossinstitute/eventquest/pkg/auth"
)

// RegistryService manages the quest registry, which maps caller-assigned
// quest identifiers to deployed quest instances.
type RegistryService struct {
	repo RegistryRepository
}

func NewRegistryService(repo RegistryRepository) *RegistryService {
	return &RegistryService{
		repo: repo,
	}
}

// RegisterQuest adds a quest under a caller-assigned identifier. The
// identifier must not already be in use.
func (s *RegistryService) RegisterQuest(ctx context.Context, p auth.Principal, q *model.RegisteredQuest) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	if err := s.repo.RegisterQuest(ctx, q); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return ErrQuestExists
		}
		return fmt.Errorf("failed to register quest: %w", err)
	}
	return nil
}

func (s *RegistryService) GetRegisteredQuest(ctx context.Context, questID int64) (*model.RegisteredQuest, error) {
	q, err := s.repo.GetRegisteredQuest(ctx, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *RegistryService) UpdateRegisteredQuest(ctx context.Context, p auth.Principal, q *model.RegisteredQuest) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	if err := s.repo.UpdateRegisteredQuest(ctx, q); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrQuestNotFound
		}
		return err
	}
	return nil
}

func (s *RegistryService) DeleteRegisteredQuest(ctx context.Context, p auth.Principal, questID int64) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	if err := s.repo.DeleteRegisteredQuest(ctx, questID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrQuestNotFound
		}
		return err
	}
	return nil
}

func (s *RegistryService) ListRegisteredQuests(ctx context.Context) ([]*model.RegisteredQuest, error) {
	return s.repo.ListRegisteredQuests(ctx)
}

func (s *RegistryService) ListRegisteredQuestIDs(ctx context.Context) ([]int64, error) {
	return s.repo.ListRegisteredQuestIDs(ctx)
}

func (s *RegistryService) GetRegisteredQuestCount(ctx context.Context) (int64, error) {
	return s.repo.GetRegisteredQuestCount(ctx)
}
