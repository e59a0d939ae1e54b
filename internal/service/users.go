package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dossinstitute/eventquest/internal/model"
	"github.com/dossinstitute/eventquest/internal/repository"
	"github.com/dossinstitute/eventquest/pkg/auth"
)

type UserService struct {
	repo     UserRepository
	registry RegistryRepository
}

func NewUserService(repo UserRepository, registry RegistryRepository) *UserService {
	return &UserService{
		repo:     repo,
		registry: registry,
	}
}

// RegisterUser creates a user keyed by wallet. Admin-only; a wallet may
// register once.
func (s *UserService) RegisterUser(ctx context.Context, p auth.Principal, u *model.User) (int64, error) {
	if !p.IsAdmin() {
		return 0, ErrPermissionDenied
	}
	id, err := s.repo.CreateUser(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return 0, ErrUserExists
		}
		return 0, fmt.Errorf("failed to register user: %w", err)
	}
	return id, nil
}

func (s *UserService) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	return s.repo.GetUser(ctx, userID)
}

func (s *UserService) GetUserByWallet(ctx context.Context, wallet string) (*model.User, error) {
	return s.repo.GetUserByWallet(ctx, wallet)
}

func (s *UserService) UpdateUser(ctx context.Context, p auth.Principal, u *model.User) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	return s.repo.UpdateUser(ctx, u)
}

func (s *UserService) DeleteUser(ctx context.Context, p auth.Principal, userID int64) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	return s.repo.DeleteUser(ctx, userID)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *UserService) GetUserCount(ctx context.Context) (int64, error) {
	return s.repo.GetUserCount(ctx)
}

func (s *UserService) GetUserByIndex(ctx context.Context, index int64) (*model.User, error) {
	count, err := s.repo.GetUserCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if index < 0 || index >= count {
		return nil, ErrIndexOutOfBounds
	}
	return s.repo.GetUserByIndex(ctx, index)
}

// RegisterForQuest records a user's registration against a registered quest.
// Admin-only. Registrations accumulate; registering twice is not an error.
func (s *UserService) RegisterForQuest(ctx context.Context, p auth.Principal, userID, questID int64) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	if _, err := s.registry.GetRegisteredQuest(ctx, questID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrQuestNotFound
		}
		return fmt.Errorf("failed to look up quest: %w", err)
	}
	if err := s.repo.RegisterForQuest(ctx, userID, questID); err != nil {
		return fmt.Errorf("failed to register for quest: %w", err)
	}
	return nil
}

func (s *UserService) GetRegisteredQuests(ctx context.Context, userID int64) ([]int64, error) {
	return s.repo.GetRegisteredQuests(ctx, userID)
}
