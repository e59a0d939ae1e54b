package service

import (
	"context"
	"fmt"

	"github.com/dossinstitute/eventquest/internal/model"
	"github.com/dossinstitute/eventquest/pkg/auth"
)

// QuestTypeService manages quest type descriptors and the sponsor hashtag
// requirements attached to quest events.
type QuestTypeService struct {
	repo QuestTypeRepository
}

func NewQuestTypeService(repo QuestTypeRepository) *QuestTypeService {
	return &QuestTypeService{
		repo: repo,
	}
}

func (s *QuestTypeService) CreateQuestType(ctx context.Context, p auth.Principal, q *model.QuestType) (int64, error) {
	if !p.IsAdmin() {
		return 0, ErrPermissionDenied
	}
	id, err := s.repo.CreateQuestType(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("failed to create quest type: %w", err)
	}
	return id, nil
}

func (s *QuestTypeService) GetQuestType(ctx context.Context, id int64) (*model.QuestType, error) {
	return s.repo.GetQuestType(ctx, id)
}

func (s *QuestTypeService) UpdateQuestType(ctx context.Context, p auth.Principal, q *model.QuestType) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	return s.repo.UpdateQuestType(ctx, q)
}

func (s *QuestTypeService) DeleteQuestType(ctx context.Context, p auth.Principal, id int64) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	return s.repo.DeleteQuestType(ctx, id)
}

func (s *QuestTypeService) ListQuestTypes(ctx context.Context) ([]*model.QuestType, error) {
	return s.repo.ListQuestTypes(ctx)
}

func (s *QuestTypeService) GetQuestTypeCount(ctx context.Context) (int64, error) {
	return s.repo.GetQuestTypeCount(ctx)
}

func (s *QuestTypeService) GetQuestTypeByIndex(ctx context.Context, index int64) (*model.QuestType, error) {
	count, err := s.repo.GetQuestTypeCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count quest types: %w", err)
	}
	if index < 0 || index >= count {
		return nil, ErrIndexOutOfBounds
	}
	return s.repo.GetQuestTypeByIndex(ctx, index)
}

func (s *QuestTypeService) CreateSponsorQuestRequirement(ctx context.Context, p auth.Principal, req *model.SponsorQuestRequirement) (int64, error) {
	if !p.IsAdmin() {
		return 0, ErrPermissionDenied
	}
	id, err := s.repo.CreateSponsorQuestRequirement(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("failed to create sponsor requirement: %w", err)
	}
	return id, nil
}

func (s *QuestTypeService) GetSponsorQuestRequirement(ctx context.Context, id int64) (*model.SponsorQuestRequirement, error) {
	return s.repo.GetSponsorQuestRequirement(ctx, id)
}

func (s *QuestTypeService) UpdateSponsorQuestRequirement(ctx context.Context, p auth.Principal, req *model.SponsorQuestRequirement) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	return s.repo.UpdateSponsorQuestRequirement(ctx, req)
}

func (s *QuestTypeService) DeleteSponsorQuestRequirement(ctx context.Context, p auth.Principal, id int64) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	return s.repo.DeleteSponsorQuestRequirement(ctx, id)
}

func (s *QuestTypeService) ListSponsorQuestRequirements(ctx context.Context) ([]*model.SponsorQuestRequirement, error) {
	return s.repo.ListSponsorQuestRequirements(ctx)
}

func (s *QuestTypeService) GetSponsorQuestRequirementCount(ctx context.Context) (int64, error) {
	return s.repo.GetSponsorQuestRequirementCount(ctx)
}

func (s *QuestTypeService) GetSponsorQuestRequirementByIndex(ctx context.Context, index int64) (*model.SponsorQuestRequirement, error) {
	count, err := s.repo.GetSponsorQuestRequirementCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count sponsor requirements: %w", err)
	}
	if index < 0 || index >= count {
		return nil, ErrIndexOutOfBounds
	}
	return s.repo.GetSponsorQuestRequirementByIndex(ctx, index)
}
