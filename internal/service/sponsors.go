package service

import (
	"context"
	"fmt"

	"github.com/dossinstitute/eventquest/internal/model"
	"github.com/dossinstitute/eventquest/pkg/auth"
)

type SponsorService struct {
	repo        SponsorRepository
	questEvents QuestEventRepository
}

func NewSponsorService(repo SponsorRepository, questEvents QuestEventRepository) *SponsorService {
	return &SponsorService{
		repo:        repo,
		questEvents: questEvents,
	}
}

func (s *SponsorService) CreateSponsor(ctx context.Context, p auth.Principal, sp *model.Sponsor) (int64, error) {
	if !p.IsAdmin() {
		return 0, ErrPermissionDenied
	}
	id, err := s.repo.CreateSponsor(ctx, sp)
	if err != nil {
		return 0, fmt.Errorf("failed to create sponsor: %w", err)
	}
	return id, nil
}

func (s *SponsorService) GetSponsor(ctx context.Context, sponsorID int64) (*model.Sponsor, error) {
	return s.repo.GetSponsor(ctx, sponsorID)
}

func (s *SponsorService) UpdateSponsor(ctx context.Context, p auth.Principal, sp *model.Sponsor) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	return s.repo.UpdateSponsor(ctx, sp)
}

func (s *SponsorService) DeleteSponsor(ctx context.Context, p auth.Principal, sponsorID int64) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	return s.repo.DeleteSponsor(ctx, sponsorID)
}

func (s *SponsorService) ListSponsors(ctx context.Context) ([]*model.Sponsor, error) {
	return s.repo.ListSponsors(ctx)
}

func (s *SponsorService) GetSponsorCount(ctx context.Context) (int64, error) {
	return s.repo.GetSponsorCount(ctx)
}

func (s *SponsorService) GetSponsorByIndex(ctx context.Context, index int64) (*model.Sponsor, error) {
	count, err := s.repo.GetSponsorCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count sponsors: %w", err)
	}
	if index < 0 || index >= count {
		return nil, ErrIndexOutOfBounds
	}
	return s.repo.GetSponsorByIndex(ctx, index)
}

// GetSponsorQuestEvents lists quest events funded by the sponsor through its
// reward pools.
func (s *SponsorService) GetSponsorQuestEvents(ctx context.Context, sponsorID int64) ([]*model.QuestEvent, error) {
	if _, err := s.repo.GetSponsor(ctx, sponsorID); err != nil {
		return nil, err
	}
	return s.questEvents.GetQuestEventsForSponsor(ctx, sponsorID)
}
