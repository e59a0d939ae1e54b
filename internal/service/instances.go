package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dossinstitute/eventquest/internal/metrics"
	"github.com/dossinstitute/eventquest/internal/quest"
	"github.com/dossinstitute/eventquest/internal/repository"
	"github.com/dossinstitute/eventquest/pkg/auth"
	"github.com/dossinstitute/eventquest/pkg/logger"

	"go.uber.org/zap"
)

// InitializeParams carries the configuration for a new quest instance. Only
// the fields matching Kind are consulted.
type InitializeParams struct {
	QuestID   int64
	Kind      quest.Kind
	Name      string
	ExpiresAt time.Time

	// Location quests.
	Locations []string

	// Content creator quests.
	MinSubmissions   int
	RequiredHashtags []string
	RequireHashtags  bool

	// Proof of knowledge quests.
	Questions []string
	Answers   []string
}

// InstanceService runs the quest instance lifecycle: initialization,
// interactions, and completion.
type InstanceService struct {
	repo     InstanceRepository
	notifier CompletionNotifier
	now      func() time.Time
}

func NewInstanceService(repo InstanceRepository, notifier CompletionNotifier) *InstanceService {
	return &InstanceService{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

// InitializeQuest creates and persists an active quest instance. The quest id
// is caller-assigned; reuse returns ErrQuestExists.
func (s *InstanceService) InitializeQuest(ctx context.Context, p auth.Principal, params InitializeParams) error {
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}

	rules, err := rulesFor(params)
	if err != nil {
		return err
	}

	inst := &quest.Instance{
		State: quest.State{
			QuestID:   params.QuestID,
			Kind:      params.Kind,
			Name:      params.Name,
			Active:    true,
			Completed: false,
			ExpiresAt: params.ExpiresAt,
			Initiator: p.Wallet,
		},
		Rules: rules,
	}

	if err := s.repo.CreateInstance(ctx, inst); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return ErrQuestExists
		}
		return fmt.Errorf("failed to initialize quest: %w", err)
	}

	logger.Logger().Info("quest initialized",
		zap.Int64("quest_id", params.QuestID),
		zap.String("kind", string(params.Kind)))
	return nil
}

func rulesFor(params InitializeParams) (quest.Rules, error) {
	switch params.Kind {
	case quest.KindLocation:
		return quest.NewLocationRules(params.Locations), nil
	case quest.KindContentCreator:
		return quest.NewContentRules(params.MinSubmissions, params.RequiredHashtags, params.RequireHashtags), nil
	case quest.KindProofOfKnowledge:
		return quest.NewKnowledgeRules(params.Questions, params.Answers), nil
	default:
		return nil, fmt.Errorf("unknown quest kind %q", params.Kind)
	}
}

// Interact runs one interaction against a quest instance. The instance's
// mutated state and the audit record are persisted together, so a failed save
// leaves the quest as if the interaction never happened.
func (s *InstanceService) Interact(ctx context.Context, actor string, questID int64, action string, payload []byte) (*quest.Outcome, error) {
	inst, err := s.repo.GetInstance(ctx, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, fmt.Errorf("failed to load quest: %w", err)
	}

	out, err := inst.Interact(s.now(), actor, action, payload)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveInteraction(ctx, inst, out); err != nil {
		return nil, fmt.Errorf("failed to save interaction: %w", err)
	}

	if out.CompletedQuest {
		metrics.QuestsCompleted.WithLabelValues(string(inst.State.Kind)).Inc()
		if s.notifier != nil {
			s.notifier.QuestCompleted(questID, actor)
		}
	}
	return out, nil
}

// MarkAsCompleted force-completes an active quest without further
// interactions. Allowed for admins and for the wallet that initialized the
// quest.
func (s *InstanceService) MarkAsCompleted(ctx context.Context, p auth.Principal, questID int64) error {
	inst, err := s.repo.GetInstance(ctx, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrQuestNotFound
		}
		return fmt.Errorf("failed to load quest: %w", err)
	}

	if !p.IsAdmin() && p.Wallet != inst.State.Initiator {
		return ErrPermissionDenied
	}

	if err := inst.ForceComplete(); err != nil {
		return err
	}
	if err := s.repo.SaveInstance(ctx, inst); err != nil {
		return fmt.Errorf("failed to save quest: %w", err)
	}

	metrics.QuestsCompleted.WithLabelValues(string(inst.State.Kind)).Inc()
	if s.notifier != nil {
		s.notifier.QuestCompleted(questID, p.Wallet)
	}
	return nil
}

// GetInstance returns the lifecycle state and progress of one quest instance.
func (s *InstanceService) GetInstance(ctx context.Context, questID int64) (*quest.Instance, error) {
	inst, err := s.repo.GetInstance(ctx, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, err
	}
	return inst, nil
}

// ListInteractions returns the audit trail for one quest, oldest first.
func (s *InstanceService) ListInteractions(ctx context.Context, questID int64) ([]*quest.Outcome, error) {
	return s.repo.ListInteractions(ctx, questID)
}
