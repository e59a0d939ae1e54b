package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dossinstitute/eventquest/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

type sponsorQuestRequirement struct {
	SponsorQuestRequirementID int64          `db:"sponsor_quest_requirement_id"`
	QuestEventID              int64          `db:"quest_event_id"`
	QuestTypeID               int64          `db:"quest_type_id"`
	SponsorHashtags           pq.StringArray `db:"sponsor_hashtags"`
	SponsorHashtagsRequired   bool           `db:"sponsor_hashtags_required"`
}

func (s *sponsorQuestRequirement) toModel() *model.SponsorQuestRequirement {
	return &model.SponsorQuestRequirement{
		SponsorQuestRequirementID: s.SponsorQuestRequirementID,
		QuestEventID:              s.QuestEventID,
		QuestTypeID:               s.QuestTypeID,
		SponsorHashtags:           []string(s.SponsorHashtags),
		SponsorHashtagsRequired:   s.SponsorHashtagsRequired,
	}
}

var sponsorRequirementColumns = []string{
	"sponsor_quest_requirement_id", "quest_event_id", "quest_type_id",
	"sponsor_hashtags", "sponsor_hashtags_required",
}

func sponsorRequirementSetMap(s *model.SponsorQuestRequirement) map[string]interface{} {
	return map[string]interface{}{
		"quest_event_id":            s.QuestEventID,
		"quest_type_id":             s.QuestTypeID,
		"sponsor_hashtags":          pq.StringArray(s.SponsorHashtags),
		"sponsor_hashtags_required": s.SponsorHashtagsRequired,
	}
}

func (r *Repository) CreateSponsorQuestRequirement(ctx context.Context, s *model.SponsorQuestRequirement) (int64, error) {
	query, args, err := squirrel.
		Insert("sponsor_quest_requirements").
		SetMap(sponsorRequirementSetMap(s)).
		Suffix("RETURNING sponsor_quest_requirement_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sponsor requirement insert query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("failed to insert sponsor requirement: %w", err)
	}
	return id, nil
}

func (r *Repository) GetSponsorQuestRequirement(ctx context.Context, id int64) (*model.SponsorQuestRequirement, error) {
	query, args, err := squirrel.
		Select(sponsorRequirementColumns...).
		From("sponsor_quest_requirements").
		Where(squirrel.Eq{"sponsor_quest_requirement_id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sponsor requirement select query: %w", err)
	}

	var s sponsorQuestRequirement
	if err := r.db.GetContext(ctx, &s, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sponsor requirement: %w", err)
	}
	return s.toModel(), nil
}

func (r *Repository) UpdateSponsorQuestRequirement(ctx context.Context, s *model.SponsorQuestRequirement) error {
	query, args, err := squirrel.
		Update("sponsor_quest_requirements").
		SetMap(sponsorRequirementSetMap(s)).
		Where(squirrel.Eq{"sponsor_quest_requirement_id": s.SponsorQuestRequirementID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sponsor requirement update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update sponsor requirement: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) DeleteSponsorQuestRequirement(ctx context.Context, id int64) error {
	query, args, err := squirrel.
		Delete("sponsor_quest_requirements").
		Where(squirrel.Eq{"sponsor_quest_requirement_id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sponsor requirement delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete sponsor requirement: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) ListSponsorQuestRequirements(ctx context.Context) ([]*model.SponsorQuestRequirement, error) {
	query, args, err := squirrel.
		Select(sponsorRequirementColumns...).
		From("sponsor_quest_requirements").
		OrderBy("sponsor_quest_requirement_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sponsor requirement list query: %w", err)
	}

	var rows []sponsorQuestRequirement
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list sponsor requirements: %w", err)
	}

	requirements := make([]*model.SponsorQuestRequirement, len(rows))
	for i := range rows {
		requirements[i] = rows[i].toModel()
	}
	return requirements, nil
}

func (r *Repository) GetSponsorQuestRequirementCount(ctx context.Context) (int64, error) {
	return r.count(ctx, "sponsor_quest_requirements")
}

func (r *Repository) GetSponsorQuestRequirementByIndex(ctx context.Context, index int64) (*model.SponsorQuestRequirement, error) {
	query, args, err := squirrel.
		Select(sponsorRequirementColumns...).
		From("sponsor_quest_requirements").
		OrderBy("sponsor_quest_requirement_id").
		Offset(uint64(index)).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sponsor requirement index query: %w", err)
	}

	var s sponsorQuestRequirement
	if err := r.db.GetContext(ctx, &s, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sponsor requirement by index: %w", err)
	}
	return s.toModel(), nil
}
