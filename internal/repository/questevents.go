package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dossinstitute/eventquest/internal/model"

	"github.com/Masterminds/squirrel"
)

type questEvent struct {
	QuestEventID        int64     `db:"quest_event_id"`
	EventID             int64     `db:"event_id"`
	QuestID             int64     `db:"quest_id"`
	MinimumInteractions int       `db:"minimum_interactions"`
	StartDate           time.Time `db:"start_date"`
	EndDate             time.Time `db:"end_date"`
	RewardAmount        int64     `db:"reward_amount"`
	URLHashTags         string    `db:"url_hash_tags"`
}

func (q *questEvent) toModel() *model.QuestEvent {
	return &model.QuestEvent{
		QuestEventID:        q.QuestEventID,
		EventID:             q.EventID,
		QuestID:             q.QuestID,
		MinimumInteractions: q.MinimumInteractions,
		StartDate:           q.StartDate,
		EndDate:             q.EndDate,
		RewardAmount:        q.RewardAmount,
		URLHashTags:         q.URLHashTags,
	}
}

var questEventColumns = []string{
	"quest_event_id", "event_id", "quest_id", "minimum_interactions",
	"start_date", "end_date", "reward_amount", "url_hash_tags",
}

func questEventSetMap(q *model.QuestEvent) map[string]interface{} {
	return map[string]interface{}{
		"event_id":             q.EventID,
		"quest_id":             q.QuestID,
		"minimum_interactions": q.MinimumInteractions,
		"start_date":           q.StartDate,
		"end_date":             q.EndDate,
		"reward_amount":        q.RewardAmount,
		"url_hash_tags":        q.URLHashTags,
	}
}

func (r *Repository) CreateQuestEvent(ctx context.Context, q *model.QuestEvent) (int64, error) {
	query, args, err := squirrel.
		Insert("quest_events").
		SetMap(questEventSetMap(q)).
		Suffix("RETURNING quest_event_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build quest event insert query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("failed to insert quest event: %w", err)
	}
	return id, nil
}

func (r *Repository) GetQuestEvent(ctx context.Context, questEventID int64) (*model.QuestEvent, error) {
	query, args, err := squirrel.
		Select(questEventColumns...).
		From("quest_events").
		Where(squirrel.Eq{"quest_event_id": questEventID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build quest event select query: %w", err)
	}

	var q questEvent
	if err := r.db.GetContext(ctx, &q, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quest event: %w", err)
	}
	return q.toModel(), nil
}

func (r *Repository) UpdateQuestEvent(ctx context.Context, q *model.QuestEvent) error {
	query, args, err := squirrel.
		Update("quest_events").
		SetMap(questEventSetMap(q)).
		Where(squirrel.Eq{"quest_event_id": q.QuestEventID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build quest event update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update quest event: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) DeleteQuestEvent(ctx context.Context, questEventID int64) error {
	query, args, err := squirrel.
		Delete("quest_events").
		Where(squirrel.Eq{"quest_event_id": questEventID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build quest event delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete quest event: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) ListQuestEvents(ctx context.Context) ([]*model.QuestEvent, error) {
	query, args, err := squirrel.
		Select(questEventColumns...).
		From("quest_events").
		OrderBy("quest_event_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build quest event list query: %w", err)
	}

	var rows []questEvent
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list quest events: %w", err)
	}

	questEvents := make([]*model.QuestEvent, len(rows))
	for i := range rows {
		questEvents[i] = rows[i].toModel()
	}
	return questEvents, nil
}

func (r *Repository) GetQuestEventCount(ctx context.Context) (int64, error) {
	return r.count(ctx, "quest_events")
}

func (r *Repository) GetQuestEventByIndex(ctx context.Context, index int64) (*model.QuestEvent, error) {
	query, args, err := squirrel.
		Select(questEventColumns...).
		From("quest_events").
		OrderBy("quest_event_id").
		Offset(uint64(index)).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build quest event index query: %w", err)
	}

	var q questEvent
	if err := r.db.GetContext(ctx, &q, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quest event by index: %w", err)
	}
	return q.toModel(), nil
}

// GetQuestEventsForSponsor returns the quest events funded by the sponsor's
// reward pools.
func (r *Repository) GetQuestEventsForSponsor(ctx context.Context, sponsorID int64) ([]*model.QuestEvent, error) {
	query, args, err := squirrel.
		Select(
			"qe.quest_event_id", "qe.event_id", "qe.quest_id", "qe.minimum_interactions",
			"qe.start_date", "qe.end_date", "qe.reward_amount", "qe.url_hash_tags",
		).
		From("quest_events qe").
		Join("reward_pools rp ON rp.quest_event_id = qe.quest_event_id").
		Where(squirrel.Eq{"rp.sponsor_id": sponsorID}).
		OrderBy("qe.quest_event_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sponsor quest events query: %w", err)
	}

	var rows []questEvent
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get quest events for sponsor: %w", err)
	}

	questEvents := make([]*model.QuestEvent, len(rows))
	for i := range rows {
		questEvents[i] = rows[i].toModel()
	}
	return questEvents, nil
}
