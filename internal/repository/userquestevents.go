package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dossinstitute/eventquest/internal/model"

	"github.com/Masterminds/squirrel"
)

type userQuestEvent struct {
	UserQuestEventID int64  `db:"user_quest_event_id"`
	QuestEventID     int64  `db:"quest_event_id"`
	UserID           int64  `db:"user_id"`
	Interactions     int    `db:"interactions"`
	Validated        bool   `db:"validated"`
	URL              string `db:"url"`
	Completed        bool   `db:"completed"`
}

func (u *userQuestEvent) toModel() *model.UserQuestEvent {
	return &model.UserQuestEvent{
		UserQuestEventID: u.UserQuestEventID,
		QuestEventID:     u.QuestEventID,
		UserID:           u.UserID,
		Interactions:     u.Interactions,
		Validated:        u.Validated,
		URL:              u.URL,
		Completed:        u.Completed,
	}
}

var userQuestEventColumns = []string{
	"user_quest_event_id", "quest_event_id", "user_id",
	"interactions", "validated", "url", "completed",
}

func userQuestEventSetMap(u *model.UserQuestEvent) map[string]interface{} {
	return map[string]interface{}{
		"quest_event_id": u.QuestEventID,
		"user_id":        u.UserID,
		"interactions":   u.Interactions,
		"validated":      u.Validated,
		"url":            u.URL,
		"completed":      u.Completed,
	}
}

func (r *Repository) CreateUserQuestEvent(ctx context.Context, u *model.UserQuestEvent) (int64, error) {
	query, args, err := squirrel.
		Insert("user_quest_events").
		SetMap(userQuestEventSetMap(u)).
		Suffix("RETURNING user_quest_event_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build user quest event insert query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("failed to insert user quest event: %w", err)
	}
	return id, nil
}

func (r *Repository) GetUserQuestEvent(ctx context.Context, id int64) (*model.UserQuestEvent, error) {
	query, args, err := squirrel.
		Select(userQuestEventColumns...).
		From("user_quest_events").
		Where(squirrel.Eq{"user_quest_event_id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user quest event select query: %w", err)
	}

	var u userQuestEvent
	if err := r.db.GetContext(ctx, &u, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user quest event: %w", err)
	}
	return u.toModel(), nil
}

func (r *Repository) UpdateUserQuestEvent(ctx context.Context, u *model.UserQuestEvent) error {
	query, args, err := squirrel.
		Update("user_quest_events").
		SetMap(userQuestEventSetMap(u)).
		Where(squirrel.Eq{"user_quest_event_id": u.UserQuestEventID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user quest event update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user quest event: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) DeleteUserQuestEvent(ctx context.Context, id int64) error {
	query, args, err := squirrel.
		Delete("user_quest_events").
		Where(squirrel.Eq{"user_quest_event_id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user quest event delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete user quest event: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) ListUserQuestEvents(ctx context.Context) ([]*model.UserQuestEvent, error) {
	query, args, err := squirrel.
		Select(userQuestEventColumns...).
		From("user_quest_events").
		OrderBy("user_quest_event_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user quest event list query: %w", err)
	}

	var rows []userQuestEvent
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list user quest events: %w", err)
	}

	events := make([]*model.UserQuestEvent, len(rows))
	for i := range rows {
		events[i] = rows[i].toModel()
	}
	return events, nil
}

func (r *Repository) GetUserQuestEventCount(ctx context.Context) (int64, error) {
	return r.count(ctx, "user_quest_events")
}

func (r *Repository) GetUserQuestEventByIndex(ctx context.Context, index int64) (*model.UserQuestEvent, error) {
	query, args, err := squirrel.
		Select(userQuestEventColumns...).
		From("user_quest_events").
		OrderBy("user_quest_event_id").
		Offset(uint64(index)).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user quest event index query: %w", err)
	}

	var u userQuestEvent
	if err := r.db.GetContext(ctx, &u, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user quest event by index: %w", err)
	}
	return u.toModel(), nil
}

func (r *Repository) GetQuestsForUser(ctx context.Context, userID int64) ([]*model.UserQuestEvent, error) {
	query, args, err := squirrel.
		Select(userQuestEventColumns...).
		From("user_quest_events").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("user_quest_event_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user quests query: %w", err)
	}

	var rows []userQuestEvent
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get quests for user: %w", err)
	}

	events := make([]*model.UserQuestEvent, len(rows))
	for i := range rows {
		events[i] = rows[i].toModel()
	}
	return events, nil
}
