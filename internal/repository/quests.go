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

type questDef struct {
	QuestID             int64     `db:"quest_id"`
	Name                string    `db:"name"`
	DefaultInteractions int       `db:"default_interactions"`
	DefaultStartDate    time.Time `db:"default_start_date"`
	DefaultEndDate      time.Time `db:"default_end_date"`
	DefaultRewardAmount int64     `db:"default_reward_amount"`
}

func (q *questDef) toModel() *model.Quest {
	return &model.Quest{
		QuestID:             q.QuestID,
		Name:                q.Name,
		DefaultInteractions: q.DefaultInteractions,
		DefaultStartDate:    q.DefaultStartDate,
		DefaultEndDate:      q.DefaultEndDate,
		DefaultRewardAmount: q.DefaultRewardAmount,
	}
}

var questDefColumns = []string{
	"quest_id", "name", "default_interactions",
	"default_start_date", "default_end_date", "default_reward_amount",
}

func (r *Repository) CreateQuest(ctx context.Context, q *model.Quest) (int64, error) {
	query, args, err := squirrel.
		Insert("quests").
		SetMap(map[string]interface{}{
			"name":                  q.Name,
			"default_interactions":  q.DefaultInteractions,
			"default_start_date":    q.DefaultStartDate,
			"default_end_date":      q.DefaultEndDate,
			"default_reward_amount": q.DefaultRewardAmount,
		}).
		Suffix("RETURNING quest_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build quest insert query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("failed to insert quest: %w", err)
	}
	return id, nil
}

func (r *Repository) GetQuest(ctx context.Context, questID int64) (*model.Quest, error) {
	query, args, err := squirrel.
		Select(questDefColumns...).
		From("quests").
		Where(squirrel.Eq{"quest_id": questID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build quest select query: %w", err)
	}

	var q questDef
	if err := r.db.GetContext(ctx, &q, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quest: %w", err)
	}
	return q.toModel(), nil
}

func (r *Repository) UpdateQuest(ctx context.Context, q *model.Quest) error {
	query, args, err := squirrel.
		Update("quests").
		SetMap(map[string]interface{}{
			"name":                  q.Name,
			"default_interactions":  q.DefaultInteractions,
			"default_start_date":    q.DefaultStartDate,
			"default_end_date":      q.DefaultEndDate,
			"default_reward_amount": q.DefaultRewardAmount,
		}).
		Where(squirrel.Eq{"quest_id": q.QuestID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build quest update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update quest: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) DeleteQuest(ctx context.Context, questID int64) error {
	query, args, err := squirrel.
		Delete("quests").
		Where(squirrel.Eq{"quest_id": questID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build quest delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete quest: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) ListQuests(ctx context.Context) ([]*model.Quest, error) {
	query, args, err := squirrel.
		Select(questDefColumns...).
		From("quests").
		OrderBy("quest_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build quest list query: %w", err)
	}

	var rows []questDef
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list quests: %w", err)
	}

	quests := make([]*model.Quest, len(rows))
	for i := range rows {
		quests[i] = rows[i].toModel()
	}
	return quests, nil
}

func (r *Repository) GetQuestCount(ctx context.Context) (int64, error) {
	return r.count(ctx, "quests")
}

func (r *Repository) GetQuestByIndex(ctx context.Context, index int64) (*model.Quest, error) {
	query, args, err := squirrel.
		Select(questDefColumns...).
		From("quests").
		OrderBy("quest_id").
		Offset(uint64(index)).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build quest index query: %w", err)
	}

	var q questDef
	if err := r.db.GetContext(ctx, &q, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quest by index: %w", err)
	}
	return q.toModel(), nil
}
