package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dossinstitute/eventquest/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type registeredQuest struct {
	QuestID      int64        `db:"quest_id"`
	Name         string       `db:"name"`
	ContractRef  string       `db:"contract_ref"`
	QuestType    string       `db:"quest_type"`
	RegisteredAt sql.NullTime `db:"registered_at"`
}

func (q *registeredQuest) toModel() *model.RegisteredQuest {
	return &model.RegisteredQuest{
		QuestID:      q.QuestID,
		Name:         q.Name,
		ContractRef:  q.ContractRef,
		QuestType:    q.QuestType,
		RegisteredAt: q.RegisteredAt.Time,
	}
}

var registeredQuestColumns = []string{
	"quest_id", "name", "contract_ref", "quest_type", "registered_at",
}

// RegisterQuest inserts a registry entry under a caller-assigned identifier.
// Re-registering an existing identifier returns ErrConflict.
func (r *Repository) RegisterQuest(ctx context.Context, q *model.RegisteredQuest) error {
	query, args, err := squirrel.
		Insert("quest_registry").
		Columns("quest_id", "name", "contract_ref", "quest_type").
		Values(q.QuestID, q.Name, q.ContractRef, q.QuestType).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build quest registry insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to register quest: %w", err)
	}
	return nil
}

func (r *Repository) GetRegisteredQuest(ctx context.Context, questID int64) (*model.RegisteredQuest, error) {
	query, args, err := squirrel.
		Select(registeredQuestColumns...).
		From("quest_registry").
		Where(squirrel.Eq{"quest_id": questID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build quest registry select query: %w", err)
	}

	var q registeredQuest
	if err := r.db.GetContext(ctx, &q, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get registered quest: %w", err)
	}
	return q.toModel(), nil
}

func (r *Repository) UpdateRegisteredQuest(ctx context.Context, q *model.RegisteredQuest) error {
	query, args, err := squirrel.
		Update("quest_registry").
		Set("name", q.Name).
		Set("contract_ref", q.ContractRef).
		Set("quest_type", q.QuestType).
		Where(squirrel.Eq{"quest_id": q.QuestID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build quest registry update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update registered quest: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) DeleteRegisteredQuest(ctx context.Context, questID int64) error {
	query, args, err := squirrel.
		Delete("quest_registry").
		Where(squirrel.Eq{"quest_id": questID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build quest registry delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete registered quest: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) ListRegisteredQuests(ctx context.Context) ([]*model.RegisteredQuest, error) {
	query, args, err := squirrel.
		Select(registeredQuestColumns...).
		From("quest_registry").
		OrderBy("quest_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build quest registry list query: %w", err)
	}

	var rows []registeredQuest
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list registered quests: %w", err)
	}

	quests := make([]*model.RegisteredQuest, len(rows))
	for i := range rows {
		quests[i] = rows[i].toModel()
	}
	return quests, nil
}

func (r *Repository) ListRegisteredQuestIDs(ctx context.Context) ([]int64, error) {
	query, args, err := squirrel.
		Select("quest_id").
		From("quest_registry").
		OrderBy("quest_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build quest registry ids query: %w", err)
	}

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list registered quest ids: %w", err)
	}
	return ids, nil
}

func (r *Repository) GetRegisteredQuestCount(ctx context.Context) (int64, error) {
	return r.count(ctx, "quest_registry")
}
