package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dossinstitute/eventquest/internal/model"

	"github.com/Masterminds/squirrel"
)

type questType struct {
	QuestTypeID                     int64  `db:"quest_type_id"`
	Name                            string `db:"name"`
	Description                     string `db:"description"`
	ScreenName                      string `db:"screen_name"`
	QuestContractName               string `db:"quest_contract_name"`
	QuestContractAddress            string `db:"quest_contract_address"`
	SponsorRequirementsContractName string `db:"sponsor_requirements_contract_name"`
	SponsorRequirementsAddress      string `db:"sponsor_requirements_address"`
}

func (q *questType) toModel() *model.QuestType {
	return &model.QuestType{
		QuestTypeID:                     q.QuestTypeID,
		Name:                            q.Name,
		Description:                     q.Description,
		ScreenName:                      q.ScreenName,
		QuestContractName:               q.QuestContractName,
		QuestContractAddress:            q.QuestContractAddress,
		SponsorRequirementsContractName: q.SponsorRequirementsContractName,
		SponsorRequirementsAddress:      q.SponsorRequirementsAddress,
	}
}

var questTypeColumns = []string{
	"quest_type_id", "name", "description", "screen_name",
	"quest_contract_name", "quest_contract_address",
	"sponsor_requirements_contract_name", "sponsor_requirements_address",
}

func questTypeSetMap(q *model.QuestType) map[string]interface{} {
	return map[string]interface{}{
		"name":                               q.Name,
		"description":                        q.Description,
		"screen_name":                        q.ScreenName,
		"quest_contract_name":                q.QuestContractName,
		"quest_contract_address":             q.QuestContractAddress,
		"sponsor_requirements_contract_name": q.SponsorRequirementsContractName,
		"sponsor_requirements_address":       q.SponsorRequirementsAddress,
	}
}

func (r *Repository) CreateQuestType(ctx context.Context, q *model.QuestType) (int64, error) {
	query, args, err := squirrel.
		Insert("quest_types").
		SetMap(questTypeSetMap(q)).
		Suffix("RETURNING quest_type_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build quest type insert query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("failed to insert quest type: %w", err)
	}
	return id, nil
}

func (r *Repository) GetQuestType(ctx context.Context, id int64) (*model.QuestType, error) {
	query, args, err := squirrel.
		Select(questTypeColumns...).
		From("quest_types").
		Where(squirrel.Eq{"quest_type_id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build quest type select query: %w", err)
	}

	var q questType
	if err := r.db.GetContext(ctx, &q, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quest type: %w", err)
	}
	return q.toModel(), nil
}

func (r *Repository) UpdateQuestType(ctx context.Context, q *model.QuestType) error {
	query, args, err := squirrel.
		Update("quest_types").
		SetMap(questTypeSetMap(q)).
		Where(squirrel.Eq{"quest_type_id": q.QuestTypeID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build quest type update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update quest type: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) DeleteQuestType(ctx context.Context, id int64) error {
	query, args, err := squirrel.
		Delete("quest_types").
		Where(squirrel.Eq{"quest_type_id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build quest type delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete quest type: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) ListQuestTypes(ctx context.Context) ([]*model.QuestType, error) {
	query, args, err := squirrel.
		Select(questTypeColumns...).
		From("quest_types").
		OrderBy("quest_type_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build quest type list query: %w", err)
	}

	var rows []questType
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list quest types: %w", err)
	}

	types := make([]*model.QuestType, len(rows))
	for i := range rows {
		types[i] = rows[i].toModel()
	}
	return types, nil
}

func (r *Repository) GetQuestTypeCount(ctx context.Context) (int64, error) {
	return r.count(ctx, "quest_types")
}

func (r *Repository) GetQuestTypeByIndex(ctx context.Context, index int64) (*model.QuestType, error) {
	query, args, err := squirrel.
		Select(questTypeColumns...).
		From("quest_types").
		OrderBy("quest_type_id").
		Offset(uint64(index)).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build quest type index query: %w", err)
	}

	var q questType
	if err := r.db.GetContext(ctx, &q, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quest type by index: %w", err)
	}
	return q.toModel(), nil
}
