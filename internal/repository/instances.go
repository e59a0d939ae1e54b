package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dossinstitute/eventquest/internal/quest"

	"github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type questInstance struct {
	QuestID   int64     `db:"quest_id"`
	Kind      string    `db:"kind"`
	Name      string    `db:"name"`
	Active    bool      `db:"active"`
	Completed bool      `db:"completed"`
	ExpiresAt time.Time `db:"expires_at"`
	Initiator string    `db:"initiator"`
	Rules     []byte    `db:"rules"`
}

type questInteraction struct {
	InteractionID  uuid.UUID `db:"interaction_id"`
	QuestID        int64     `db:"quest_id"`
	Actor          string    `db:"actor"`
	Action         string    `db:"action"`
	Outcome        []byte    `db:"outcome"`
	CompletedQuest bool      `db:"completed_quest"`
	CreatedAt      time.Time `db:"created_at"`
}

// CreateInstance persists a freshly initialized quest instance. An existing
// instance under the same quest id yields ErrConflict.
func (r *Repository) CreateInstance(ctx context.Context, inst *quest.Instance) error {
	rules, err := quest.MarshalRules(inst.Rules)
	if err != nil {
		return fmt.Errorf("failed to serialize quest rules: %w", err)
	}

	query, args, err := squirrel.
		Insert("quest_instances").
		Columns("quest_id", "kind", "name", "active", "completed", "expires_at", "initiator", "rules").
		Values(
			inst.State.QuestID, string(inst.State.Kind), inst.State.Name,
			inst.State.Active, inst.State.Completed, inst.State.ExpiresAt,
			inst.State.Initiator, rules,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build quest instance insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to insert quest instance: %w", err)
	}
	return nil
}

// GetInstance loads lifecycle state and variant rules for one quest instance.
func (r *Repository) GetInstance(ctx context.Context, questID int64) (*quest.Instance, error) {
	query, args, err := squirrel.
		Select("quest_id", "kind", "name", "active", "completed", "expires_at", "initiator", "rules").
		From("quest_instances").
		Where(squirrel.Eq{"quest_id": questID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build quest instance select query: %w", err)
	}

	var row questInstance
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quest instance: %w", err)
	}

	rules, err := quest.UnmarshalRules(quest.Kind(row.Kind), row.Rules)
	if err != nil {
		return nil, fmt.Errorf("failed to restore quest rules: %w", err)
	}

	return &quest.Instance{
		State: quest.State{
			QuestID:   row.QuestID,
			Kind:      quest.Kind(row.Kind),
			Name:      row.Name,
			Active:    row.Active,
			Completed: row.Completed,
			ExpiresAt: row.ExpiresAt,
			Initiator: row.Initiator,
		},
		Rules: rules,
	}, nil
}

// SaveInstance writes back lifecycle state and rules without an audit entry.
// Used for administrative transitions such as forced completion.
func (r *Repository) SaveInstance(ctx context.Context, inst *quest.Instance) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		return saveInstanceTx(ctx, tx, inst)
	})
}

// SaveInteraction writes back the mutated instance and appends the interaction
// to the audit trail in a single transaction, so a quest never records an
// interaction its stored progress does not reflect.
func (r *Repository) SaveInteraction(ctx context.Context, inst *quest.Instance, out *quest.Outcome) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		if err := saveInstanceTx(ctx, tx, inst); err != nil {
			return err
		}

		outcome, err := json.Marshal(out)
		if err != nil {
			return fmt.Errorf("failed to serialize interaction outcome: %w", err)
		}

		query, args, err := squirrel.
			Insert("quest_interactions").
			Columns("interaction_id", "quest_id", "actor", "action", "outcome", "completed_quest").
			Values(uuid.New(), inst.State.QuestID, out.Actor, out.Action, outcome, out.CompletedQuest).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build interaction insert query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert interaction: %w", err)
		}
		return nil
	})
}

func saveInstanceTx(ctx context.Context, tx *sqlx.Tx, inst *quest.Instance) error {
	rules, err := quest.MarshalRules(inst.Rules)
	if err != nil {
		return fmt.Errorf("failed to serialize quest rules: %w", err)
	}

	query, args, err := squirrel.
		Update("quest_instances").
		Set("active", inst.State.Active).
		Set("completed", inst.State.Completed).
		Set("rules", rules).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"quest_id": inst.State.QuestID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build quest instance update query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update quest instance: %w", err)
	}
	return requireRowAffected(result)
}

// ListInteractions returns the audit trail for one quest, oldest first.
func (r *Repository) ListInteractions(ctx context.Context, questID int64) ([]*quest.Outcome, error) {
	query, args, err := squirrel.
		Select("outcome").
		From("quest_interactions").
		Where(squirrel.Eq{"quest_id": questID}).
		OrderBy("created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build interaction list query: %w", err)
	}

	var rows [][]byte
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}

	outcomes := make([]*quest.Outcome, len(rows))
	for i, raw := range rows {
		var out quest.Outcome
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("failed to decode stored outcome: %w", err)
		}
		outcomes[i] = &out
	}
	return outcomes, nil
}
