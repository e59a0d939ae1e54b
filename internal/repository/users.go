package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dossinstitute/eventquest/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type user struct {
	UserID int64  `db:"user_id"`
	Wallet string `db:"wallet"`
	Role   string `db:"role"`
}

func (u *user) toModel() *model.User {
	return &model.User{
		UserID: u.UserID,
		Wallet: u.Wallet,
		Role:   u.Role,
	}
}

// CreateUser registers a wallet. One record per wallet: a second create for
// the same wallet fails with ErrConflict.
func (r *Repository) CreateUser(ctx context.Context, u *model.User) (int64, error) {
	var id int64
	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		existsQuery, existsArgs, err := squirrel.
			Select("1").
			From("users").
			Where(squirrel.Eq{"wallet": u.Wallet}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		var exists bool
		err = tx.GetContext(ctx, &exists, existsQuery, existsArgs...)
		if err == nil {
			return ErrConflict
		} else if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		insertQuery, insertArgs, err := squirrel.
			Insert("users").
			SetMap(map[string]interface{}{
				"wallet": u.Wallet,
				"role":   u.Role,
			}).
			Suffix("RETURNING user_id").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		return tx.GetContext(ctx, &id, insertQuery, insertArgs...)
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return 0, ErrConflict
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

func (r *Repository) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	query, args, err := squirrel.
		Select("user_id", "wallet", "role").
		From("users").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user select query: %w", err)
	}

	var u user
	if err := r.db.GetContext(ctx, &u, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u.toModel(), nil
}

func (r *Repository) GetUserByWallet(ctx context.Context, wallet string) (*model.User, error) {
	query, args, err := squirrel.
		Select("user_id", "wallet", "role").
		From("users").
		Where(squirrel.Eq{"wallet": wallet}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user select query: %w", err)
	}

	var u user
	if err := r.db.GetContext(ctx, &u, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by wallet: %w", err)
	}
	return u.toModel(), nil
}

func (r *Repository) UpdateUser(ctx context.Context, u *model.User) error {
	query, args, err := squirrel.
		Update("users").
		SetMap(map[string]interface{}{
			"wallet": u.Wallet,
			"role":   u.Role,
		}).
		Where(squirrel.Eq{"user_id": u.UserID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) DeleteUser(ctx context.Context, userID int64) error {
	query, args, err := squirrel.
		Delete("users").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) ListUsers(ctx context.Context) ([]*model.User, error) {
	query, args, err := squirrel.
		Select("user_id", "wallet", "role").
		From("users").
		OrderBy("user_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user list query: %w", err)
	}

	var rows []user
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*model.User, len(rows))
	for i := range rows {
		users[i] = rows[i].toModel()
	}
	return users, nil
}

func (r *Repository) GetUserCount(ctx context.Context) (int64, error) {
	return r.count(ctx, "users")
}

func (r *Repository) GetUserByIndex(ctx context.Context, index int64) (*model.User, error) {
	query, args, err := squirrel.
		Select("user_id", "wallet", "role").
		From("users").
		OrderBy("user_id").
		Offset(uint64(index)).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user index query: %w", err)
	}

	var u user
	if err := r.db.GetContext(ctx, &u, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by index: %w", err)
	}
	return u.toModel(), nil
}

// RegisterForQuest appends a quest registration for the user. Duplicate
// registrations accumulate; the list is append-only.
func (r *Repository) RegisterForQuest(ctx context.Context, userID, questID int64) error {
	query, args, err := squirrel.
		Insert("user_quest_registrations").
		Columns("user_id", "quest_id").
		Values(userID, questID).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build quest registration query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to register for quest: %w", err)
	}
	return nil
}

func (r *Repository) GetRegisteredQuests(ctx context.Context, userID int64) ([]int64, error) {
	query, args, err := squirrel.
		Select("quest_id").
		From("user_quest_registrations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build registered quests query: %w", err)
	}

	var questIDs []int64
	if err := r.db.SelectContext(ctx, &questIDs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get registered quests: %w", err)
	}
	return questIDs, nil
}
