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

type event struct {
	EventID     int64     `db:"event_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	StartDate   time.Time `db:"start_date"`
	EndDate     time.Time `db:"end_date"`
	Status      int       `db:"status"`
}

func (e *event) toModel() *model.Event {
	return &model.Event{
		EventID:     e.EventID,
		Name:        e.Name,
		Description: e.Description,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Status:      model.EventStatus(e.Status),
	}
}

func (r *Repository) CreateEvent(ctx context.Context, ev *model.Event) (int64, error) {
	query, args, err := squirrel.
		Insert("events").
		SetMap(map[string]interface{}{
			"name":        ev.Name,
			"description": ev.Description,
			"start_date":  ev.StartDate,
			"end_date":    ev.EndDate,
			"status":      int(ev.Status),
		}).
		Suffix("RETURNING event_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build event insert query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("failed to insert event: %w", err)
	}
	return id, nil
}

func (r *Repository) GetEvent(ctx context.Context, eventID int64) (*model.Event, error) {
	query, args, err := squirrel.
		Select("event_id", "name", "description", "start_date", "end_date", "status").
		From("events").
		Where(squirrel.Eq{"event_id": eventID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build event select query: %w", err)
	}

	var e event
	if err := r.db.GetContext(ctx, &e, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return e.toModel(), nil
}

func (r *Repository) UpdateEvent(ctx context.Context, ev *model.Event) error {
	query, args, err := squirrel.
		Update("events").
		SetMap(map[string]interface{}{
			"name":        ev.Name,
			"description": ev.Description,
			"start_date":  ev.StartDate,
			"end_date":    ev.EndDate,
			"status":      int(ev.Status),
		}).
		Where(squirrel.Eq{"event_id": ev.EventID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build event update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) DeleteEvent(ctx context.Context, eventID int64) error {
	query, args, err := squirrel.
		Delete("events").
		Where(squirrel.Eq{"event_id": eventID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build event delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return requireRowAffected(result)
}

func (r *Repository) ListEvents(ctx context.Context) ([]*model.Event, error) {
	query, args, err := squirrel.
		Select("event_id", "name", "description", "start_date", "end_date", "status").
		From("events").
		OrderBy("event_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build event list query: %w", err)
	}

	var rows []event
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]*model.Event, len(rows))
	for i := range rows {
		events[i] = rows[i].toModel()
	}
	return events, nil
}

func (r *Repository) GetEventCount(ctx context.Context) (int64, error) {
	return r.count(ctx, "events")
}

// GetEventByIndex returns the event at the given position in insertion order.
func (r *Repository) GetEventByIndex(ctx context.Context, index int64) (*model.Event, error) {
	query, args, err := squirrel.
		Select("event_id", "name", "description", "start_date", "end_date", "status").
		From("events").
		OrderBy("event_id").
		Offset(uint64(index)).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build event index query: %w", err)
	}

	var e event
	if err := r.db.GetContext(ctx, &e, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event by index: %w", err)
	}
	return e.toModel(), nil
}

func (r *Repository) count(ctx context.Context, table string) (int64, error) {
	query, args, err := squirrel.
		Select("count(*)").
		From(table).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var n int64
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

func requireRowAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
