package repository

import (
	"context"
	"fmt"

	"github.com/dossinstitute/eventquest/migrations"
	"github.com/dossinstitute/eventquest/pkg/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

var (
	// ErrNotFound reports a lookup for an identifier that has never existed
	// or was deleted. Handlers translate it per entity.
	ErrNotFound = errors.New("not found")

	// ErrConflict reports a create with an identifier or unique key that is
	// already in use.
	ErrConflict = errors.New("already exists")

	// ErrAlreadyDistributed reports a reward ledger entry that is already set.
	ErrAlreadyDistributed = errors.New("reward already distributed")
)

type Repository struct {
	db *sqlx.DB
}

type Config struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (c *Config) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
	)
}

func New(cfg Config) (*Repository, error) {
	db, err := sqlx.Connect("pgx", cfg.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Logger().Info("Connected to database successfully")

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Migrate applies the embedded goose migrations.
func (r *Repository) Migrate() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(r.db.DB, ".")
}

// Transaction runs t in a database transaction, rolling back on error.
// Every operation gets all-or-nothing semantics through this helper.
func (r *Repository) Transaction(ctx context.Context, t func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	err = t(tx)
	if err != nil {
		txErr := tx.Rollback()
		if txErr != nil {
			return errors.Wrapf(err, "rollback error: %v", txErr)
		}
		return err
	}
	return tx.Commit()
}
