package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"eventscheduler/internal/domain"

	"github.com/lib/pq"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates missing tables and indexes. It is idempotent.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Postgres error codes the repositories translate into domain errors.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

// translate maps constraint violations onto domain sentinels and passes other errors through.
func translate(err error) error {
	var perr *pq.Error
	if !errors.As(err, &perr) {
		return err
	}
	switch string(perr.Code) {
	case pqUniqueViolation:
		if perr.Constraint == "users_username_key" {
			return domain.ErrUsernameTaken
		}
	case pqForeignKeyViolation:
		switch perr.Constraint {
		case "time_slots_category_id_fkey", "user_preference_categories_category_id_fkey":
			return domain.ErrInvalidCategory
		case "time_slots_user_id_fkey":
			return fmt.Errorf("%w: occupant user does not exist", domain.ErrInvalidInput)
		}
	case pqCheckViolation:
		if perr.Constraint == "time_slots_window_check" {
			return domain.ErrInvalidWindow
		}
	}
	return err
}
