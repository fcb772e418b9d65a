package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"eventscheduler/internal/domain"
)

type preferenceRepository struct {
	DB *sql.DB
}

// NewPreferenceRepository returns a domain.PreferenceRepository implemented with Postgres.
// ReplaceCategories issues several statements and should run inside a transaction.
func NewPreferenceRepository(db *sql.DB) domain.PreferenceRepository {
	return &preferenceRepository{DB: db}
}

func (r *preferenceRepository) ensure(ctx context.Context, userID int64) error {
	_, err := conn(ctx, r.DB).ExecContext(ctx,
		`INSERT INTO user_preferences (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return fmt.Errorf("ensure preference: %w", translate(err))
	}
	return nil
}

func (r *preferenceRepository) GetOrCreate(ctx context.Context, userID int64) (*domain.Preference, error) {
	if err := r.ensure(ctx, userID); err != nil {
		return nil, err
	}

	query := `
		SELECT c.id, c.name, c.description
		FROM user_preference_categories pc
		JOIN event_categories c ON c.id = pc.category_id
		WHERE pc.user_id = $1
		ORDER BY c.id
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pref := &domain.Preference{UserID: userID, Categories: make([]*domain.Category, 0)}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		pref.Categories = append(pref.Categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return pref, nil
}

func (r *preferenceRepository) ReplaceCategories(ctx context.Context, userID int64, categoryIDs []int64) error {
	if err := r.ensure(ctx, userID); err != nil {
		return err
	}

	db := conn(ctx, r.DB)
	// Row lock serializes concurrent replaces for one user.
	if _, err := db.ExecContext(ctx, `SELECT 1 FROM user_preferences WHERE user_id = $1 FOR UPDATE`, userID); err != nil {
		return fmt.Errorf("lock preference: %w", err)
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM user_preference_categories WHERE user_id = $1`, userID); err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}

	ib := psql.Insert("user_preference_categories").Columns("user_id", "category_id")
	for _, id := range categoryIDs {
		ib = ib.Values(userID, id)
	}
	query, args, err := ib.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("build preference insert: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return translate(err)
	}
	return nil
}
