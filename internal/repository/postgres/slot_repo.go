package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventscheduler/internal/domain"

	"github.com/Masterminds/squirrel"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type slotRepository struct {
	DB *sql.DB
}

// NewSlotRepository returns a domain.SlotRepository implemented with Postgres.
func NewSlotRepository(db *sql.DB) domain.SlotRepository {
	return &slotRepository{DB: db}
}

func selectSlots() squirrel.SelectBuilder {
	return psql.Select(
		"s.id",
		"s.category_id",
		"c.name",
		"s.start_time",
		"s.end_time",
		"s.user_id",
		"u.username",
	).
		From("time_slots s").
		Join("event_categories c ON c.id = s.category_id").
		LeftJoin("users u ON u.id = s.user_id")
}

func scanSlot(row interface{ Scan(...any) error }) (*domain.TimeSlot, error) {
	var (
		s        domain.TimeSlot
		userID   sql.NullInt64
		username sql.NullString
	)
	if err := row.Scan(&s.ID, &s.CategoryID, &s.Category, &s.StartTime, &s.EndTime, &userID, &username); err != nil {
		return nil, err
	}
	if userID.Valid {
		s.UserID = &userID.Int64
	}
	if username.Valid {
		s.User = &username.String
	}
	return &s, nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func (r *slotRepository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.TimeSlot, error) {
	sb := selectSlots()
	if filter.CategoryID != nil {
		sb = sb.Where(squirrel.Eq{"s.category_id": *filter.CategoryID})
	}
	if filter.From != nil {
		sb = sb.Where(squirrel.GtOrEq{"s.start_time": *filter.From})
	}
	if filter.To != nil {
		sb = sb.Where(squirrel.LtOrEq{"s.start_time": *filter.To})
	}
	query, args, err := sb.OrderBy("s.start_time", "s.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build slot list query: %w", err)
	}

	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]*domain.TimeSlot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	query, args, err := selectSlots().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build slot query: %w", err)
	}
	s, err := scanSlot(conn(ctx, r.DB).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *slotRepository) GetForUpdate(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	query, args, err := psql.Select("id", "category_id", "start_time", "end_time", "user_id").
		From("time_slots").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build slot lock query: %w", err)
	}

	var (
		s      domain.TimeSlot
		userID sql.NullInt64
	)
	err = conn(ctx, r.DB).QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CategoryID, &s.StartTime, &s.EndTime, &userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if userID.Valid {
		s.UserID = &userID.Int64
	}
	return &s, nil
}

func (r *slotRepository) Create(ctx context.Context, s *domain.TimeSlot) error {
	query, args, err := psql.Insert("time_slots").
		Columns("category_id", "start_time", "end_time", "user_id").
		Values(s.CategoryID, s.StartTime, s.EndTime, nullableID(s.UserID)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build slot insert: %w", err)
	}
	return translate(conn(ctx, r.DB).QueryRowContext(ctx, query, args...).Scan(&s.ID))
}

func (r *slotRepository) Update(ctx context.Context, s *domain.TimeSlot) error {
	query, args, err := psql.Update("time_slots").
		Set("category_id", s.CategoryID).
		Set("start_time", s.StartTime).
		Set("end_time", s.EndTime).
		Set("user_id", nullableID(s.UserID)).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build slot update: %w", err)
	}
	return r.execOne(ctx, query, args)
}

func (r *slotRepository) SetOccupant(ctx context.Context, id int64, userID *int64) error {
	query, args, err := psql.Update("time_slots").
		Set("user_id", nullableID(userID)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build occupant update: %w", err)
	}
	return r.execOne(ctx, query, args)
}

func (r *slotRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("time_slots").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build slot delete: %w", err)
	}
	return r.execOne(ctx, query, args)
}

// execOne runs a statement expected to touch exactly one slot row.
func (r *slotRepository) execOne(ctx context.Context, query string, args []any) error {
	result, err := conn(ctx, r.DB).ExecContext(ctx, query, args...)
	if err != nil {
		return translate(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
