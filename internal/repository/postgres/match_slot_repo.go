package postgres

import (
	"context"
	"database/sql"
	"errors"

	"tourneyslots/internal/domain"
)

type matchSlotRepository struct {
	DB *sql.DB
}

func NewMatchSlotRepository(db *sql.DB) domain.MatchSlotRepository {
	return &matchSlotRepository{
		DB: db,
	}
}

const matchSlotColumns = "id, match_type, time_of_day, capacity, entry_fee, active, created_at, updated_at"

func (r *matchSlotRepository) Create(ctx context.Context, slot *domain.MatchSlot) error {
	query := `
		INSERT INTO match_slots (match_type, time_of_day, capacity, entry_fee, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		slot.MatchType, slot.TimeOfDay, slot.Capacity, slot.EntryFee, slot.Active, slot.CreatedAt, slot.UpdatedAt).
		Scan(&slot.ID)
}

func (r *matchSlotRepository) GetByID(ctx context.Context, id string) (*domain.MatchSlot, error) {
	query := `
		SELECT ` + matchSlotColumns + `
		FROM match_slots
		WHERE id = $1
	`
	slot := &domain.MatchSlot{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&slot.ID, &slot.MatchType, &slot.TimeOfDay, &slot.Capacity, &slot.EntryFee, &slot.Active, &slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return slot, nil
}

func (r *matchSlotRepository) ListAll(ctx context.Context) ([]*domain.MatchSlot, error) {
	query := `
		SELECT ` + matchSlotColumns + `
		FROM match_slots
		ORDER BY time_of_day ASC
	`
	return r.list(ctx, query)
}

func (r *matchSlotRepository) ListActive(ctx context.Context) ([]*domain.MatchSlot, error) {
	query := `
		SELECT ` + matchSlotColumns + `
		FROM match_slots
		WHERE active = TRUE
		ORDER BY time_of_day ASC
	`
	return r.list(ctx, query)
}

func (r *matchSlotRepository) list(ctx context.Context, query string, args ...any) ([]*domain.MatchSlot, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []*domain.MatchSlot
	for rows.Next() {
		slot := &domain.MatchSlot{}
		if err := rows.Scan(&slot.ID, &slot.MatchType, &slot.TimeOfDay, &slot.Capacity, &slot.EntryFee, &slot.Active, &slot.CreatedAt, &slot.UpdatedAt); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []*domain.MatchSlot{}
	}
	return slots, nil
}

func (r *matchSlotRepository) Update(ctx context.Context, slot *domain.MatchSlot) error {
	query := `
		UPDATE match_slots
		SET match_type = $2, time_of_day = $3, capacity = $4, entry_fee = $5, active = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		slot.ID, slot.MatchType, slot.TimeOfDay, slot.Capacity, slot.EntryFee, slot.Active, slot.UpdatedAt)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *matchSlotRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM match_slots WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
