package postgres

import (
	"context"
	"database/sql"

	"tourneyslots/internal/domain"
)

type contentRepository struct {
	DB *sql.DB
}

func NewContentRepository(db *sql.DB) domain.ContentRepository {
	return &contentRepository{
		DB: db,
	}
}

func (r *contentRepository) ListScheduleItems(ctx context.Context) ([]*domain.ScheduleItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title, time_of_day, sort_order
		FROM schedule_items
		ORDER BY sort_order ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.ScheduleItem
	for rows.Next() {
		item := &domain.ScheduleItem{}
		if err := rows.Scan(&item.ID, &item.Title, &item.TimeOfDay, &item.Order); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.ScheduleItem{}
	}
	return items, nil
}

func (r *contentRepository) CreateScheduleItem(ctx context.Context, item *domain.ScheduleItem) error {
	query := `
		INSERT INTO schedule_items (title, time_of_day, sort_order)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, item.Title, item.TimeOfDay, item.Order).Scan(&item.ID)
}

func (r *contentRepository) UpdateScheduleItem(ctx context.Context, item *domain.ScheduleItem) error {
	return r.exec(ctx, `
		UPDATE schedule_items SET title = $2, time_of_day = $3, sort_order = $4 WHERE id = $1
	`, item.ID, item.Title, item.TimeOfDay, item.Order)
}

func (r *contentRepository) DeleteScheduleItem(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM schedule_items WHERE id = $1`, id)
}

func (r *contentRepository) ListPrizeItems(ctx context.Context) ([]*domain.PrizeItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, label, amount, sort_order
		FROM prize_items
		ORDER BY sort_order ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.PrizeItem
	for rows.Next() {
		item := &domain.PrizeItem{}
		if err := rows.Scan(&item.ID, &item.Label, &item.Amount, &item.Order); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.PrizeItem{}
	}
	return items, nil
}

func (r *contentRepository) CreatePrizeItem(ctx context.Context, item *domain.PrizeItem) error {
	query := `
		INSERT INTO prize_items (label, amount, sort_order)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, item.Label, item.Amount, item.Order).Scan(&item.ID)
}

func (r *contentRepository) UpdatePrizeItem(ctx context.Context, item *domain.PrizeItem) error {
	return r.exec(ctx, `
		UPDATE prize_items SET label = $2, amount = $3, sort_order = $4 WHERE id = $1
	`, item.ID, item.Label, item.Amount, item.Order)
}

func (r *contentRepository) DeletePrizeItem(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM prize_items WHERE id = $1`, id)
}

func (r *contentRepository) GetSiteContent(ctx context.Context) (domain.SiteContent, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT section, body FROM site_content`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	content := domain.SiteContent{}
	for rows.Next() {
		var section, body string
		if err := rows.Scan(&section, &body); err != nil {
			return nil, err
		}
		content[section] = body
	}
	return content, rows.Err()
}

func (r *contentRepository) MergeSiteContent(ctx context.Context, content domain.SiteContent) error {
	for section, body := range content {
		_, err := r.DB.ExecContext(ctx, `
			INSERT INTO site_content (section, body)
			VALUES ($1, $2)
			ON CONFLICT (section) DO UPDATE SET body = EXCLUDED.body
		`, section, body)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *contentRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
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
