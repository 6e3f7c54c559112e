package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lucasmrqs/financial-football/internal/domain/prize"
)

type PrizeRepository struct {
	db *sqlx.DB
}

func NewPrizeRepository(db *sqlx.DB) *PrizeRepository {
	return &PrizeRepository{db: db}
}

func (r *PrizeRepository) List(ctx context.Context) ([]prize.Prize, time.Time, error) {
	var rows []prizeTableModel
	query := `SELECT id, name, stock, threshold, created_at, updated_at
FROM prizes
ORDER BY threshold, id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, time.Time{}, fmt.Errorf("list prizes: %w", err)
	}

	var updatedAt time.Time
	out := make([]prize.Prize, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
		if row.UpdatedAt.After(updatedAt) {
			updatedAt = row.UpdatedAt
		}
	}
	return out, updatedAt, nil
}

func (r *PrizeRepository) Create(ctx context.Context, p prize.Prize) error {
	query := `INSERT INTO prizes (id, name, stock, threshold)
VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Stock, p.Threshold); err != nil {
		if isUniqueViolation(err) {
			return prize.ErrDuplicateID
		}
		return fmt.Errorf("insert prize: %w", err)
	}
	return nil
}

func (r *PrizeRepository) Update(ctx context.Context, p prize.Prize) error {
	query := `UPDATE prizes
SET name = $2, stock = $3, threshold = $4, updated_at = NOW()
WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Stock, p.Threshold)
	if err != nil {
		return fmt.Errorf("update prize: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update prize rows affected: %w", err)
	}
	if affected == 0 {
		return prize.ErrNotFound
	}
	return nil
}

func (r *PrizeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM prizes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete prize: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete prize rows affected: %w", err)
	}
	if affected == 0 {
		return prize.ErrNotFound
	}
	return nil
}
