package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lucasmrqs/financial-football/internal/domain/manualstock"
)

type stockItemTableModel struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Quantity int    `db:"quantity"`
}

type ManualStockRepository struct {
	db *sqlx.DB
}

func NewManualStockRepository(db *sqlx.DB) *ManualStockRepository {
	return &ManualStockRepository{db: db}
}

func (r *ManualStockRepository) List(ctx context.Context) ([]manualstock.Item, error) {
	var rows []stockItemTableModel
	query := `SELECT id, name, quantity FROM manual_stock_items ORDER BY name, id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}

	out := make([]manualstock.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, manualstock.Item(row))
	}
	return out, nil
}

func (r *ManualStockRepository) Create(ctx context.Context, item manualstock.Item) error {
	query := `INSERT INTO manual_stock_items (id, name, quantity) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, item.ID, item.Name, item.Quantity); err != nil {
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

func (r *ManualStockRepository) Update(ctx context.Context, item manualstock.Item) error {
	query := `UPDATE manual_stock_items
SET name = $2, quantity = $3, updated_at = NOW()
WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, item.ID, item.Name, item.Quantity)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update stock item rows affected: %w", err)
	}
	if affected == 0 {
		return manualstock.ErrNotFound
	}
	return nil
}

func (r *ManualStockRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM manual_stock_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete stock item rows affected: %w", err)
	}
	if affected == 0 {
		return manualstock.ErrNotFound
	}
	return nil
}
