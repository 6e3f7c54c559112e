package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lucasmrqs/financial-football/internal/domain/gamelog"
)

type GameLogRepository struct {
	db *sqlx.DB
}

func NewGameLogRepository(db *sqlx.DB) *GameLogRepository {
	return &GameLogRepository{db: db}
}

func (r *GameLogRepository) Append(ctx context.Context, record gamelog.Record) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx append game record: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO game_records (id, played_at, player_name, profile, points, prize)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = tx.ExecContext(ctx, query,
		record.ID,
		record.Timestamp,
		record.PlayerName,
		record.Profile,
		record.Points,
		nullablePrize(record.Prize),
	)
	if err != nil {
		return fmt.Errorf("insert game record: %w", err)
	}

	cardQuery := `INSERT INTO game_record_cards (game_record_id, asset_id, asset_name, zone, correct, x, y)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, card := range record.Cards {
		_, err = tx.ExecContext(ctx, cardQuery,
			record.ID,
			card.AssetID,
			card.AssetName,
			card.Zone,
			card.Correct,
			card.X,
			card.Y,
		)
		if err != nil {
			return fmt.Errorf("insert game record card: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append game record tx: %w", err)
	}
	return nil
}

func (r *GameLogRepository) ListAll(ctx context.Context) ([]gamelog.Record, error) {
	var recordRows []gameRecordTableModel
	query := `SELECT id, played_at, player_name, profile, points, prize, created_at
FROM game_records
ORDER BY played_at, id`
	if err := r.db.SelectContext(ctx, &recordRows, query); err != nil {
		return nil, fmt.Errorf("list game records: %w", err)
	}

	var cardRows []gameRecordCardTableModel
	cardQuery := `SELECT id, game_record_id, asset_id, asset_name, zone, correct, x, y
FROM game_record_cards
ORDER BY game_record_id, id`
	if err := r.db.SelectContext(ctx, &cardRows, cardQuery); err != nil {
		return nil, fmt.Errorf("list game record cards: %w", err)
	}

	cardsByRecord := make(map[string][]gamelog.Card, len(recordRows))
	for _, row := range cardRows {
		cardsByRecord[row.RecordID] = append(cardsByRecord[row.RecordID], row.toDomain())
	}

	out := make([]gamelog.Record, 0, len(recordRows))
	for _, row := range recordRows {
		out = append(out, row.toDomain(cardsByRecord[row.ID]))
	}
	return out, nil
}
