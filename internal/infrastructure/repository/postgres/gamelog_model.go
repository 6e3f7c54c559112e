package postgres

import (
	"database/sql"
	"time"

	"github.com/lucasmrqs/financial-football/internal/domain/gamelog"
)

type gameRecordTableModel struct {
	ID         string         `db:"id"`
	PlayedAt   time.Time      `db:"played_at"`
	PlayerName string         `db:"player_name"`
	Profile    string         `db:"profile"`
	Points     int            `db:"points"`
	Prize      sql.NullString `db:"prize"`
	CreatedAt  time.Time      `db:"created_at"`
}

type gameRecordCardTableModel struct {
	ID        int64   `db:"id"`
	RecordID  string  `db:"game_record_id"`
	AssetID   int     `db:"asset_id"`
	AssetName string  `db:"asset_name"`
	Zone      string  `db:"zone"`
	Correct   bool    `db:"correct"`
	X         float64 `db:"x"`
	Y         float64 `db:"y"`
}

func (m gameRecordTableModel) toDomain(cards []gamelog.Card) gamelog.Record {
	return gamelog.Record{
		ID:         m.ID,
		Timestamp:  m.PlayedAt,
		PlayerName: m.PlayerName,
		Profile:    m.Profile,
		Points:     m.Points,
		Prize:      m.Prize.String,
		Cards:      cards,
	}
}

func (m gameRecordCardTableModel) toDomain() gamelog.Card {
	return gamelog.Card{
		AssetID:   m.AssetID,
		AssetName: m.AssetName,
		Zone:      m.Zone,
		Correct:   m.Correct,
		X:         m.X,
		Y:         m.Y,
	}
}

func nullablePrize(name string) sql.NullString {
	return sql.NullString{String: name, Valid: name != ""}
}
