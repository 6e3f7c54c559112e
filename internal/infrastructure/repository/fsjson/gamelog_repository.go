package fsjson

import (
	"context"
	"time"

	"github.com/lucasmrqs/financial-football/internal/domain/gamelog"
)

const gamesFile = "games.json"

type recordDoc struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	PlayerName string    `json:"playerName"`
	Profile    string    `json:"profile"`
	Points     int       `json:"points"`
	Prize      string    `json:"prize,omitempty"`
	Cards      []cardDoc `json:"cards"`
}

type cardDoc struct {
	AssetID   int     `json:"assetId"`
	AssetName string  `json:"assetName"`
	Zone      string  `json:"zone"`
	Correct   bool    `json:"correct"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// GameLogRepository appends finished matches to a single JSON array
// document, the way a kiosk deployment expects to pull the full history.
type GameLogRepository struct {
	store *Store
}

func NewGameLogRepository(store *Store) *GameLogRepository {
	return &GameLogRepository{store: store}
}

func (r *GameLogRepository) Append(_ context.Context, record gamelog.Record) error {
	lock := r.store.lockFor(gamesFile)
	lock.Lock()
	defer lock.Unlock()

	var docs []recordDoc
	if _, err := r.store.read(gamesFile, &docs); err != nil {
		return err
	}

	docs = append(docs, toRecordDoc(record))
	return r.store.write(gamesFile, docs)
}

func (r *GameLogRepository) ListAll(_ context.Context) ([]gamelog.Record, error) {
	lock := r.store.lockFor(gamesFile)
	lock.Lock()
	defer lock.Unlock()

	var docs []recordDoc
	if _, err := r.store.read(gamesFile, &docs); err != nil {
		return nil, err
	}

	records := make([]gamelog.Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, fromRecordDoc(doc))
	}
	return records, nil
}

func toRecordDoc(record gamelog.Record) recordDoc {
	doc := recordDoc{
		ID:         record.ID,
		Timestamp:  record.Timestamp,
		PlayerName: record.PlayerName,
		Profile:    record.Profile,
		Points:     record.Points,
		Prize:      record.Prize,
		Cards:      make([]cardDoc, 0, len(record.Cards)),
	}
	for _, card := range record.Cards {
		doc.Cards = append(doc.Cards, cardDoc(card))
	}
	return doc
}

func fromRecordDoc(doc recordDoc) gamelog.Record {
	record := gamelog.Record{
		ID:         doc.ID,
		Timestamp:  doc.Timestamp,
		PlayerName: doc.PlayerName,
		Profile:    doc.Profile,
		Points:     doc.Points,
		Prize:      doc.Prize,
		Cards:      make([]gamelog.Card, 0, len(doc.Cards)),
	}
	for _, card := range doc.Cards {
		record.Cards = append(record.Cards, gamelog.Card(card))
	}
	return record
}
