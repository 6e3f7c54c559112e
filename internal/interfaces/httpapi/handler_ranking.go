package httpapi

import (
	"net/http"
	"time"

	"github.com/lucasmrqs/financial-football/internal/domain/gamelog"
)

func (h *Handler) GetRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRanking")
	defer span.End()

	records, err := h.rankingService.DailyRanking(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "daily ranking failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	entries := make([]rankingEntryDTO, 0, len(records))
	for _, rec := range records {
		entries = append(entries, rankingEntryDTO{
			PlayerName: rec.PlayerName,
			Points:     rec.Points,
			Prize:      rec.Prize,
			PlayedAt:   rec.Timestamp.UTC().Format(time.RFC3339),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, rankingResponse{OK: true, Ranking: entries})
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	records, err := h.rankingService.ListAllGames(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list games failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	games := make([]gameRecordDTO, 0, len(records))
	for _, rec := range records {
		games = append(games, gameRecordToDTO(rec))
	}

	writeSuccess(ctx, w, http.StatusOK, listGamesResponse{OK: true, Games: games})
}

type rankingEntryDTO struct {
	PlayerName string `json:"playerName"`
	Points     int    `json:"points"`
	Prize      string `json:"prize,omitempty"`
	PlayedAt   string `json:"playedAt"`
}

type rankingResponse struct {
	OK      bool              `json:"ok"`
	Ranking []rankingEntryDTO `json:"ranking"`
}

type gameCardDTO struct {
	AssetID   int     `json:"assetId"`
	AssetName string  `json:"assetName"`
	Zone      string  `json:"zone"`
	Correct   bool    `json:"correct"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

type gameRecordDTO struct {
	ID         string        `json:"id"`
	Timestamp  string        `json:"timestamp"`
	PlayerName string        `json:"playerName"`
	Profile    string        `json:"profile"`
	Points     int           `json:"points"`
	Prize      string        `json:"prize,omitempty"`
	Cards      []gameCardDTO `json:"cards"`
}

type listGamesResponse struct {
	OK    bool            `json:"ok"`
	Games []gameRecordDTO `json:"games"`
}

func gameRecordToDTO(rec gamelog.Record) gameRecordDTO {
	cards := make([]gameCardDTO, 0, len(rec.Cards))
	for _, c := range rec.Cards {
		cards = append(cards, gameCardDTO{
			AssetID:   c.AssetID,
			AssetName: c.AssetName,
			Zone:      c.Zone,
			Correct:   c.Correct,
			X:         c.X,
			Y:         c.Y,
		})
	}

	return gameRecordDTO{
		ID:         rec.ID,
		Timestamp:  rec.Timestamp.UTC().Format(time.RFC3339),
		PlayerName: rec.PlayerName,
		Profile:    rec.Profile,
		Points:     rec.Points,
		Prize:      rec.Prize,
		Cards:      cards,
	}
}
