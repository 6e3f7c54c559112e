package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/lucasmrqs/financial-football/internal/domain/game"
	"github.com/lucasmrqs/financial-football/internal/usecase"
)

func (h *Handler) StartMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartMatch")
	defer span.End()

	var req startMatchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	match, err := h.matchService.Start(ctx, usecase.StartMatchInput{
		PlayerName:   req.PlayerName,
		Profile:      req.Profile,
		ProfileScore: req.ProfileScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "start match failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchResponse{OK: true, Match: matchToDTO(match)})
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	match, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchResponse{OK: true, Match: matchToDTO(match)})
}

func (h *Handler) PlaceCard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlaceCard")
	defer span.End()

	matchID := r.PathValue("matchID")

	var req placeCardRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	match, err := h.matchService.Place(ctx, usecase.PlaceCardInput{
		MatchID:     matchID,
		AssetID:     req.AssetID,
		X:           req.X,
		Y:           req.Y,
		Width:       req.Width,
		Height:      req.Height,
		FieldHeight: req.FieldHeight,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "place card failed", "match_id", matchID, "asset_id", req.AssetID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchResponse{OK: true, Match: matchToDTO(match)})
}

func (h *Handler) RemoveCard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveCard")
	defer span.End()

	matchID := r.PathValue("matchID")
	assetID, err := strconv.Atoi(r.PathValue("assetID"))
	if err != nil || assetID <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: invalid asset id %q", usecase.ErrInvalidInput, r.PathValue("assetID")))
		return
	}

	match, err := h.matchService.Remove(ctx, matchID, assetID)
	if err != nil {
		h.logger.WarnContext(ctx, "remove card failed", "match_id", matchID, "asset_id", assetID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchResponse{OK: true, Match: matchToDTO(match)})
}

func (h *Handler) FinalizeMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinalizeMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	result, err := h.matchService.Finalize(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "finalize match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	resp := finalizeMatchResponse{
		OK:             true,
		Points:         result.Points,
		RemainingStock: result.Award.RemainingStock,
		PlayerName:     result.Award.PlayerName,
	}
	if result.Award.Awarded != nil {
		resp.Awarded = &awardedPrizeDTO{
			ID:        result.Award.Awarded.ID,
			Name:      result.Award.Awarded.Name,
			Threshold: result.Award.Awarded.Threshold,
		}
	}

	writeSuccess(ctx, w, http.StatusOK, resp)
}

type startMatchRequest struct {
	PlayerName   string `json:"playerName" validate:"required,max=60"`
	Profile      string `json:"profile" validate:"omitempty,max=20"`
	ProfileScore *int   `json:"profileScore" validate:"omitempty,gte=1,lte=100"`
}

type placeCardRequest struct {
	AssetID     int     `json:"assetId" validate:"gt=0"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width" validate:"gt=0"`
	Height      float64 `json:"height" validate:"gt=0"`
	FieldHeight float64 `json:"fieldHeight" validate:"gt=0"`
}

type placementDTO struct {
	AssetID   int     `json:"assetId"`
	AssetName string  `json:"assetName"`
	Zone      string  `json:"zone"`
	Correct   bool    `json:"correct"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

type matchDTO struct {
	ID         string         `json:"id"`
	PlayerName string         `json:"playerName"`
	Profile    string         `json:"profile"`
	Placements []placementDTO `json:"placements"`
	Finalized  bool           `json:"finalized"`
	CreatedAt  string         `json:"createdAt"`
	UpdatedAt  string         `json:"updatedAt"`
}

type matchResponse struct {
	OK    bool     `json:"ok"`
	Match matchDTO `json:"match"`
}

type finalizeMatchResponse struct {
	OK             bool             `json:"ok"`
	Points         int              `json:"points"`
	Awarded        *awardedPrizeDTO `json:"awarded"`
	RemainingStock int              `json:"remainingStock"`
	PlayerName     string           `json:"playerName"`
}

func matchToDTO(match game.Match) matchDTO {
	placements := make([]placementDTO, 0, len(match.Placements))
	for _, p := range match.Placements {
		placements = append(placements, placementDTO{
			AssetID:   p.AssetID,
			AssetName: p.AssetName,
			Zone:      string(p.Zone),
			Correct:   p.Correct,
			X:         p.X,
			Y:         p.Y,
			Width:     p.Width,
			Height:    p.Height,
		})
	}

	return matchDTO{
		ID:         match.ID,
		PlayerName: match.PlayerName,
		Profile:    string(match.Profile),
		Placements: placements,
		Finalized:  match.Finalized,
		CreatedAt:  match.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  match.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
