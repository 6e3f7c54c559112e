package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/lucasmrqs/financial-football/internal/domain/gamelog"
	"github.com/lucasmrqs/financial-football/internal/usecase"
)

func (h *Handler) SubmitAward(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitAward")
	defer span.End()

	var req awardRequest
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

	cards := make([]gamelog.Card, 0, len(req.Cards))
	for _, c := range req.Cards {
		cards = append(cards, gamelog.Card{
			AssetID:   c.AssetID,
			AssetName: c.AssetName,
			Zone:      c.Zone,
			Correct:   c.Correct,
			X:         c.X,
			Y:         c.Y,
		})
	}

	result, err := h.awardService.AwardAndLog(ctx, usecase.AwardInput{
		Points:     req.Points,
		PlayerName: req.PlayerName,
		Profile:    req.Profile,
		Cards:      cards,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "award failed", "points", req.Points, "error", err)
		writeError(ctx, w, err)
		return
	}

	clientIP, _ := clientIPFromContext(ctx)
	h.logger.InfoContext(ctx, "award submitted",
		"client_ip", clientIP,
		"points", result.Points,
		"awarded", result.Awarded != nil,
	)

	writeSuccess(ctx, w, http.StatusOK, awardResultToResponse(result))
}

type awardCardPayload struct {
	AssetID   int     `json:"assetId" validate:"gt=0"`
	AssetName string  `json:"assetName"`
	Zone      string  `json:"zone"`
	Correct   bool    `json:"correct"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

type awardRequest struct {
	Points     int                `json:"points" validate:"gte=0"`
	PlayerName string             `json:"playerName"`
	Profile    string             `json:"profile"`
	Cards      []awardCardPayload `json:"cards" validate:"omitempty,dive"`
}

type awardedPrizeDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Threshold int    `json:"threshold"`
}

type awardResponse struct {
	OK             bool             `json:"ok"`
	Awarded        *awardedPrizeDTO `json:"awarded"`
	RemainingStock int              `json:"remainingStock"`
	Points         int              `json:"points"`
	PlayerName     string           `json:"playerName"`
}

func awardResultToResponse(result usecase.AwardResult) awardResponse {
	resp := awardResponse{
		OK:             true,
		RemainingStock: result.RemainingStock,
		Points:         result.Points,
		PlayerName:     result.PlayerName,
	}
	if result.Awarded != nil {
		resp.Awarded = &awardedPrizeDTO{
			ID:        result.Awarded.ID,
			Name:      result.Awarded.Name,
			Threshold: result.Awarded.Threshold,
		}
	}
	return resp
}
