package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/lucasmrqs/financial-football/internal/domain/settings"
	"github.com/lucasmrqs/financial-football/internal/usecase"
)

func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetConfig")
	defer span.End()

	cfg, err := h.configService.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get game config failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, configResponse{OK: true, Config: configToDTO(cfg)})
}

func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateConfig")
	defer span.End()

	var req updateConfigRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	cfg, err := h.configService.Update(ctx, settings.Patch{
		PointsPerCorrectCard: req.PointsPerCorrectCard,
		PointsPerWrongCard:   req.PointsPerWrongCard,
		BonusIdealLineup:     req.BonusIdealLineup,
		MaxScore:             req.MaxScore,
		TimeLimitActive:      req.TimeLimitActive,
		TimeLimitSeconds:     req.TimeLimitSeconds,
		StockWithGame:        req.StockWithGame,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update game config failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, configResponse{OK: true, Config: configToDTO(cfg)})
}

type updateConfigRequest struct {
	PointsPerCorrectCard *int  `json:"pointsPerCorrectCard"`
	PointsPerWrongCard   *int  `json:"pointsPerWrongCard"`
	BonusIdealLineup     *int  `json:"bonusIdealLineup"`
	MaxScore             *int  `json:"maxScore"`
	TimeLimitActive      *bool `json:"timeLimitActive"`
	TimeLimitSeconds     *int  `json:"timeLimitSeconds"`
	StockWithGame        *bool `json:"stockWithGame"`
}

type configDTO struct {
	PointsPerCorrectCard int  `json:"pointsPerCorrectCard"`
	PointsPerWrongCard   int  `json:"pointsPerWrongCard"`
	BonusIdealLineup     int  `json:"bonusIdealLineup"`
	MaxScore             int  `json:"maxScore"`
	TimeLimitActive      bool `json:"timeLimitActive"`
	TimeLimitSeconds     int  `json:"timeLimitSeconds"`
	StockWithGame        bool `json:"stockWithGame"`
}

type configResponse struct {
	OK     bool      `json:"ok"`
	Config configDTO `json:"config"`
}

func configToDTO(cfg settings.GameConfig) configDTO {
	return configDTO(cfg)
}
