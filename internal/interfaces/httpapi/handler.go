package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lucasmrqs/financial-football/internal/usecase"
)

type Handler struct {
	catalogService *usecase.CatalogService
	configService  *usecase.ConfigService
	prizeService   *usecase.PrizeService
	awardService   *usecase.AwardService
	rankingService *usecase.RankingService
	matchService   *usecase.MatchService
	stockService   *usecase.ManualStockService
	logger         *slog.Logger
	validator      *validator.Validate
}

func NewHandler(
	catalogService *usecase.CatalogService,
	configService *usecase.ConfigService,
	prizeService *usecase.PrizeService,
	awardService *usecase.AwardService,
	rankingService *usecase.RankingService,
	matchService *usecase.MatchService,
	stockService *usecase.ManualStockService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		catalogService: catalogService,
		configService:  configService,
		prizeService:   prizeService,
		awardService:   awardService,
		rankingService: rankingService,
		matchService:   matchService,
		stockService:   stockService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
