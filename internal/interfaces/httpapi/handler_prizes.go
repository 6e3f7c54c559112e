package httpapi

import (
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/lucasmrqs/financial-football/internal/domain/prize"
	"github.com/lucasmrqs/financial-football/internal/usecase"
)

func (h *Handler) ListPrizes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPrizes")
	defer span.End()

	prizes, updatedAt, err := h.prizeService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list prizes failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]prizeDTO, 0, len(prizes))
	for _, p := range prizes {
		items = append(items, prizeToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, listPrizesResponse{
		OK:        true,
		Prizes:    items,
		UpdatedAt: updatedAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) CreatePrize(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePrize")
	defer span.End()

	var req createPrizeRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.prizeService.Create(ctx, usecase.CreatePrizeInput{
		ID:        req.ID,
		Name:      req.Name,
		Stock:     req.Stock,
		Threshold: req.Threshold,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create prize failed", "prize_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, prizeResponse{OK: true, Prize: prizeToDTO(item)})
}

func (h *Handler) UpdatePrize(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePrize")
	defer span.End()

	prizeID := r.PathValue("prizeID")

	var req updatePrizeRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	item, err := h.prizeService.Update(ctx, prizeID, usecase.UpdatePrizeInput{
		Name:      req.Name,
		Stock:     req.Stock,
		Threshold: req.Threshold,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update prize failed", "prize_id", prizeID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, prizeResponse{OK: true, Prize: prizeToDTO(item)})
}

func (h *Handler) DeletePrize(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePrize")
	defer span.End()

	prizeID := r.PathValue("prizeID")
	if err := h.prizeService.Delete(ctx, prizeID); err != nil {
		h.logger.WarnContext(ctx, "delete prize failed", "prize_id", prizeID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, okResponse{OK: true})
}

type okResponse struct {
	OK bool `json:"ok"`
}

type prizeDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	Threshold int    `json:"threshold"`
}

type listPrizesResponse struct {
	OK        bool       `json:"ok"`
	Prizes    []prizeDTO `json:"prizes"`
	UpdatedAt string     `json:"updatedAt"`
}

type prizeResponse struct {
	OK    bool     `json:"ok"`
	Prize prizeDTO `json:"prize"`
}

type createPrizeRequest struct {
	ID        string `json:"id" validate:"omitempty,max=30"`
	Name      string `json:"name" validate:"required,max=60"`
	Stock     int    `json:"stock" validate:"gte=0"`
	Threshold int    `json:"threshold" validate:"gte=0"`
}

type updatePrizeRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=60"`
	Stock     *int    `json:"stock" validate:"omitempty,gte=0"`
	Threshold *int    `json:"threshold" validate:"omitempty,gte=0"`
}

func prizeToDTO(p prize.Prize) prizeDTO {
	return prizeDTO{ID: p.ID, Name: p.Name, Stock: p.Stock, Threshold: p.Threshold}
}
