package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/lucasmrqs/financial-football/internal/domain/manualstock"
	"github.com/lucasmrqs/financial-football/internal/usecase"
)

func (h *Handler) ListStockItems(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStockItems")
	defer span.End()

	items, err := h.stockService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list stock items failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dtos := make([]stockItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, stockItemToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, listStockItemsResponse{OK: true, Items: dtos})
}

func (h *Handler) CreateStockItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateStockItem")
	defer span.End()

	var req createStockItemRequest
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

	item, err := h.stockService.Create(ctx, req.Name, req.Quantity)
	if err != nil {
		h.logger.WarnContext(ctx, "create stock item failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, stockItemResponse{OK: true, Item: stockItemToDTO(item)})
}

func (h *Handler) UpdateStockItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateStockItem")
	defer span.End()

	itemID := r.PathValue("itemID")

	var req updateStockItemRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	item, err := h.stockService.Update(ctx, itemID, usecase.UpdateStockItemInput{
		Name:     req.Name,
		Quantity: req.Quantity,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update stock item failed", "item_id", itemID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stockItemResponse{OK: true, Item: stockItemToDTO(item)})
}

func (h *Handler) DeleteStockItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteStockItem")
	defer span.End()

	itemID := r.PathValue("itemID")
	if err := h.stockService.Delete(ctx, itemID); err != nil {
		h.logger.WarnContext(ctx, "delete stock item failed", "item_id", itemID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, okResponse{OK: true})
}

func (h *Handler) WithdrawStockItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WithdrawStockItem")
	defer span.End()

	itemID := r.PathValue("itemID")
	result, err := h.stockService.Withdraw(ctx, itemID)
	if err != nil {
		h.logger.WarnContext(ctx, "withdraw stock item failed", "item_id", itemID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, withdrawResponse{
		OK:               true,
		Item:             stockItemToDTO(result.Item),
		PreviousQuantity: result.PreviousQuantity,
	})
}

type stockItemDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type listStockItemsResponse struct {
	OK    bool           `json:"ok"`
	Items []stockItemDTO `json:"items"`
}

type stockItemResponse struct {
	OK   bool         `json:"ok"`
	Item stockItemDTO `json:"item"`
}

type withdrawResponse struct {
	OK               bool         `json:"ok"`
	Item             stockItemDTO `json:"item"`
	PreviousQuantity int          `json:"previousQuantity"`
}

type createStockItemRequest struct {
	Name     string `json:"name" validate:"required,max=80"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

type updateStockItemRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=80"`
	Quantity *int    `json:"quantity"`
}

func stockItemToDTO(item manualstock.Item) stockItemDTO {
	return stockItemDTO{ID: item.ID, Name: item.Name, Quantity: item.Quantity}
}
