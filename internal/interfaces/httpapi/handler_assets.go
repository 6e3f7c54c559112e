package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/lucasmrqs/financial-football/internal/domain/asset"
	"github.com/lucasmrqs/financial-football/internal/domain/game"
	"github.com/lucasmrqs/financial-football/internal/usecase"
)

func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAssets")
	defer span.End()

	assets, err := h.catalogService.ListAssets(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list assets failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]assetDTO, 0, len(assets))
	for _, a := range assets {
		items = append(items, assetToDTO(a))
	}

	writeSuccess(ctx, w, http.StatusOK, listAssetsResponse{OK: true, Assets: items})
}

func (h *Handler) GetPositions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPositions")
	defer span.End()

	positions, err := h.catalogService.GetPositions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get positions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, positionsResponse{OK: true, Positions: positionsToPayload(positions)})
}

func (h *Handler) PutPositions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PutPositions")
	defer span.End()

	var req putPositionsRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	positions, err := positionsFromPayload(req.Positions)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.catalogService.PutPositions(ctx, positions); err != nil {
		h.logger.WarnContext(ctx, "put positions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, positionsResponse{OK: true, Positions: positionsToPayload(positions)})
}

type assetDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Suitability int    `json:"suitability"`
	Return      int    `json:"return"`
	Safety      int    `json:"safety"`
	Description string `json:"description,omitempty"`
}

type listAssetsResponse struct {
	OK     bool       `json:"ok"`
	Assets []assetDTO `json:"assets"`
}

// positionsPayload mirrors the admin override document on the wire: asset
// id, then profile, then the list of accepted zones.
type positionsPayload map[string]map[string][]string

type putPositionsRequest struct {
	Positions positionsPayload `json:"positions" validate:"required"`
}

type positionsResponse struct {
	OK        bool             `json:"ok"`
	Positions positionsPayload `json:"positions"`
}

func assetToDTO(a asset.Asset) assetDTO {
	return assetDTO{
		ID:          a.ID,
		Name:        a.Name,
		Type:        a.Type,
		Suitability: a.Suitability,
		Return:      a.Return,
		Safety:      a.Safety,
		Description: a.Description,
	}
}

func positionsToPayload(positions asset.Positions) positionsPayload {
	payload := make(positionsPayload, len(positions))
	for assetID, overrides := range positions {
		byProfile := make(map[string][]string, len(overrides))
		for _, o := range overrides {
			zones := make([]string, 0, len(o.Zones))
			for _, z := range o.Zones {
				zones = append(zones, string(z))
			}
			byProfile[string(o.Profile)] = zones
		}
		payload[strconv.Itoa(assetID)] = byProfile
	}
	return payload
}

func positionsFromPayload(payload positionsPayload) (asset.Positions, error) {
	positions := make(asset.Positions, len(payload))
	for rawAssetID, byProfile := range payload {
		assetID, err := strconv.Atoi(rawAssetID)
		if err != nil || assetID <= 0 {
			return nil, fmt.Errorf("%w: invalid asset id %q", usecase.ErrInvalidInput, rawAssetID)
		}

		overrides := make([]asset.Override, 0, len(byProfile))
		for rawProfile, rawZones := range byProfile {
			profile, ok := game.ParseProfile(rawProfile)
			if !ok {
				return nil, fmt.Errorf("%w: unknown profile %q", usecase.ErrInvalidInput, rawProfile)
			}

			zones := make([]game.Zone, 0, len(rawZones))
			for _, rawZone := range rawZones {
				zone, ok := game.ParseZone(rawZone)
				if !ok {
					return nil, fmt.Errorf("%w: unknown zone %q", usecase.ErrInvalidInput, rawZone)
				}
				zones = append(zones, zone)
			}

			overrides = append(overrides, asset.Override{AssetID: assetID, Profile: profile, Zones: zones})
		}
		positions[assetID] = overrides
	}
	return positions, nil
}
