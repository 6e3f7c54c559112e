package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/lucasmrqs/financial-football/internal/domain/game"
	"github.com/lucasmrqs/financial-football/internal/domain/prize"
	"github.com/lucasmrqs/financial-football/internal/usecase"
)

func TestWriteSuccess_PassesPayloadThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, okResponse{OK: true})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["ok"].(bool); !got {
		t.Fatalf("expected ok=true, got %v", body["ok"])
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_KioskEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["ok"].(bool); got {
		t.Fatalf("expected ok=false, got %v", body["ok"])
	}
	if got, _ := body["reason"].(string); got != "invalidInput" {
		t.Fatalf("expected reason invalidInput, got %v", body["reason"])
	}
	if got, _ := body["error"].(string); got == "" {
		t.Fatalf("expected non-empty error message")
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{name: "invalid input", err: usecase.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantReason: "invalidInput"},
		{name: "drop out of bounds", err: game.ErrDropOutOfBounds, wantStatus: http.StatusBadRequest, wantReason: "invalidInput"},
		{name: "not found", err: usecase.ErrNotFound, wantStatus: http.StatusNotFound, wantReason: "notFound"},
		{name: "asset not placed", err: game.ErrAssetNotPlaced, wantStatus: http.StatusNotFound, wantReason: "notFound"},
		{name: "prize not found", err: prize.ErrNotFound, wantStatus: http.StatusNotFound, wantReason: "notFound"},
		{name: "unauthorized", err: usecase.ErrUnauthorized, wantStatus: http.StatusUnauthorized, wantReason: "unauthorized"},
		{name: "conflict", err: usecase.ErrConflict, wantStatus: http.StatusConflict, wantReason: "conflict"},
		{name: "card overlap", err: game.ErrCardOverlap, wantStatus: http.StatusConflict, wantReason: "conflict"},
		{name: "match finalized", err: game.ErrMatchFinalized, wantStatus: http.StatusConflict, wantReason: "conflict"},
		{name: "duplicate prize", err: prize.ErrDuplicateID, wantStatus: http.StatusConflict, wantReason: "conflict"},
		{name: "rate limited", err: usecase.ErrRateLimited, wantStatus: http.StatusTooManyRequests, wantReason: "rateLimited"},
		{name: "dependency unavailable", err: usecase.ErrDependencyUnavailable, wantStatus: http.StatusServiceUnavailable, wantReason: "dependencyUnavailable"},
		{name: "unknown", err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError, wantReason: "internalError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("handler: %w", tt.err)
			mapped := mapError(context.Background(), wrapped)
			if mapped.HTTPStatus != tt.wantStatus {
				t.Fatalf("status=%d want=%d", mapped.HTTPStatus, tt.wantStatus)
			}
			if mapped.Reason != tt.wantReason {
				t.Fatalf("reason=%q want=%q", mapped.Reason, tt.wantReason)
			}
		})
	}
}
