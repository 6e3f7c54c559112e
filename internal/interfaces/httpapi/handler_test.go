package httpapi

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/lucasmrqs/financial-football/internal/domain/game"
	"github.com/lucasmrqs/financial-football/internal/infrastructure/repository/memory"
	"github.com/lucasmrqs/financial-football/internal/platform/ratelimit"
	"github.com/lucasmrqs/financial-football/internal/usecase"
)

const testAdminKey = "booth-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	prizes := memory.NewPrizeRepository(memory.SeedPrizes())
	games := memory.NewGameLogRepository()
	config := memory.NewSettingsRepository()
	matches := memory.NewMatchRepository()
	positions := memory.NewPositionsRepository()
	stock := memory.NewManualStockRepository()

	catalogService := usecase.NewCatalogService(memory.NewCatalogSource(nil), positions, logger)
	configService := usecase.NewConfigService(config, logger)
	prizeService := usecase.NewPrizeService(prizes, logger)

	awardService, err := usecase.NewAwardService(prizes, games, config, logger)
	if err != nil {
		t.Fatalf("new award service: %v", err)
	}
	t.Cleanup(awardService.Close)

	location, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	rankingService := usecase.NewRankingService(games, location, 5, logger)
	matchService := usecase.NewMatchService(matches, catalogService, config, awardService, game.DefaultRules(), testIDGenerator{}, logger)
	stockService := usecase.NewManualStockService(stock, logger)

	handler := NewHandler(
		catalogService,
		configService,
		prizeService,
		awardService,
		rankingService,
		matchService,
		stockService,
		logger,
	)

	limits := RateLimits{
		Award:   ratelimit.NewFixedWindow(100, time.Minute),
		Ranking: ratelimit.NewFixedWindow(100, time.Minute),
	}

	return NewRouter(handler, testAdminKey, limits, logger, []string{"*"})
}

type testIDGenerator struct{}

func (testIDGenerator) NewID() (string, error) { return "match-test", nil }

func doJSON(t *testing.T, router http.Handler, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "203.0.113.10:52000"
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("%s %s: unmarshal response: %v (body=%s)", method, path, err, rec.Body.String())
		}
	}
	return rec, decoded
}

func adminHeaders() map[string]string {
	return map[string]string{"X-Admin-Key": testAdminKey}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got, _ := body["status"].(string); got != "ok" {
		t.Fatalf("expected status ok, got %v", body["status"])
	}
}

func TestListAssets_FallbackCatalog(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/api/assets", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got, _ := body["ok"].(bool); !got {
		t.Fatalf("expected ok=true")
	}

	assets, ok := body["assets"].([]any)
	if !ok {
		t.Fatalf("expected assets array, got %T", body["assets"])
	}
	if len(assets) != 15 {
		t.Fatalf("expected 15 fallback assets, got %d", len(assets))
	}
}

func TestGetConfig_Defaults(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/api/config", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	cfg, ok := body["config"].(map[string]any)
	if !ok {
		t.Fatalf("expected config object, got %T", body["config"])
	}
	if got, _ := cfg["pointsPerCorrectCard"].(float64); got != 3 {
		t.Fatalf("expected pointsPerCorrectCard=3, got %v", cfg["pointsPerCorrectCard"])
	}
	if got, _ := cfg["maxScore"].(float64); got != 38 {
		t.Fatalf("expected maxScore=38, got %v", cfg["maxScore"])
	}
}

func TestUpdateConfig_RequiresAdminKey(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/config", `{"bonusIdealLineup":25}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	if got, _ := body["reason"].(string); got != "unauthorized" {
		t.Fatalf("expected reason unauthorized, got %v", body["reason"])
	}

	rec, body = doJSON(t, router, http.MethodPost, "/api/config", `{"bonusIdealLineup":25}`, adminHeaders())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body=%v)", rec.Code, body)
	}
	cfg := body["config"].(map[string]any)
	if got, _ := cfg["bonusIdealLineup"].(float64); got != 25 {
		t.Fatalf("expected bonusIdealLineup=25, got %v", cfg["bonusIdealLineup"])
	}
}

func TestSubmitAward_GrantsHighestEligiblePrize(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"points":38,"playerName":"ana","profile":"conservative","cards":[]}`
	rec, body := doJSON(t, router, http.MethodPost, "/api/award", payload, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body=%v)", rec.Code, body)
	}

	awarded, ok := body["awarded"].(map[string]any)
	if !ok {
		t.Fatalf("expected awarded prize, got %v", body["awarded"])
	}
	if got, _ := awarded["name"].(string); got != "Camiseta" {
		t.Fatalf("expected prize Camiseta, got %v", awarded["name"])
	}
	if got, _ := body["remainingStock"].(float64); got != 14 {
		t.Fatalf("expected remainingStock=14, got %v", body["remainingStock"])
	}
	if got, _ := body["playerName"].(string); got != "ana" {
		t.Fatalf("expected playerName ana, got %v", body["playerName"])
	}
}

func TestSubmitAward_RejectsNegativePoints(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/award", `{"points":-1}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if got, _ := body["reason"].(string); got != "invalidInput" {
		t.Fatalf("expected reason invalidInput, got %v", body["reason"])
	}
}

func TestSubmitAward_RejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/award", `{"points":10,"bogus":true}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestMatchFlow(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/matches", `{"playerName":"ana","profile":"conservative"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start: expected status 201, got %d (body=%v)", rec.Code, body)
	}
	match := body["match"].(map[string]any)
	matchID, _ := match["id"].(string)
	if matchID == "" {
		t.Fatalf("start: expected match id")
	}
	if got, _ := match["playerName"].(string); got != "ANA" {
		t.Fatalf("start: expected normalized player name ANA, got %v", match["playerName"])
	}

	// Asset 1 is low suitability, so defense (bottom third) is correct for
	// a conservative profile.
	place := `{"assetId":1,"x":0,"y":450,"width":100,"height":60,"fieldHeight":600}`
	rec, body = doJSON(t, router, http.MethodPost, "/api/matches/"+matchID+"/placements", place, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("place: expected status 200, got %d (body=%v)", rec.Code, body)
	}
	match = body["match"].(map[string]any)
	placements := match["placements"].([]any)
	if len(placements) != 1 {
		t.Fatalf("place: expected 1 placement, got %d", len(placements))
	}
	first := placements[0].(map[string]any)
	if got, _ := first["zone"].(string); got != "defense" {
		t.Fatalf("place: expected zone defense, got %v", first["zone"])
	}
	if got, _ := first["correct"].(bool); !got {
		t.Fatalf("place: expected correct placement")
	}

	rec, body = doJSON(t, router, http.MethodGet, "/api/matches/"+matchID, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected status 200, got %d", rec.Code)
	}

	rec, body = doJSON(t, router, http.MethodDelete, "/api/matches/"+matchID+"/placements/1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: expected status 200, got %d (body=%v)", rec.Code, body)
	}
	match = body["match"].(map[string]any)
	if placements := match["placements"].([]any); len(placements) != 0 {
		t.Fatalf("remove: expected empty board, got %d placements", len(placements))
	}

	rec, body = doJSON(t, router, http.MethodPost, "/api/matches/"+matchID+"/placements", place, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("re-place: expected status 200, got %d", rec.Code)
	}

	rec, body = doJSON(t, router, http.MethodPost, "/api/matches/"+matchID+"/finalize", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("finalize: expected status 200, got %d (body=%v)", rec.Code, body)
	}
	if got, _ := body["points"].(float64); got != 3 {
		t.Fatalf("finalize: expected 3 points, got %v", body["points"])
	}
	if got, _ := body["playerName"].(string); got != "ANA" {
		t.Fatalf("finalize: expected playerName ANA, got %v", body["playerName"])
	}

	rec, body = doJSON(t, router, http.MethodPost, "/api/matches/"+matchID+"/finalize", "", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("re-finalize: expected status 409, got %d", rec.Code)
	}
	if got, _ := body["reason"].(string); got != "conflict" {
		t.Fatalf("re-finalize: expected reason conflict, got %v", body["reason"])
	}
}

func TestGetMatch_UnknownID(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/api/matches/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if got, _ := body["reason"].(string); got != "notFound" {
		t.Fatalf("expected reason notFound, got %v", body["reason"])
	}
}

func TestPrizeAdminCRUD(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/prizes", `{"id":"mug","name":"Caneca","stock":5,"threshold":10}`, adminHeaders())
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected status 201, got %d (body=%v)", rec.Code, body)
	}

	rec, body = doJSON(t, router, http.MethodPost, "/api/prizes", `{"id":"mug","name":"Caneca","stock":5,"threshold":10}`, adminHeaders())
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate: expected status 409, got %d", rec.Code)
	}

	rec, body = doJSON(t, router, http.MethodPatch, "/api/prizes/mug", `{"stock":3}`, adminHeaders())
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected status 200, got %d (body=%v)", rec.Code, body)
	}
	updated := body["prize"].(map[string]any)
	if got, _ := updated["stock"].(float64); got != 3 {
		t.Fatalf("update: expected stock=3, got %v", updated["stock"])
	}
	if got, _ := updated["name"].(string); got != "Caneca" {
		t.Fatalf("update: expected untouched name, got %v", updated["name"])
	}

	rec, _ = doJSON(t, router, http.MethodDelete, "/api/prizes/mug", "", adminHeaders())
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected status 200, got %d", rec.Code)
	}

	rec, body = doJSON(t, router, http.MethodDelete, "/api/prizes/mug", "", adminHeaders())
	if rec.Code != http.StatusNotFound {
		t.Fatalf("re-delete: expected status 404, got %d (body=%v)", rec.Code, body)
	}
}

func TestManualStockFlow(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/manual-stock", `{"name":"Squeeze","quantity":2}`, adminHeaders())
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected status 201, got %d (body=%v)", rec.Code, body)
	}
	item := body["item"].(map[string]any)
	itemID, _ := item["id"].(string)
	if itemID == "" {
		t.Fatalf("create: expected item id")
	}

	for want := 1; want >= 0; want-- {
		rec, body = doJSON(t, router, http.MethodPost, "/api/manual-stock/"+itemID+"/withdraw", "", adminHeaders())
		if rec.Code != http.StatusOK {
			t.Fatalf("withdraw: expected status 200, got %d (body=%v)", rec.Code, body)
		}
		got := body["item"].(map[string]any)
		if q, _ := got["quantity"].(float64); int(q) != want {
			t.Fatalf("withdraw: expected quantity=%d, got %v", want, got["quantity"])
		}
	}

	// Withdrawing an empty counter floors at zero.
	rec, body = doJSON(t, router, http.MethodPost, "/api/manual-stock/"+itemID+"/withdraw", "", adminHeaders())
	if rec.Code != http.StatusOK {
		t.Fatalf("empty withdraw: expected status 200, got %d", rec.Code)
	}
	if got, _ := body["previousQuantity"].(float64); got != 0 {
		t.Fatalf("empty withdraw: expected previousQuantity=0, got %v", body["previousQuantity"])
	}
}

func TestPositionsRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	put := `{"positions":{"1":{"conservative":["attack","midfield"]}}}`
	rec, body := doJSON(t, router, http.MethodPut, "/api/positions", put, adminHeaders())
	if rec.Code != http.StatusOK {
		t.Fatalf("put: expected status 200, got %d (body=%v)", rec.Code, body)
	}

	rec, body = doJSON(t, router, http.MethodGet, "/api/positions", "", adminHeaders())
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected status 200, got %d", rec.Code)
	}
	positions := body["positions"].(map[string]any)
	byProfile, ok := positions["1"].(map[string]any)
	if !ok {
		t.Fatalf("get: expected overrides for asset 1, got %v", positions)
	}
	zones := byProfile["conservative"].([]any)
	if len(zones) != 2 {
		t.Fatalf("get: expected 2 zones, got %v", zones)
	}
}

func TestPutPositions_RejectsUnknownZone(t *testing.T) {
	router := newTestRouter(t)

	put := `{"positions":{"1":{"conservative":["goal"]}}}`
	rec, body := doJSON(t, router, http.MethodPut, "/api/positions", put, adminHeaders())
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d (body=%v)", rec.Code, body)
	}
}

func TestRankingAndAdminGames(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 3; i++ {
		payload := fmt.Sprintf(`{"points":%d,"playerName":"p%d","profile":"moderate","cards":[]}`, 10+i, i)
		rec, body := doJSON(t, router, http.MethodPost, "/api/award", payload, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("award %d: expected status 200, got %d (body=%v)", i, rec.Code, body)
		}
	}

	// The game log append runs on a background worker.
	deadline := time.Now().Add(2 * time.Second)
	var entries []any
	for time.Now().Before(deadline) {
		_, body := doJSON(t, router, http.MethodGet, "/api/ranking", "", nil)
		entries, _ = body["ranking"].([]any)
		if len(entries) == 3 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 ranking entries, got %d", len(entries))
	}
	topEntry := entries[0].(map[string]any)
	if got, _ := topEntry["points"].(float64); got != 12 {
		t.Fatalf("expected top entry with 12 points, got %v", topEntry["points"])
	}

	rec, body := doJSON(t, router, http.MethodGet, "/api/admin/games", "", adminHeaders())
	if rec.Code != http.StatusOK {
		t.Fatalf("games: expected status 200, got %d", rec.Code)
	}
	games, _ := body["games"].([]any)
	if len(games) != 3 {
		t.Fatalf("games: expected 3 records, got %d", len(games))
	}
}
