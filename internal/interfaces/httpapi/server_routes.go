package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler, limits RateLimits) {
	mux.HandleFunc("GET /api/assets", handler.ListAssets)
	mux.HandleFunc("GET /api/config", handler.GetConfig)
	mux.HandleFunc("GET /api/prizes", handler.ListPrizes)

	awardHandler := http.HandlerFunc(handler.SubmitAward)
	if limits.Award != nil {
		mux.Handle("POST /api/award", RateLimit(limits.Award, awardHandler))
	} else {
		mux.Handle("POST /api/award", awardHandler)
	}

	rankingHandler := http.HandlerFunc(handler.GetRanking)
	if limits.Ranking != nil {
		mux.Handle("GET /api/ranking", RateLimit(limits.Ranking, rankingHandler))
	} else {
		mux.Handle("GET /api/ranking", rankingHandler)
	}
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /api/matches", handler.StartMatch)
	mux.HandleFunc("GET /api/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("POST /api/matches/{matchID}/placements", handler.PlaceCard)
	mux.HandleFunc("DELETE /api/matches/{matchID}/placements/{assetID}", handler.RemoveCard)
	mux.HandleFunc("POST /api/matches/{matchID}/finalize", handler.FinalizeMatch)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminAPIKey string) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAdminKey(adminAPIKey, h)
	}

	mux.Handle("POST /api/config", admin(handler.UpdateConfig))

	mux.Handle("POST /api/prizes", admin(handler.CreatePrize))
	mux.Handle("PATCH /api/prizes/{prizeID}", admin(handler.UpdatePrize))
	mux.Handle("DELETE /api/prizes/{prizeID}", admin(handler.DeletePrize))

	mux.Handle("GET /api/positions", admin(handler.GetPositions))
	mux.Handle("PUT /api/positions", admin(handler.PutPositions))

	mux.Handle("GET /api/manual-stock", admin(handler.ListStockItems))
	mux.Handle("POST /api/manual-stock", admin(handler.CreateStockItem))
	mux.Handle("PATCH /api/manual-stock/{itemID}", admin(handler.UpdateStockItem))
	mux.Handle("DELETE /api/manual-stock/{itemID}", admin(handler.DeleteStockItem))
	mux.Handle("POST /api/manual-stock/{itemID}/withdraw", admin(handler.WithdrawStockItem))

	mux.Handle("GET /api/admin/games", admin(handler.ListGames))
}
