package memory

import "github.com/lucasmrqs/financial-football/internal/domain/prize"

// SeedPrizes returns a starter prize table for the memory backend, matching
// the thresholds used at live events.
func SeedPrizes() []prize.Prize {
	return []prize.Prize{
		{ID: "sticker", Name: "Adesivo", Stock: 200, Threshold: 10},
		{ID: "keychain", Name: "Chaveiro", Stock: 80, Threshold: 20},
		{ID: "cap", Name: "Boné", Stock: 40, Threshold: 30},
		{ID: "shirt", Name: "Camiseta", Stock: 15, Threshold: 38},
	}
}
