package settings

import "testing"

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestApplyMergesOverCurrent(t *testing.T) {
	current := Default()
	next := Apply(current, Patch{
		PointsPerCorrectCard: intPtr(5),
		StockWithGame:        boolPtr(false),
	})

	if next.PointsPerCorrectCard != 5 {
		t.Fatalf("expected patched points, got %d", next.PointsPerCorrectCard)
	}
	if next.StockWithGame {
		t.Fatal("expected stockWithGame=false")
	}
	if next.BonusIdealLineup != current.BonusIdealLineup || next.MaxScore != current.MaxScore {
		t.Fatalf("untouched fields changed: %+v", next)
	}
}

func TestApplyClampsNumericFields(t *testing.T) {
	cases := []struct {
		name  string
		patch Patch
		check func(GameConfig) bool
	}{
		{"negative points floor at zero", Patch{PointsPerCorrectCard: intPtr(-3)}, func(c GameConfig) bool { return c.PointsPerCorrectCard == 0 }},
		{"huge points capped", Patch{PointsPerCorrectCard: intPtr(9999)}, func(c GameConfig) bool { return c.PointsPerCorrectCard == 100 }},
		{"wrong-card penalty floor", Patch{PointsPerWrongCard: intPtr(-1)}, func(c GameConfig) bool { return c.PointsPerWrongCard == 0 }},
		{"bonus capped", Patch{BonusIdealLineup: intPtr(1000)}, func(c GameConfig) bool { return c.BonusIdealLineup == 500 }},
		{"max score floor at one", Patch{MaxScore: intPtr(0)}, func(c GameConfig) bool { return c.MaxScore == 1 }},
		{"timer floor", Patch{TimeLimitSeconds: intPtr(1)}, func(c GameConfig) bool { return c.TimeLimitSeconds == 10 }},
		{"timer cap", Patch{TimeLimitSeconds: intPtr(100000)}, func(c GameConfig) bool { return c.TimeLimitSeconds == 3600 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if next := Apply(Default(), tc.patch); !tc.check(next) {
				t.Fatalf("clamp failed: %+v", next)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.PointsPerCorrectCard != 3 || cfg.PointsPerWrongCard != 0 ||
		cfg.BonusIdealLineup != 20 || cfg.MaxScore != 38 {
		t.Fatalf("unexpected scoring defaults: %+v", cfg)
	}
	if cfg.TimeLimitActive || cfg.TimeLimitSeconds != 60 || !cfg.StockWithGame {
		t.Fatalf("unexpected kiosk defaults: %+v", cfg)
	}
}
