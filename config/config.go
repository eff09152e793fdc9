// Package config loads the tunable constants the accessibility engine's
// core boundary exposes: budget, rail discount, turn-penalty tables,
// time-of-day cutoffs, and the batch dispatcher's worker concurrency.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/katalvlaran/reachscore/geo"
	"github.com/katalvlaran/reachscore/nodeid"
)

// Config holds every engine tunable, loaded once at process startup.
type Config struct {
	// DefaultBudget is B, the time budget in seconds.
	// A walking-prefix at or beyond this threshold makes a query trivially
	// empty; the same constant serves both roles.
	DefaultBudget nodeid.Cost

	// RailDivisor is k_rail, the integer divisor applied to rail edge costs
	// under the shadow-cost discount.
	RailDivisor nodeid.Cost

	// TimeOfDayCutoffHours are the three time-of-day bucket boundaries in
	// hours (strict on the low side): 10, 16, 19.
	TimeOfDayCutoffHours [3]int

	WalkTurnPenalties    geo.TurnPenalties
	CyclingTurnPenalties geo.TurnPenalties
	DrivingTurnPenalties geo.TurnPenalties

	// BatchWorkerLimit caps how many origins a batch dispatch runs
	// concurrently; 0 means unbounded (errgroup's default).
	BatchWorkerLimit int
}

// Load reads configuration from environment variables and an optional
// .env file, falling back to the engine defaults for anything unset.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DefaultBudget:    nodeid.Cost(getEnvInt("ACCESSIBILITY_BUDGET_SECONDS", 3600)),
		RailDivisor:      nodeid.Cost(getEnvInt("ACCESSIBILITY_RAIL_DIVISOR", 2)),
		TimeOfDayCutoffHours: [3]int{
			getEnvInt("ACCESSIBILITY_CUTOFF_MORNING_HOUR", 10),
			getEnvInt("ACCESSIBILITY_CUTOFF_AFTERNOON_HOUR", 16),
			getEnvInt("ACCESSIBILITY_CUTOFF_EVENING_HOUR", 19),
		},
		WalkTurnPenalties:    geo.WalkTurnPenalties,
		CyclingTurnPenalties: geo.CyclingTurnPenalties,
		DrivingTurnPenalties: geo.DrivingTurnPenalties,
		BatchWorkerLimit:     getEnvInt("ACCESSIBILITY_BATCH_WORKER_LIMIT", 0),
	}
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
