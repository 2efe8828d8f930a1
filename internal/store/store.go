// Package store holds the in-memory record stores backing the API. Each
// store owns an ordered list of one entity type, loads it from the hosted
// database, and falls back to the fixed demo dataset when the remote is
// unreachable, empty, or too slow. Mutations write through to the remote
// first and mirror the change locally on success.
package store

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultLoadTimeout is the watchdog deadline after which a still-running
// load is abandoned in favor of demo data. The request itself is not
// canceled; a late reply may still land.
const DefaultLoadTimeout = 5 * time.Second

// State describes a store's fallback condition. The list is either entirely
// live or entirely demo data; UsingMockData governs that binary state.
type State struct {
	Loading       bool   `json:"loading"`
	UsingMockData bool   `json:"using_mock_data"`
	LastError     string `json:"last_error,omitempty"`
}

// Manager bundles the two stores so callers can refresh them together.
type Manager struct {
	MealLogs  *MealLogStore
	FoodItems *FoodItemStore
	logger    *zap.Logger
}

// NewManager wires a manager over the two stores.
func NewManager(mealLogs *MealLogStore, foodItems *FoodItemStore, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{MealLogs: mealLogs, FoodItems: foodItems, logger: logger}
}

// RefreshAll loads both stores concurrently and waits for both to settle.
// Load failures are absorbed into each store's fallback state, so RefreshAll
// itself cannot fail.
func (m *Manager) RefreshAll(ctx context.Context) {
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m.MealLogs.Load(ctx)
		return nil
	})
	g.Go(func() error {
		m.FoodItems.Load(ctx)
		return nil
	})
	_ = g.Wait()

	m.logger.Info("stores refreshed",
		zap.Duration("duration", time.Since(start)),
		zap.Bool("meal_logs_demo", m.MealLogs.State().UsingMockData),
		zap.Bool("food_items_demo", m.FoodItems.State().UsingMockData))
}

// dayStart pins the civil date of t to UTC midnight so date comparisons
// line up with parsed date columns regardless of the server timezone.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
