package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/domain/models"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/repository/supabase"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/pkg/metrics"
)

const foodItemStoreName = "food_items"

// FoodItemStore owns the in-memory pantry inventory, with the same
// load/fallback contract as MealLogStore.
type FoodItemStore struct {
	repo    supabase.FoodItemRepository
	logger  *zap.Logger
	metrics *metrics.Metrics
	timeout time.Duration

	mu      sync.RWMutex
	items   []models.FoodItem
	state   State
	loadSeq uint64
}

// NewFoodItemStore builds a food item store over the given repository.
func NewFoodItemStore(repo supabase.FoodItemRepository, timeout time.Duration, m *metrics.Metrics, logger *zap.Logger) *FoodItemStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	return &FoodItemStore{
		repo:    repo,
		logger:  logger,
		metrics: m,
		timeout: timeout,
	}
}

// Load fetches all food items; errors and empty results fall back to the
// demo inventory exactly like the meal log store.
func (s *FoodItemStore) Load(ctx context.Context) {
	s.mu.Lock()
	s.state.Loading = true
	s.loadSeq++
	seq := s.loadSeq
	s.mu.Unlock()

	watchdog := time.AfterFunc(s.timeout, func() { s.loadTimedOut(seq) })
	rows, err := s.repo.ListAll(ctx)
	watchdog.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadSeq != seq {
		return
	}
	s.state.Loading = false

	switch {
	case err != nil:
		s.state.LastError = err.Error()
		s.applyMockLocked()
		s.logger.Warn("food item load failed, falling back to demo data", zap.Error(err))
		s.observeLoad(metrics.OutcomeMockError)
	case len(rows) == 0:
		s.applyMockLocked()
		s.logger.Warn("food item load returned no rows, using demo data")
		s.observeLoad(metrics.OutcomeMockEmpty)
	default:
		s.items = rows
		s.state.UsingMockData = false
		s.state.LastError = ""
		s.logger.Info("food items loaded", zap.Int("count", len(rows)))
		s.observeLoad(metrics.OutcomeLive)
	}

	if len(s.items) == 0 && !s.state.UsingMockData {
		s.applyMockLocked()
	}
}

func (s *FoodItemStore) loadTimedOut(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadSeq != seq || !s.state.Loading {
		return
	}
	s.state.Loading = false
	s.applyMockLocked()
	s.logger.Warn("food item load exceeded timeout, using demo data", zap.Duration("timeout", s.timeout))
	s.observeLoad(metrics.OutcomeMockTimeout)
}

// SetInStock flips one item's stock flag remotely and mirrors it locally.
func (s *FoodItemStore) SetInStock(ctx context.Context, id int64, inStock bool) (models.FoodItem, error) {
	row, err := s.repo.SetInStock(ctx, id, inStock)
	s.observeMutation("set_in_stock", err)
	if err != nil {
		s.recordError(err)
		return models.FoodItem{}, fmt.Errorf("set food item stock: %w", err)
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i] = row
			break
		}
	}
	s.mu.Unlock()

	s.logger.Info("food item stock updated", zap.Int64("id", id), zap.Bool("in_stock", inStock))
	return row, nil
}

// Items returns a copy of the current inventory.
func (s *FoodItemStore) Items() []models.FoodItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.FoodItem, len(s.items))
	copy(out, s.items)
	return out
}

// State returns the current fallback condition.
func (s *FoodItemStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// ItemsInStock returns only the items currently marked in stock.
func (s *FoodItemStore) ItemsInStock() []models.FoodItem {
	var out []models.FoodItem
	for _, it := range s.Items() {
		if it.InStock {
			out = append(out, it)
		}
	}
	return out
}

// ItemsByCategory returns items matching the category, case-insensitive.
func (s *FoodItemStore) ItemsByCategory(category string) []models.FoodItem {
	var out []models.FoodItem
	for _, it := range s.Items() {
		if strings.EqualFold(it.Category, category) {
			out = append(out, it)
		}
	}
	return out
}

func (s *FoodItemStore) applyMockLocked() {
	s.items = models.MockFoodItems()
	s.state.UsingMockData = true
}

func (s *FoodItemStore) recordError(err error) {
	s.mu.Lock()
	s.state.LastError = err.Error()
	s.mu.Unlock()
}

func (s *FoodItemStore) observeLoad(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveLoad(foodItemStoreName, outcome)
	}
}

func (s *FoodItemStore) observeMutation(op string, err error) {
	if s.metrics != nil {
		s.metrics.ObserveMutation(foodItemStoreName, op, err)
	}
}
