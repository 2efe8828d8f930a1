package analytics

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/domain/models"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/store"
)

const weekDays = 7

// MealSource is the slice of the meal log store the analytics service reads.
type MealSource interface {
	RecentLogs(days int) []models.MealLog
	State() store.State
}

// InventorySource is the slice of the food item store the analytics service reads.
type InventorySource interface {
	Items() []models.FoodItem
	State() store.State
}

// WeekSummary aggregates the trailing seven days of meal logs.
type WeekSummary struct {
	MealCount   int     `json:"meal_count"`
	AvgCalories float64 `json:"avg_calories"`
	AvgCost     float64 `json:"avg_cost"`
	TotalCost   float64 `json:"total_cost"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
}

// InventorySummary describes the pantry at a glance.
type InventorySummary struct {
	TotalItems    int                    `json:"total_items"`
	InStock       int                    `json:"in_stock"`
	TopCategories []models.CategoryCount `json:"top_categories"`
}

// StoreStatus surfaces both stores' fallback condition to the dashboard.
// Loading, Error and DemoData combine the two stores; Error carries the
// first non-empty store error.
type StoreStatus struct {
	MealLogs  store.State `json:"meal_logs"`
	FoodItems store.State `json:"food_items"`
	Loading   bool        `json:"loading"`
	Error     string      `json:"error,omitempty"`
	DemoData  bool        `json:"demo_data"`
}

// Overview is the combined analytics payload for the dashboard view.
type Overview struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Week        WeekSummary      `json:"week"`
	Inventory   InventorySummary `json:"inventory"`
	Status      StoreStatus      `json:"status"`
}

// Service exposes lightweight analytics over the in-memory stores.
type Service struct {
	meals     MealSource
	inventory InventorySource
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new analytics service instance.
func NewService(meals MealSource, inventory InventorySource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{meals: meals, inventory: inventory, logger: logger, now: time.Now}
}

// Overview aggregates the trailing week of meals and the current pantry.
func (s *Service) Overview() Overview {
	mealState := s.meals.State()
	foodState := s.inventory.State()

	firstError := mealState.LastError
	if firstError == "" {
		firstError = foodState.LastError
	}

	return Overview{
		GeneratedAt: s.now(),
		Week:        s.weekSummary(),
		Inventory:   s.inventorySummary(),
		Status: StoreStatus{
			MealLogs:  mealState,
			FoodItems: foodState,
			Loading:   mealState.Loading || foodState.Loading,
			Error:     firstError,
			DemoData:  mealState.UsingMockData || foodState.UsingMockData,
		},
	}
}

// BuildSnapshot freezes the current week summary into an archivable record.
func (s *Service) BuildSnapshot(now time.Time) models.WeeklySnapshot {
	week := s.weekSummary()
	inv := s.inventorySummary()
	mealState := s.meals.State()
	foodState := s.inventory.State()

	s.logger.Debug("weekly snapshot built",
		zap.Int("meal_count", week.MealCount),
		zap.Bool("demo_data", mealState.UsingMockData || foodState.UsingMockData))

	return models.WeeklySnapshot{
		GeneratedAt:   now,
		WeekStart:     dayStart(now).AddDate(0, 0, -(weekDays - 1)),
		MealCount:     week.MealCount,
		AvgCalories:   week.AvgCalories,
		AvgCost:       week.AvgCost,
		TotalCost:     week.TotalCost,
		ProteinG:      week.ProteinG,
		CarbsG:        week.CarbsG,
		FatG:          week.FatG,
		TopCategories: inv.TopCategories,
		DemoData:      mealState.UsingMockData || foodState.UsingMockData,
	}
}

func (s *Service) weekSummary() WeekSummary {
	logs := s.meals.RecentLogs(weekDays)

	var summary WeekSummary
	summary.MealCount = len(logs)
	if len(logs) == 0 {
		return summary
	}

	var calories float64
	for _, log := range logs {
		calories += log.Nutrition.Calories
		summary.TotalCost += log.EstimatedCost
		summary.ProteinG += log.Nutrition.Protein
		summary.CarbsG += log.Nutrition.Carbs
		summary.FatG += log.Nutrition.Fat
	}

	count := float64(len(logs))
	summary.AvgCalories = round2(calories / count)
	summary.AvgCost = round2(summary.TotalCost / count)
	summary.TotalCost = round2(summary.TotalCost)
	summary.ProteinG = round2(summary.ProteinG)
	summary.CarbsG = round2(summary.CarbsG)
	summary.FatG = round2(summary.FatG)
	return summary
}

func (s *Service) inventorySummary() InventorySummary {
	items := s.inventory.Items()

	summary := InventorySummary{TotalItems: len(items)}
	counts := make(map[string]int)
	for _, item := range items {
		if item.InStock {
			summary.InStock++
		}
		if item.Category != "" {
			counts[item.Category]++
		}
	}

	summary.TopCategories = topCategories(counts, 3)
	return summary
}

// topCategories ranks categories by item count, ties broken alphabetically.
func topCategories(counts map[string]int, limit int) []models.CategoryCount {
	ranked := make([]models.CategoryCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, models.CategoryCount{Category: name, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Category < ranked[j].Category
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
