package models

import "time"

// mockMeal seeds one demo meal log at a fixed offset from "today".
type mockMeal struct {
	id       int64
	name     string
	mealType string
	daysAgo  int
	hour     int
	minute   int
	n        Nutrition
	cost     float64
}

var mockMeals = []mockMeal{
	{1, "Veggie Omelette", "breakfast", 0, 8, 0, Nutrition{Calories: 320, Protein: 18, Carbs: 8, Fat: 22}, 2.75},
	{2, "Chicken Burrito Bowl", "lunch", 1, 12, 30, Nutrition{Calories: 650, Protein: 42, Carbs: 68, Fat: 18}, 6.50},
	{3, "Salmon with Quinoa", "dinner", 2, 19, 0, Nutrition{Calories: 580, Protein: 38, Carbs: 45, Fat: 24}, 9.25},
	{4, "Overnight Oats", "breakfast", 2, 7, 45, Nutrition{Calories: 410, Protein: 16, Carbs: 58, Fat: 12}, 1.80},
	{5, "Greek Yogurt Parfait", "snack", 3, 15, 30, Nutrition{Calories: 240, Protein: 14, Carbs: 30, Fat: 7}, 2.10},
	{6, "Lentil Soup", "lunch", 4, 13, 0, Nutrition{Calories: 380, Protein: 20, Carbs: 52, Fat: 9}, 3.40},
	{7, "Beef Stir Fry", "dinner", 6, 19, 15, Nutrition{Calories: 520, Protein: 35, Carbs: 40, Fat: 22}, 7.80},
	// Outside the 7-day analytics window on purpose.
	{8, "Margherita Pizza", "dinner", 9, 20, 0, Nutrition{Calories: 890, Protein: 32, Carbs: 98, Fat: 38}, 11.00},
}

// MockMealLogs returns the fixed demo dataset used when the remote store is
// unreachable or empty. Dates are relative to now so the recent-days window
// always has entries; the slice is a fresh copy on every call.
func MockMealLogs(now time.Time) []MealLog {
	logs := make([]MealLog, 0, len(mockMeals))
	for _, m := range mockMeals {
		day := now.AddDate(0, 0, -m.daysAgo)
		cookedAt := time.Date(day.Year(), day.Month(), day.Day(), m.hour, m.minute, 0, 0, now.Location())
		logs = append(logs, MealLog{
			ID:            m.id,
			Name:          m.name,
			MealType:      m.mealType,
			Date:          day.Format(DateLayout),
			Nutrition:     m.n,
			EstimatedCost: m.cost,
			CookedAt:      cookedAt,
			CreatedAt:     cookedAt,
		})
	}
	return logs
}

var mockItems = []FoodItem{
	{ID: 1, Name: "Spinach", Category: "Produce", InStock: true, Price: 2.49},
	{ID: 2, Name: "Avocado", Category: "Produce", InStock: true, Price: 1.25},
	{ID: 3, Name: "Bell Peppers", Category: "Produce", InStock: false, Price: 3.10},
	{ID: 4, Name: "Bananas", Category: "Produce", InStock: true, Price: 1.60},
	{ID: 5, Name: "Chicken Breast", Brand: "Smart Farms", Category: "Protein", InStock: true, Price: 8.99},
	{ID: 6, Name: "Salmon Fillet", Category: "Protein", InStock: false, Price: 12.50},
	{ID: 7, Name: "Eggs", Brand: "Happy Hen", Category: "Protein", InStock: true, Price: 4.20},
	{ID: 8, Name: "Brown Rice", Category: "Grains", InStock: true, Price: 3.75},
	{ID: 9, Name: "Rolled Oats", Brand: "Morning Mill", Category: "Grains", InStock: true, Price: 2.95},
	{ID: 10, Name: "Greek Yogurt", Brand: "Olymp", Category: "Dairy", InStock: true, Price: 5.40},
	{ID: 11, Name: "Milk", Category: "Dairy", InStock: false, Price: 2.15},
	{ID: 12, Name: "Olive Oil", Category: "Pantry", InStock: true, Price: 9.80},
}

// MockFoodItems returns the fixed demo inventory dataset as a fresh copy.
func MockFoodItems() []FoodItem {
	items := make([]FoodItem, len(mockItems))
	copy(items, mockItems)
	return items
}
