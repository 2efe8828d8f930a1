package models

import "time"

// DateLayout is the wire format of the meal log date column.
const DateLayout = "2006-01-02"

// Nutrition captures the macro breakdown of a single logged meal.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// MealLog is one row of the remote meal_logs table.
type MealLog struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	MealType      string    `json:"meal_type"` // breakfast|lunch|dinner|snack
	Date          string    `json:"date"`      // day the meal is logged for, DateLayout
	Nutrition     Nutrition `json:"nutrition"`
	EstimatedCost float64   `json:"estimated_cost"`
	CookedAt      time.Time `json:"cooked_at"` // list order key, newest first
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

// MealLogInput is the payload for inserting a new meal log. The remote
// table assigns id and created_at.
type MealLogInput struct {
	Name          string    `json:"name" binding:"required"`
	MealType      string    `json:"meal_type" binding:"required"`
	Date          string    `json:"date" binding:"required"`
	Nutrition     Nutrition `json:"nutrition"`
	EstimatedCost float64   `json:"estimated_cost"`
	CookedAt      time.Time `json:"cooked_at"`
}

// MealLogChanges is a sparse update payload; nil fields are left untouched.
type MealLogChanges struct {
	Name          *string    `json:"name,omitempty"`
	MealType      *string    `json:"meal_type,omitempty"`
	Date          *string    `json:"date,omitempty"`
	Nutrition     *Nutrition `json:"nutrition,omitempty"`
	EstimatedCost *float64   `json:"estimated_cost,omitempty"`
	CookedAt      *time.Time `json:"cooked_at,omitempty"`
}

// ParseDate parses a meal log date. Timestamps longer than the layout are
// truncated first so values like "2025-08-12T00:00:00" still parse.
func ParseDate(value string) (time.Time, error) {
	if len(value) > len(DateLayout) {
		value = value[:len(DateLayout)]
	}
	return time.Parse(DateLayout, value)
}
