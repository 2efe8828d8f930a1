package models

import "time"

// FoodItem is one row of the remote food_items table.
type FoodItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand,omitempty"`
	Category  string    `json:"category"`
	InStock   bool      `json:"in_stock"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
