package models

import "time"

// CategoryCount is one entry of the inventory category ranking.
type CategoryCount struct {
	Category string `bson:"category" json:"category"`
	Count    int    `bson:"count" json:"count"`
}

// WeeklySnapshot represents the aggregated weekly analytics archived in MongoDB.
type WeeklySnapshot struct {
	GeneratedAt   time.Time       `bson:"generated_at" json:"generated_at"`
	WeekStart     time.Time       `bson:"week_start" json:"week_start"`
	MealCount     int             `bson:"meal_count" json:"meal_count"`
	AvgCalories   float64         `bson:"avg_calories" json:"avg_calories"`
	AvgCost       float64         `bson:"avg_cost" json:"avg_cost"`
	TotalCost     float64         `bson:"total_cost" json:"total_cost"`
	ProteinG      float64         `bson:"protein_g" json:"protein_g"`
	CarbsG        float64         `bson:"carbs_g" json:"carbs_g"`
	FatG          float64         `bson:"fat_g" json:"fat_g"`
	TopCategories []CategoryCount `bson:"top_categories" json:"top_categories"`
	DemoData      bool            `bson:"demo_data" json:"demo_data"`
}
