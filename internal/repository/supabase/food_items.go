package supabase

import (
	"context"
	"fmt"

	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/domain/models"
	client "github.com/AI-Development-Kosi-Uzo/nourish-note/pkg/clients/supabase"
)

const (
	foodItemsTable = "food_items"
	foodItemsOrder = "name.asc"
)

// FoodItemRepository defines the remote operations the inventory store relies on.
type FoodItemRepository interface {
	ListAll(ctx context.Context) ([]models.FoodItem, error)
	SetInStock(ctx context.Context, id int64, inStock bool) (models.FoodItem, error)
}

// FoodItemTable implements FoodItemRepository against the food_items table.
type FoodItemTable struct {
	client *client.Client
}

// NewFoodItemTable builds the food_items table repository.
func NewFoodItemTable(c *client.Client) *FoodItemTable {
	return &FoodItemTable{client: c}
}

// ListAll fetches every food item ordered by name.
func (r *FoodItemTable) ListAll(ctx context.Context) ([]models.FoodItem, error) {
	var rows []models.FoodItem
	if err := r.client.Select(ctx, foodItemsTable, foodItemsOrder, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SetInStock flips the in_stock flag of one item and returns the updated row.
func (r *FoodItemTable) SetInStock(ctx context.Context, id int64, inStock bool) (models.FoodItem, error) {
	body := map[string]bool{"in_stock": inStock}

	var rows []models.FoodItem
	if err := r.client.Update(ctx, foodItemsTable, id, body, &rows); err != nil {
		return models.FoodItem{}, err
	}
	if len(rows) == 0 {
		return models.FoodItem{}, fmt.Errorf("update %s id=%d: %w", foodItemsTable, id, ErrNotFound)
	}
	return rows[0], nil
}
