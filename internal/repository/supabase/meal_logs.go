package supabase

import (
	"context"
	"errors"
	"fmt"

	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/domain/models"
	client "github.com/AI-Development-Kosi-Uzo/nourish-note/pkg/clients/supabase"
)

// ErrNotFound indicates the targeted row does not exist remotely.
var ErrNotFound = errors.New("row not found")

const (
	mealLogsTable = "meal_logs"
	mealLogsOrder = "cooked_at.desc"
)

// MealLogRepository defines the remote operations the meal log store relies on.
type MealLogRepository interface {
	ListAll(ctx context.Context) ([]models.MealLog, error)
	Insert(ctx context.Context, input models.MealLogInput) (models.MealLog, error)
	Update(ctx context.Context, id int64, changes models.MealLogChanges) (models.MealLog, error)
	Delete(ctx context.Context, id int64) error
}

// MealLogTable implements MealLogRepository against the meal_logs table.
type MealLogTable struct {
	client *client.Client
}

// NewMealLogTable builds the meal_logs table repository.
func NewMealLogTable(c *client.Client) *MealLogTable {
	return &MealLogTable{client: c}
}

// ListAll fetches every meal log ordered by cooked_at descending,
// matching the order the list is displayed in.
func (r *MealLogTable) ListAll(ctx context.Context) ([]models.MealLog, error) {
	var rows []models.MealLog
	if err := r.client.Select(ctx, mealLogsTable, mealLogsOrder, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Insert writes one meal log and returns the row the table assigned.
func (r *MealLogTable) Insert(ctx context.Context, input models.MealLogInput) (models.MealLog, error) {
	var rows []models.MealLog
	if err := r.client.Insert(ctx, mealLogsTable, input, &rows); err != nil {
		return models.MealLog{}, err
	}
	if len(rows) == 0 {
		return models.MealLog{}, fmt.Errorf("insert into %s returned no representation", mealLogsTable)
	}
	return rows[0], nil
}

// Update patches the row with the given id and returns the updated row.
func (r *MealLogTable) Update(ctx context.Context, id int64, changes models.MealLogChanges) (models.MealLog, error) {
	var rows []models.MealLog
	if err := r.client.Update(ctx, mealLogsTable, id, changes, &rows); err != nil {
		return models.MealLog{}, err
	}
	if len(rows) == 0 {
		return models.MealLog{}, fmt.Errorf("update %s id=%d: %w", mealLogsTable, id, ErrNotFound)
	}
	return rows[0], nil
}

// Delete removes the row with the given id.
func (r *MealLogTable) Delete(ctx context.Context, id int64) error {
	var rows []models.MealLog
	if err := r.client.Delete(ctx, mealLogsTable, id, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("delete %s id=%d: %w", mealLogsTable, id, ErrNotFound)
	}
	return nil
}
