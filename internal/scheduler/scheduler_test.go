package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/config"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/domain/models"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/repository/mongodb"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/service/analytics"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/store"
)

type fakeMealRepo struct {
	rows []models.MealLog
	err  error
}

func (f *fakeMealRepo) ListAll(ctx context.Context) ([]models.MealLog, error) { return f.rows, f.err }
func (f *fakeMealRepo) Insert(ctx context.Context, input models.MealLogInput) (models.MealLog, error) {
	return models.MealLog{}, nil
}
func (f *fakeMealRepo) Update(ctx context.Context, id int64, changes models.MealLogChanges) (models.MealLog, error) {
	return models.MealLog{}, nil
}
func (f *fakeMealRepo) Delete(ctx context.Context, id int64) error { return nil }

type fakeFoodRepo struct {
	rows []models.FoodItem
}

func (f *fakeFoodRepo) ListAll(ctx context.Context) ([]models.FoodItem, error) { return f.rows, nil }
func (f *fakeFoodRepo) SetInStock(ctx context.Context, id int64, inStock bool) (models.FoodItem, error) {
	return models.FoodItem{}, nil
}

type fakeArchive struct {
	saved   []models.WeeklySnapshot
	saveErr error
}

func (f *fakeArchive) SaveSnapshot(ctx context.Context, snapshot models.WeeklySnapshot) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, snapshot)
	return nil
}

func (f *fakeArchive) ListRecent(ctx context.Context, limit int64) ([]models.WeeklySnapshot, error) {
	return f.saved, nil
}

func jobsConfig() config.Config {
	return config.Config{Jobs: config.JobsConfig{
		RefreshCron:  "*/15 * * * *",
		SnapshotCron: "0 21 * * 0",
		Timezone:     "UTC",
	}}
}

func newTestBackend(mealRepo *fakeMealRepo, foodRepo *fakeFoodRepo) (*store.Manager, *analytics.Service) {
	meals := store.NewMealLogStore(mealRepo, time.Second, nil, zap.NewNop())
	foods := store.NewFoodItemStore(foodRepo, time.Second, nil, zap.NewNop())
	return store.NewManager(meals, foods, zap.NewNop()), analytics.NewService(meals, foods, zap.NewNop())
}

func TestSchedulerStartRegistersJobs(t *testing.T) {
	stores, svc := newTestBackend(&fakeMealRepo{}, &fakeFoodRepo{})

	t.Run("with archive", func(t *testing.T) {
		s := NewScheduler(jobsConfig(), stores, svc, &fakeArchive{}, nil, zap.NewNop())
		s.Start()
		defer s.Stop()

		assert.Len(t, s.cron.Entries(), 2)
	})

	t.Run("without archive the snapshot job is skipped", func(t *testing.T) {
		var archive mongodb.Repository
		s := NewScheduler(jobsConfig(), stores, svc, archive, nil, zap.NewNop())
		s.Start()
		defer s.Stop()

		assert.Len(t, s.cron.Entries(), 1)
	})

	t.Run("unknown timezone falls back to UTC", func(t *testing.T) {
		cfg := jobsConfig()
		cfg.Jobs.Timezone = "Atlantis/Lost"

		s := NewScheduler(cfg, stores, svc, &fakeArchive{}, nil, zap.NewNop())
		require.NotNil(t, s.cron)
	})
}

func TestSchedulerRefreshStores(t *testing.T) {
	mealRepo := &fakeMealRepo{err: errors.New("upstream gone")}
	stores, svc := newTestBackend(mealRepo, &fakeFoodRepo{rows: []models.FoodItem{{ID: 1, Name: "Kale", Category: "Produce", InStock: true}}})
	s := NewScheduler(jobsConfig(), stores, svc, &fakeArchive{}, nil, zap.NewNop())

	s.refreshStores()

	assert.True(t, stores.MealLogs.State().UsingMockData)
	assert.False(t, stores.FoodItems.State().UsingMockData)
	assert.Len(t, stores.FoodItems.Items(), 1)
}

func TestSchedulerArchiveWeeklySnapshot(t *testing.T) {
	today := time.Now().UTC().Format(models.DateLayout)
	mealRepo := &fakeMealRepo{rows: []models.MealLog{
		{ID: 1, Name: "Chili", Date: today, EstimatedCost: 3.00, Nutrition: models.Nutrition{Calories: 400}},
		{ID: 2, Name: "Paella", Date: today, EstimatedCost: 7.00, Nutrition: models.Nutrition{Calories: 600}},
	}}
	foodRepo := &fakeFoodRepo{rows: []models.FoodItem{
		{ID: 1, Category: "Produce", InStock: true},
		{ID: 2, Category: "Produce", InStock: false},
	}}
	stores, svc := newTestBackend(mealRepo, foodRepo)
	stores.RefreshAll(context.Background())

	archive := &fakeArchive{}
	s := NewScheduler(jobsConfig(), stores, svc, archive, nil, zap.NewNop())

	s.archiveWeeklySnapshot()

	require.Len(t, archive.saved, 1)
	snapshot := archive.saved[0]
	assert.Equal(t, 2, snapshot.MealCount)
	assert.Equal(t, 10.00, snapshot.TotalCost)
	assert.Equal(t, 5.00, snapshot.AvgCost)
	assert.False(t, snapshot.DemoData)
	assert.False(t, snapshot.GeneratedAt.IsZero())
	assert.Equal(t, []models.CategoryCount{{Category: "Produce", Count: 2}}, snapshot.TopCategories)
}

func TestSchedulerArchiveWeeklySnapshotFailure(t *testing.T) {
	stores, svc := newTestBackend(&fakeMealRepo{}, &fakeFoodRepo{})
	archive := &fakeArchive{saveErr: errors.New("write concern failed")}
	s := NewScheduler(jobsConfig(), stores, svc, archive, nil, zap.NewNop())

	s.archiveWeeklySnapshot()

	assert.Empty(t, archive.saved)
}
