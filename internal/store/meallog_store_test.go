package store

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/domain/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)

type fakeMealRepo struct {
	listAll   func(ctx context.Context) ([]models.MealLog, error)
	insert    func(ctx context.Context, input models.MealLogInput) (models.MealLog, error)
	update    func(ctx context.Context, id int64, changes models.MealLogChanges) (models.MealLog, error)
	deleteRow func(ctx context.Context, id int64) error
}

func (f *fakeMealRepo) ListAll(ctx context.Context) ([]models.MealLog, error) {
	if f.listAll == nil {
		return nil, nil
	}
	return f.listAll(ctx)
}

func (f *fakeMealRepo) Insert(ctx context.Context, input models.MealLogInput) (models.MealLog, error) {
	if f.insert == nil {
		return models.MealLog{}, nil
	}
	return f.insert(ctx, input)
}

func (f *fakeMealRepo) Update(ctx context.Context, id int64, changes models.MealLogChanges) (models.MealLog, error) {
	if f.update == nil {
		return models.MealLog{}, nil
	}
	return f.update(ctx, id, changes)
}

func (f *fakeMealRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteRow == nil {
		return nil
	}
	return f.deleteRow(ctx, id)
}

func newTestMealStore(repo *fakeMealRepo, timeout time.Duration) *MealLogStore {
	s := NewMealLogStore(repo, timeout, nil, zap.NewNop())
	s.now = func() time.Time { return testNow }
	return s
}

func sampleLogs() []models.MealLog {
	return []models.MealLog{
		{ID: 21, Name: "Shakshuka", MealType: "breakfast", Date: "2025-08-15", Nutrition: models.Nutrition{Calories: 450, Protein: 22, Carbs: 30, Fat: 26}, EstimatedCost: 3.50, CookedAt: testNow.Add(-2 * time.Hour)},
		{ID: 20, Name: "Poke Bowl", MealType: "lunch", Date: "2025-08-14", Nutrition: models.Nutrition{Calories: 610, Protein: 36, Carbs: 70, Fat: 16}, EstimatedCost: 8.90, CookedAt: testNow.Add(-22 * time.Hour)},
		{ID: 19, Name: "Minestrone", MealType: "dinner", Date: "2025-08-13", Nutrition: models.Nutrition{Calories: 390, Protein: 15, Carbs: 55, Fat: 11}, EstimatedCost: 2.95, CookedAt: testNow.Add(-39 * time.Hour)},
	}
}

func TestMealLogStoreLoad(t *testing.T) {
	demoCount := len(models.MockMealLogs(testNow))

	tests := []struct {
		name      string
		rows      []models.MealLog
		err       error
		wantMock  bool
		wantErr   string
		wantCount int
	}{
		{
			name:      "live rows kept",
			rows:      sampleLogs(),
			wantCount: 3,
		},
		{
			name:      "error falls back to demo data",
			err:       errors.New("connection refused"),
			wantMock:  true,
			wantErr:   "connection refused",
			wantCount: demoCount,
		},
		{
			name:      "empty result falls back to demo data",
			rows:      []models.MealLog{},
			wantMock:  true,
			wantCount: demoCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeMealRepo{
				listAll: func(ctx context.Context) ([]models.MealLog, error) {
					return tt.rows, tt.err
				},
			}
			s := newTestMealStore(repo, time.Second)

			s.Load(context.Background())

			state := s.State()
			assert.False(t, state.Loading)
			assert.Equal(t, tt.wantMock, state.UsingMockData)
			if tt.wantErr != "" {
				assert.Contains(t, state.LastError, tt.wantErr)
			} else {
				assert.Empty(t, state.LastError)
			}
			assert.Len(t, s.Logs(), tt.wantCount)
		})
	}
}

func TestMealLogStoreLoadKeepsRemoteOrder(t *testing.T) {
	want := sampleLogs()
	repo := &fakeMealRepo{
		listAll: func(ctx context.Context) ([]models.MealLog, error) { return sampleLogs(), nil },
	}
	s := newTestMealStore(repo, time.Second)

	s.Load(context.Background())

	assert.Equal(t, want, s.Logs())
}

func TestMealLogStoreLoadRecoversAfterFailure(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	repo := &fakeMealRepo{
		listAll: func(ctx context.Context) ([]models.MealLog, error) {
			if fail.Load() {
				return nil, errors.New("dns failure")
			}
			return sampleLogs(), nil
		},
	}
	s := newTestMealStore(repo, time.Second)

	s.Load(context.Background())
	require.True(t, s.State().UsingMockData)
	require.Contains(t, s.State().LastError, "dns failure")

	fail.Store(false)
	s.Load(context.Background())

	state := s.State()
	assert.False(t, state.UsingMockData)
	assert.Empty(t, state.LastError)
	assert.Equal(t, sampleLogs(), s.Logs())
}

func TestMealLogStoreLoadWatchdog(t *testing.T) {
	release := make(chan struct{})
	repo := &fakeMealRepo{
		listAll: func(ctx context.Context) ([]models.MealLog, error) {
			<-release
			return sampleLogs(), nil
		},
	}
	s := newTestMealStore(repo, 30*time.Millisecond)

	done := make(chan struct{})
	go func() {
		s.Load(context.Background())
		close(done)
	}()

	// The watchdog installs the demo dataset while the fetch is still running.
	require.Eventually(t, func() bool {
		state := s.State()
		return state.UsingMockData && !state.Loading
	}, time.Second, 5*time.Millisecond)
	assert.Len(t, s.Logs(), len(models.MockMealLogs(testNow)))

	close(release)
	<-done

	// The late reply still lands and clears the demo flag.
	state := s.State()
	assert.False(t, state.UsingMockData)
	assert.Empty(t, state.LastError)
	assert.Equal(t, sampleLogs(), s.Logs())
}

func TestMealLogStoreStaleLoadDropped(t *testing.T) {
	release := make(chan struct{})
	stale := []models.MealLog{{ID: 99, Name: "Stale Row", Date: "2025-08-01"}}
	var calls atomic.Int32
	repo := &fakeMealRepo{
		listAll: func(ctx context.Context) ([]models.MealLog, error) {
			if calls.Add(1) == 1 {
				<-release
				return stale, nil
			}
			return sampleLogs(), nil
		},
	}
	s := newTestMealStore(repo, time.Second)

	done := make(chan struct{})
	go func() {
		s.Load(context.Background())
		close(done)
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	// A second load supersedes the first; the first's late reply is dropped.
	s.Load(context.Background())
	close(release)
	<-done

	assert.Equal(t, sampleLogs(), s.Logs())
	assert.False(t, s.State().UsingMockData)
}

func TestMealLogStoreAddFillsDefaultsAndPrepends(t *testing.T) {
	var captured models.MealLogInput
	repo := &fakeMealRepo{
		listAll: func(ctx context.Context) ([]models.MealLog, error) { return sampleLogs(), nil },
		insert: func(ctx context.Context, input models.MealLogInput) (models.MealLog, error) {
			captured = input
			return models.MealLog{ID: 22, Name: input.Name, MealType: input.MealType, Date: input.Date, EstimatedCost: input.EstimatedCost, CookedAt: input.CookedAt}, nil
		},
	}
	s := newTestMealStore(repo, time.Second)
	s.Load(context.Background())

	created, err := s.Add(context.Background(), models.MealLogInput{Name: "Caprese Salad", MealType: "lunch", EstimatedCost: 4.25})

	require.NoError(t, err)
	assert.Equal(t, testNow, captured.CookedAt)
	assert.Equal(t, "2025-08-15", captured.Date)
	assert.Equal(t, int64(22), created.ID)

	logs := s.Logs()
	require.Len(t, logs, 4)
	assert.Equal(t, int64(22), logs[0].ID)
	assert.Equal(t, int64(21), logs[1].ID)
}

func TestMealLogStoreAddFailureLeavesListUntouched(t *testing.T) {
	repo := &fakeMealRepo{
		listAll: func(ctx context.Context) ([]models.MealLog, error) { return sampleLogs(), nil },
		insert: func(ctx context.Context, input models.MealLogInput) (models.MealLog, error) {
			return models.MealLog{}, errors.New("permission denied")
		},
	}
	s := newTestMealStore(repo, time.Second)
	s.Load(context.Background())

	_, err := s.Add(context.Background(), models.MealLogInput{Name: "Ramen", MealType: "dinner", Date: "2025-08-15"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
	assert.Equal(t, sampleLogs(), s.Logs())

	// Mutation failures are reported, never absorbed into the demo dataset.
	state := s.State()
	assert.False(t, state.UsingMockData)
	assert.Contains(t, state.LastError, "permission denied")
}

func TestMealLogStoreUpdateReplacesInPlace(t *testing.T) {
	renamed := "Poke Bowl XL"
	repo := &fakeMealRepo{
		listAll: func(ctx context.Context) ([]models.MealLog, error) { return sampleLogs(), nil },
		update: func(ctx context.Context, id int64, changes models.MealLogChanges) (models.MealLog, error) {
			row := sampleLogs()[1]
			row.Name = *changes.Name
			return row, nil
		},
	}
	s := newTestMealStore(repo, time.Second)
	s.Load(context.Background())

	updated, err := s.Update(context.Background(), 20, models.MealLogChanges{Name: &renamed})

	require.NoError(t, err)
	assert.Equal(t, renamed, updated.Name)

	logs := s.Logs()
	require.Len(t, logs, 3)
	assert.Equal(t, []int64{21, 20, 19}, []int64{logs[0].ID, logs[1].ID, logs[2].ID})
	assert.Equal(t, renamed, logs[1].Name)
}

func TestMealLogStoreDeleteRemovesExactlyOne(t *testing.T) {
	repo := &fakeMealRepo{
		listAll:   func(ctx context.Context) ([]models.MealLog, error) { return sampleLogs(), nil },
		deleteRow: func(ctx context.Context, id int64) error { return nil },
	}
	s := newTestMealStore(repo, time.Second)
	s.Load(context.Background())

	require.NoError(t, s.Delete(context.Background(), 20))

	logs := s.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, int64(21), logs[0].ID)
	assert.Equal(t, int64(19), logs[1].ID)
}

func TestMealLogStoreRecentLogsWindow(t *testing.T) {
	repo := &fakeMealRepo{
		listAll: func(ctx context.Context) ([]models.MealLog, error) {
			return nil, errors.New("offline")
		},
	}
	s := newTestMealStore(repo, time.Second)
	s.Load(context.Background())
	require.True(t, s.State().UsingMockData)

	recent := s.RecentLogs(7)

	// The demo dataset carries one meal dated outside the trailing week.
	assert.Len(t, recent, len(models.MockMealLogs(testNow))-1)
	for _, l := range recent {
		assert.NotEqual(t, "Margherita Pizza", l.Name)
	}

	assert.Nil(t, s.RecentLogs(0))
}

func TestMealLogStoreLogsBetween(t *testing.T) {
	rows := append(sampleLogs(), models.MealLog{ID: 5, Name: "Broken Date", Date: "not-a-date"})
	repo := &fakeMealRepo{
		listAll: func(ctx context.Context) ([]models.MealLog, error) { return rows, nil },
	}
	s := newTestMealStore(repo, time.Second)
	s.Load(context.Background())

	from := time.Date(2025, 8, 13, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 8, 14, 18, 30, 0, 0, time.UTC)

	got := s.LogsBetween(from, to)

	require.Len(t, got, 2)
	assert.Equal(t, int64(20), got[0].ID)
	assert.Equal(t, int64(19), got[1].ID)
}
