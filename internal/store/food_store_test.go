package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/domain/models"
)

type fakeFoodRepo struct {
	listAll    func(ctx context.Context) ([]models.FoodItem, error)
	setInStock func(ctx context.Context, id int64, inStock bool) (models.FoodItem, error)
}

func (f *fakeFoodRepo) ListAll(ctx context.Context) ([]models.FoodItem, error) {
	if f.listAll == nil {
		return nil, nil
	}
	return f.listAll(ctx)
}

func (f *fakeFoodRepo) SetInStock(ctx context.Context, id int64, inStock bool) (models.FoodItem, error) {
	if f.setInStock == nil {
		return models.FoodItem{}, nil
	}
	return f.setInStock(ctx, id, inStock)
}

func newTestFoodStore(repo *fakeFoodRepo) *FoodItemStore {
	return NewFoodItemStore(repo, time.Second, nil, zap.NewNop())
}

func sampleItems() []models.FoodItem {
	return []models.FoodItem{
		{ID: 1, Name: "Tofu", Category: "Protein", InStock: true, Price: 2.80},
		{ID: 2, Name: "Soba Noodles", Category: "Grains", InStock: false, Price: 4.10},
	}
}

func TestFoodItemStoreLoad(t *testing.T) {
	tests := []struct {
		name      string
		rows      []models.FoodItem
		err       error
		wantMock  bool
		wantCount int
	}{
		{
			name:      "live rows kept",
			rows:      sampleItems(),
			wantCount: 2,
		},
		{
			name:      "error falls back to demo data",
			err:       errors.New("tls handshake timeout"),
			wantMock:  true,
			wantCount: len(models.MockFoodItems()),
		},
		{
			name:      "empty result falls back to demo data",
			rows:      []models.FoodItem{},
			wantMock:  true,
			wantCount: len(models.MockFoodItems()),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeFoodRepo{
				listAll: func(ctx context.Context) ([]models.FoodItem, error) {
					return tt.rows, tt.err
				},
			}
			s := newTestFoodStore(repo)

			s.Load(context.Background())

			state := s.State()
			assert.False(t, state.Loading)
			assert.Equal(t, tt.wantMock, state.UsingMockData)
			assert.Len(t, s.Items(), tt.wantCount)
		})
	}
}

func TestFoodItemStoreSetInStock(t *testing.T) {
	repo := &fakeFoodRepo{
		listAll: func(ctx context.Context) ([]models.FoodItem, error) { return sampleItems(), nil },
		setInStock: func(ctx context.Context, id int64, inStock bool) (models.FoodItem, error) {
			row := sampleItems()[1]
			row.InStock = inStock
			return row, nil
		},
	}
	s := newTestFoodStore(repo)
	s.Load(context.Background())

	updated, err := s.SetInStock(context.Background(), 2, true)

	require.NoError(t, err)
	assert.True(t, updated.InStock)

	items := s.Items()
	require.Len(t, items, 2)
	assert.True(t, items[1].InStock)
	assert.Equal(t, "Soba Noodles", items[1].Name)
}

func TestFoodItemStoreSetInStockFailure(t *testing.T) {
	repo := &fakeFoodRepo{
		listAll: func(ctx context.Context) ([]models.FoodItem, error) { return sampleItems(), nil },
		setInStock: func(ctx context.Context, id int64, inStock bool) (models.FoodItem, error) {
			return models.FoodItem{}, errors.New("row is locked")
		},
	}
	s := newTestFoodStore(repo)
	s.Load(context.Background())

	_, err := s.SetInStock(context.Background(), 2, true)

	require.Error(t, err)
	assert.Equal(t, sampleItems(), s.Items())
	assert.Contains(t, s.State().LastError, "row is locked")
	assert.False(t, s.State().UsingMockData)
}

func TestFoodItemStoreFilters(t *testing.T) {
	repo := &fakeFoodRepo{
		listAll: func(ctx context.Context) ([]models.FoodItem, error) {
			return nil, errors.New("offline")
		},
	}
	s := newTestFoodStore(repo)
	s.Load(context.Background())
	require.True(t, s.State().UsingMockData)

	inStock := s.ItemsInStock()
	for _, item := range inStock {
		assert.True(t, item.InStock)
	}
	assert.Len(t, inStock, 9)

	produce := s.ItemsByCategory("produce")
	require.Len(t, produce, 4)
	for _, item := range produce {
		assert.Equal(t, "Produce", item.Category)
	}

	assert.Empty(t, s.ItemsByCategory("frozen"))
}
