package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/domain/models"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/repository/supabase"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/store"
)

// FoodHandler exposes the pantry inventory over HTTP.
type FoodHandler struct {
	store  *store.FoodItemStore
	logger *zap.Logger
}

// NewFoodHandler constructs the HTTP handler adapter.
func NewFoodHandler(s *store.FoodItemStore, logger *zap.Logger) *FoodHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FoodHandler{store: s, logger: logger}
}

// List returns food items plus the store's fallback state, narrowed by the
// optional ?category= and ?in_stock=true filters.
func (h *FoodHandler) List(c *gin.Context) {
	category := c.Query("category")
	inStockOnly := c.Query("in_stock") == "true"

	var items []models.FoodItem
	switch {
	case category != "":
		items = h.store.ItemsByCategory(category)
		if inStockOnly {
			kept := items[:0:0]
			for _, item := range items {
				if item.InStock {
					kept = append(kept, item)
				}
			}
			items = kept
		}
	case inStockOnly:
		items = h.store.ItemsInStock()
	default:
		items = h.store.Items()
	}

	c.JSON(http.StatusOK, gin.H{"data": items, "state": h.store.State()})
}

type stockRequest struct {
	InStock *bool `json:"in_stock" binding:"required"`
}

// SetStock flips one item's in-stock flag.
func (h *FoodHandler) SetStock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid stock payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "in_stock is required"})
		return
	}

	updated, err := h.store.SetInStock(c.Request.Context(), id, *req.InStock)
	if err != nil {
		if errors.Is(err, supabase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "food item not found"})
			return
		}
		h.logger.Error("failed updating stock", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to update food item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}
