package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/store"
)

const pingTimeout = 2 * time.Second

// Pinger checks connectivity to a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves liveness and the manual store refresh.
type SystemHandler struct {
	stores  *store.Manager
	archive Pinger
	logger  *zap.Logger
}

// NewSystemHandler constructs the HTTP handler adapter. The archive may be
// nil when the snapshot store never came up.
func NewSystemHandler(stores *store.Manager, archive Pinger, logger *zap.Logger) *SystemHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemHandler{stores: stores, archive: archive, logger: logger}
}

// Health reports process liveness plus snapshot archive reachability.
func (h *SystemHandler) Health(c *gin.Context) {
	mongoStatus := "unavailable"
	if h.archive != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()
		if err := h.archive.Ping(ctx); err == nil {
			mongoStatus = "ok"
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "mongo": mongoStatus})
}

// Refresh reloads both stores and returns their settled states.
func (h *SystemHandler) Refresh(c *gin.Context) {
	h.stores.RefreshAll(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"meal_logs":  h.stores.MealLogs.State(),
		"food_items": h.stores.FoodItems.State(),
	})
}
