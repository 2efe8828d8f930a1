package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/domain/models"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/repository/supabase"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/store"
)

// MealLogHandler exposes meal log reads and write-through mutations over HTTP.
type MealLogHandler struct {
	store  *store.MealLogStore
	logger *zap.Logger
}

// NewMealLogHandler constructs the HTTP handler adapter.
func NewMealLogHandler(s *store.MealLogStore, logger *zap.Logger) *MealLogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MealLogHandler{store: s, logger: logger}
}

// List returns the held meal logs plus the store's fallback state. The list
// can be narrowed with ?days=N or ?from=YYYY-MM-DD&to=YYYY-MM-DD; days wins
// when both are present.
func (h *MealLogHandler) List(c *gin.Context) {
	logs := h.store.Logs()

	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		logs = h.store.RecentLogs(days)
	} else if c.Query("from") != "" || c.Query("to") != "" {
		from, err := models.ParseDate(c.Query("from"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be formatted YYYY-MM-DD"})
			return
		}
		to, err := models.ParseDate(c.Query("to"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be formatted YYYY-MM-DD"})
			return
		}
		logs = h.store.LogsBetween(from, to)
	}

	c.JSON(http.StatusOK, gin.H{"data": logs, "state": h.store.State()})
}

// Create validates and inserts one meal log.
func (h *MealLogHandler) Create(c *gin.Context) {
	var input models.MealLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid meal log payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.store.Add(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("failed creating meal log", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to save meal log"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// Update applies a sparse change set to one meal log.
func (h *MealLogHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var changes models.MealLogChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		h.logger.Warn("invalid meal log changes", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.store.Update(c.Request.Context(), id, changes)
	if err != nil {
		if errors.Is(err, supabase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal log not found"})
			return
		}
		h.logger.Error("failed updating meal log", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to update meal log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// Delete removes one meal log.
func (h *MealLogHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, supabase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal log not found"})
			return
		}
		h.logger.Error("failed deleting meal log", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to delete meal log"})
		return
	}

	c.Status(http.StatusNoContent)
}

// pathID parses the numeric :id path parameter, replying 400 on garbage.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return 0, false
	}
	return id, true
}

// parseLimit reads a ?limit=N query value with a default.
func parseLimit(c *gin.Context, fallback int64) (int64, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return fallback, true
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return 0, false
	}
	return limit, true
}
