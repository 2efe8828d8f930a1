package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/repository/mongodb"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/service/analytics"
)

const defaultHistoryLimit = 10

// AnalyticsHandler serves the dashboard aggregates and the snapshot archive.
type AnalyticsHandler struct {
	svc     *analytics.Service
	archive mongodb.Repository
	logger  *zap.Logger
}

// NewAnalyticsHandler constructs the HTTP handler adapter. The archive may be
// nil when the snapshot store is unreachable; history then replies 503.
func NewAnalyticsHandler(svc *analytics.Service, archive mongodb.Repository, logger *zap.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsHandler{svc: svc, archive: archive, logger: logger}
}

// Overview returns the trailing-week and inventory aggregates.
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Overview())
}

// History returns recently archived weekly snapshots, newest first.
func (h *AnalyticsHandler) History(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot archive unavailable"})
		return
	}

	limit, ok := parseLimit(c, defaultHistoryLimit)
	if !ok {
		return
	}

	snapshots, err := h.archive.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed listing snapshots", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to read snapshot archive"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snapshots})
}
