package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/service/export"
)

// ExportHandler triggers spreadsheet exports over HTTP.
type ExportHandler struct {
	svc    *export.Service
	logger *zap.Logger
}

// NewExportHandler constructs the HTTP handler adapter.
func NewExportHandler(svc *export.Service, logger *zap.Logger) *ExportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportHandler{svc: svc, logger: logger}
}

type exportRequest struct {
	Days int `json:"days"`
}

// ExportSheets appends meal logs to the configured spreadsheet. The body is
// optional; {"days": N} limits the export to the trailing window.
func (h *ExportHandler) ExportSheets(c *gin.Context) {
	var req exportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("invalid export payload", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	rows, err := h.svc.ExportMealLogs(c.Request.Context(), req.Days)
	if err != nil {
		if errors.Is(err, export.ErrExportUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sheets export is not configured"})
			return
		}
		h.logger.Error("failed exporting meal logs", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to export meal logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows})
}
