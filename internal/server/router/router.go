package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/server/handlers"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/pkg/metrics"
)

const requestIDHeader = "X-Request-ID"

// Handlers bundles the HTTP adapters the router mounts.
type Handlers struct {
	System    *handlers.SystemHandler
	MealLogs  *handlers.MealLogHandler
	FoodItems *handlers.FoodHandler
	Analytics *handlers.AnalyticsHandler
	Export    *handlers.ExportHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))
	if m != nil {
		r.Use(metricsMiddleware(m))
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	r.GET("/healthz", h.System.Health)

	api := r.Group("/api")
	{
		api.GET("/meal-logs", h.MealLogs.List)
		api.POST("/meal-logs", h.MealLogs.Create)
		api.PUT("/meal-logs/:id", h.MealLogs.Update)
		api.DELETE("/meal-logs/:id", h.MealLogs.Delete)

		api.GET("/food-items", h.FoodItems.List)
		api.PATCH("/food-items/:id/stock", h.FoodItems.SetStock)

		api.POST("/refresh", h.System.Refresh)

		api.GET("/analytics/overview", h.Analytics.Overview)
		api.GET("/analytics/history", h.Analytics.History)

		api.POST("/export/sheets", h.Export.ExportSheets)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString("request_id")))
	}
}

func metricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
