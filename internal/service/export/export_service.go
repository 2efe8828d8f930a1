package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/domain/models"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/repository/sheets"
)

const mealLogRange = "MealLogs!A:I"

// ErrExportUnavailable signals that no spreadsheet target is configured.
var ErrExportUnavailable = errors.New("sheets export is not configured")

// MealSource is the slice of the meal log store the exporter reads.
type MealSource interface {
	Logs() []models.MealLog
	RecentLogs(days int) []models.MealLog
}

// Service copies meal logs into a Google Sheet for offline analysis.
type Service struct {
	exporter sheets.Exporter
	meals    MealSource
	logger   *zap.Logger
}

// NewService wires a new export service. A nil exporter is allowed and makes
// every export attempt fail with ErrExportUnavailable.
func NewService(exporter sheets.Exporter, meals MealSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{exporter: exporter, meals: meals, logger: logger}
}

// Enabled reports whether a spreadsheet target is configured.
func (s *Service) Enabled() bool {
	return s.exporter != nil
}

// ExportMealLogs appends meal logs to the spreadsheet and returns how many
// rows were written. A positive days value limits the export to the trailing
// window; zero or negative exports everything currently held.
func (s *Service) ExportMealLogs(ctx context.Context, days int) (int, error) {
	if s.exporter == nil {
		return 0, ErrExportUnavailable
	}

	var logs []models.MealLog
	if days > 0 {
		logs = s.meals.RecentLogs(days)
	} else {
		logs = s.meals.Logs()
	}

	rows := make([][]interface{}, 0, len(logs))
	for _, log := range logs {
		rows = append(rows, []interface{}{
			log.Date,
			log.Name,
			log.MealType,
			log.Nutrition.Calories,
			log.Nutrition.Protein,
			log.Nutrition.Carbs,
			log.Nutrition.Fat,
			log.EstimatedCost,
			log.CookedAt.Format(time.RFC3339),
		})
	}

	if err := s.exporter.AppendRows(ctx, mealLogRange, rows); err != nil {
		return 0, fmt.Errorf("append meal log rows: %w", err)
	}

	s.logger.Info("meal logs exported to sheet", zap.Int("rows", len(rows)), zap.Int("days", days))
	return len(rows), nil
}
