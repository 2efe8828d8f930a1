package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/domain/models"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/repository/supabase"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/pkg/metrics"
)

const mealLogStoreName = "meal_logs"

// MealLogStore owns the in-memory meal log list. Loads replace the whole
// list; write-through mutations mirror the remote change into it on success.
type MealLogStore struct {
	repo    supabase.MealLogRepository
	logger  *zap.Logger
	metrics *metrics.Metrics
	timeout time.Duration
	now     func() time.Time

	mu      sync.RWMutex
	logs    []models.MealLog
	state   State
	loadSeq uint64
}

// NewMealLogStore builds a meal log store over the given repository.
// A timeout of zero or less selects DefaultLoadTimeout.
func NewMealLogStore(repo supabase.MealLogRepository, timeout time.Duration, m *metrics.Metrics, logger *zap.Logger) *MealLogStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	return &MealLogStore{
		repo:    repo,
		logger:  logger,
		metrics: m,
		timeout: timeout,
		now:     time.Now,
	}
}

// Load fetches all meal logs, newest cooked_at first. Failures are absorbed:
// any error or empty result installs the demo dataset and raises the
// UsingMockData flag instead of propagating. A watchdog forces the fallback
// if the fetch outlives the timeout; the fetch itself keeps running and a
// late successful reply still replaces the list.
func (s *MealLogStore) Load(ctx context.Context) {
	s.mu.Lock()
	s.state.Loading = true
	s.loadSeq++
	seq := s.loadSeq
	s.mu.Unlock()

	watchdog := time.AfterFunc(s.timeout, func() { s.loadTimedOut(seq) })
	rows, err := s.repo.ListAll(ctx)
	watchdog.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadSeq != seq {
		// A newer load owns the state now; drop this stale result.
		return
	}
	s.state.Loading = false

	switch {
	case err != nil:
		s.state.LastError = err.Error()
		s.applyMockLocked()
		s.logger.Warn("meal log load failed, falling back to demo data", zap.Error(err))
		s.observeLoad(metrics.OutcomeMockError)
	case len(rows) == 0:
		s.applyMockLocked()
		s.logger.Warn("meal log load returned no rows, using demo data")
		s.observeLoad(metrics.OutcomeMockEmpty)
	default:
		s.logs = rows
		s.state.UsingMockData = false
		s.state.LastError = ""
		s.logger.Info("meal logs loaded", zap.Int("count", len(rows)))
		s.observeLoad(metrics.OutcomeLive)
	}

	// A finished load never leaves an empty list without the demo flag set.
	if len(s.logs) == 0 && !s.state.UsingMockData {
		s.applyMockLocked()
	}
}

// loadTimedOut is the watchdog body. It fires at most once per load and is
// a no-op when that load already settled or a newer one started.
func (s *MealLogStore) loadTimedOut(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadSeq != seq || !s.state.Loading {
		return
	}
	s.state.Loading = false
	s.applyMockLocked()
	s.logger.Warn("meal log load exceeded timeout, using demo data", zap.Duration("timeout", s.timeout))
	s.observeLoad(metrics.OutcomeMockTimeout)
}

// Add inserts the meal log remotely and prepends the returned row locally.
// Unlike loads, mutation failures are recorded and returned to the caller.
func (s *MealLogStore) Add(ctx context.Context, input models.MealLogInput) (models.MealLog, error) {
	if input.CookedAt.IsZero() {
		input.CookedAt = s.now()
	}
	if input.Date == "" {
		input.Date = dayStart(input.CookedAt).Format(models.DateLayout)
	}

	row, err := s.repo.Insert(ctx, input)
	s.observeMutation("add", err)
	if err != nil {
		s.recordError(err)
		return models.MealLog{}, fmt.Errorf("add meal log: %w", err)
	}

	s.mu.Lock()
	s.logs = append([]models.MealLog{row}, s.logs...)
	s.mu.Unlock()

	s.logger.Info("meal log added", zap.Int64("id", row.ID), zap.String("name", row.Name))
	return row, nil
}

// Update patches the meal log remotely and replaces the matching local row
// in place, leaving list order untouched.
func (s *MealLogStore) Update(ctx context.Context, id int64, changes models.MealLogChanges) (models.MealLog, error) {
	row, err := s.repo.Update(ctx, id, changes)
	s.observeMutation("update", err)
	if err != nil {
		s.recordError(err)
		return models.MealLog{}, fmt.Errorf("update meal log: %w", err)
	}

	s.mu.Lock()
	for i := range s.logs {
		if s.logs[i].ID == id {
			s.logs[i] = row
			break
		}
	}
	s.mu.Unlock()

	s.logger.Info("meal log updated", zap.Int64("id", id))
	return row, nil
}

// Delete removes the meal log remotely, then drops the matching local row,
// preserving the order of the remainder.
func (s *MealLogStore) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	s.observeMutation("delete", err)
	if err != nil {
		s.recordError(err)
		return fmt.Errorf("delete meal log: %w", err)
	}

	s.mu.Lock()
	filtered := make([]models.MealLog, 0, len(s.logs))
	for _, l := range s.logs {
		if l.ID != id {
			filtered = append(filtered, l)
		}
	}
	s.logs = filtered
	s.mu.Unlock()

	s.logger.Info("meal log deleted", zap.Int64("id", id))
	return nil
}

// Logs returns a copy of the current list.
func (s *MealLogStore) Logs() []models.MealLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.MealLog, len(s.logs))
	copy(out, s.logs)
	return out
}

// State returns the current fallback condition.
func (s *MealLogStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// LogsBetween returns logs whose date falls within [from, to], both
// inclusive. Rows with unparsable dates are skipped.
func (s *MealLogStore) LogsBetween(from, to time.Time) []models.MealLog {
	fromDay := dayStart(from)
	toDay := dayStart(to)

	var out []models.MealLog
	for _, l := range s.Logs() {
		d, err := models.ParseDate(l.Date)
		if err != nil {
			s.logger.Debug("skip meal log with invalid date", zap.Int64("id", l.ID), zap.String("date", l.Date))
			continue
		}
		if d.Before(fromDay) || d.After(toDay) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// RecentLogs returns logs dated within the trailing N days, today inclusive.
// A log dated more than N days before today is excluded.
func (s *MealLogStore) RecentLogs(days int) []models.MealLog {
	if days <= 0 {
		return nil
	}
	cutoff := dayStart(s.now()).AddDate(0, 0, -(days - 1))

	var out []models.MealLog
	for _, l := range s.Logs() {
		d, err := models.ParseDate(l.Date)
		if err != nil {
			s.logger.Debug("skip meal log with invalid date", zap.Int64("id", l.ID), zap.String("date", l.Date))
			continue
		}
		if d.Before(cutoff) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func (s *MealLogStore) applyMockLocked() {
	s.logs = models.MockMealLogs(s.now())
	s.state.UsingMockData = true
}

func (s *MealLogStore) recordError(err error) {
	s.mu.Lock()
	s.state.LastError = err.Error()
	s.mu.Unlock()
}

func (s *MealLogStore) observeLoad(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveLoad(mealLogStoreName, outcome)
	}
}

func (s *MealLogStore) observeMutation(op string, err error) {
	if s.metrics != nil {
		s.metrics.ObserveMutation(mealLogStoreName, op, err)
	}
}
