package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/basakrdnz/vibevault/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stats summarizes a user's discovery activity for the dashboard.
type Stats struct {
	Total     int64 `json:"total"`
	ThisWeek  int64 `json:"thisWeek"`
	ThisMonth int64 `json:"thisMonth"`
}

// Service tracks which movies each user has discovered.
type Service struct {
	db    *gorm.DB
	nowFn func() time.Time
}

// NewService constructs a Service. A nil nowFn defaults to time.Now.
func NewService(db *gorm.DB, nowFn func() time.Time) *Service {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Service{db: db, nowFn: nowFn}
}

// Record stores a discovery once per (user, movie) pair. It reports whether
// this call created a new record.
func (s *Service) Record(ctx context.Context, userID, movieID string) (bool, error) {
	var existing int64
	if errCount := s.db.WithContext(ctx).Model(&models.MovieDiscovery{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&existing).Error; errCount != nil {
		return false, fmt.Errorf("discovery: check existing: %w", errCount)
	}
	if existing > 0 {
		return false, nil
	}

	record := models.MovieDiscovery{
		ID:           uuid.NewString(),
		UserID:       userID,
		MovieID:      movieID,
		DiscoveredAt: s.nowFn().UTC(),
	}
	if errCreate := s.db.WithContext(ctx).Create(&record).Error; errCreate != nil {
		// A concurrent duplicate insert hits the unique pair index; treat it
		// as an existing discovery.
		if isUniqueViolation(errCreate) {
			return false, nil
		}
		return false, fmt.Errorf("discovery: create record: %w", errCreate)
	}
	return true, nil
}

// Count returns the user's total discovery count.
func (s *Service) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	if errCount := s.db.WithContext(ctx).Model(&models.MovieDiscovery{}).
		Where("user_id = ?", userID).
		Count(&count).Error; errCount != nil {
		return 0, fmt.Errorf("discovery: count: %w", errCount)
	}
	return count, nil
}

// History returns the user's most recent discoveries with movies preloaded.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]models.MovieDiscovery, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []models.MovieDiscovery
	if errFind := s.db.WithContext(ctx).
		Preload("Movie").
		Where("user_id = ?", userID).
		Order("discovered_at DESC").
		Limit(limit).
		Find(&records).Error; errFind != nil {
		return nil, fmt.Errorf("discovery: load history: %w", errFind)
	}
	return records, nil
}

// HasDiscovered reports whether the user has discovered the movie.
func (s *Service) HasDiscovered(ctx context.Context, userID, movieID string) (bool, error) {
	var count int64
	if errCount := s.db.WithContext(ctx).Model(&models.MovieDiscovery{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error; errCount != nil {
		return false, fmt.Errorf("discovery: check discovered: %w", errCount)
	}
	return count > 0, nil
}

// UserStats returns total, last-7-day and last-30-day discovery counts.
func (s *Service) UserStats(ctx context.Context, userID string) (*Stats, error) {
	now := s.nowFn().UTC()
	weekAgo := now.Add(-7 * 24 * time.Hour)
	monthAgo := now.Add(-30 * 24 * time.Hour)

	stats := &Stats{}
	base := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.MovieDiscovery{}).Where("user_id = ?", userID)
	}
	if errTotal := base().Count(&stats.Total).Error; errTotal != nil {
		return nil, fmt.Errorf("discovery: count total: %w", errTotal)
	}
	if errWeek := base().Where("discovered_at >= ?", weekAgo).Count(&stats.ThisWeek).Error; errWeek != nil {
		return nil, fmt.Errorf("discovery: count week: %w", errWeek)
	}
	if errMonth := base().Where("discovered_at >= ?", monthAgo).Count(&stats.ThisMonth).Error; errMonth != nil {
		return nil, fmt.Errorf("discovery: count month: %w", errMonth)
	}
	return stats, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
