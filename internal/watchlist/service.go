package watchlist

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

// Business-rule rejections for watchlist operations.
var (
	ErrAlreadyInWatchlist = errors.New("watchlist: movie already in watchlist")
	ErrItemNotFound       = errors.New("watchlist: item not found")
	ErrInvalidStatus      = errors.New("watchlist: invalid status")
	ErrInvalidRating      = errors.New("watchlist: rating out of range")
)

// Stats counts a user's watchlist items per status.
type Stats struct {
	Total       int64 `json:"total"`
	WantToWatch int64 `json:"want_to_watch"`
	Watching    int64 `json:"watching"`
	Watched     int64 `json:"watched"`
}

// Update carries the mutable fields of a watchlist item; nil means unchanged.
type Update struct {
	Status *string `json:"status"`
	Rating *int    `json:"rating"`
	Notes  *string `json:"notes"`
}

// Service manages per-user watchlists.
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

// Add puts a movie on the user's watchlist. A movie can appear at most once
// per user.
func (s *Service) Add(ctx context.Context, userID, movieID, status string, rating *int, notes *string) (*models.WatchlistItem, error) {
	if status == "" {
		status = models.WatchlistStatusWantToWatch
	}
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}
	if rating != nil && (*rating < 1 || *rating > 10) {
		return nil, ErrInvalidRating
	}

	var existing int64
	if errCount := s.db.WithContext(ctx).Model(&models.WatchlistItem{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&existing).Error; errCount != nil {
		return nil, fmt.Errorf("watchlist: check existing: %w", errCount)
	}
	if existing > 0 {
		return nil, ErrAlreadyInWatchlist
	}

	now := s.nowFn().UTC()
	item := models.WatchlistItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		MovieID:   movieID,
		Status:    status,
		Rating:    rating,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if errCreate := s.db.WithContext(ctx).Create(&item).Error; errCreate != nil {
		if isUniqueViolation(errCreate) {
			return nil, ErrAlreadyInWatchlist
		}
		return nil, fmt.Errorf("watchlist: create item: %w", errCreate)
	}
	if errLoad := s.db.WithContext(ctx).Preload("Movie").First(&item, "id = ?", item.ID).Error; errLoad != nil {
		return nil, fmt.Errorf("watchlist: reload item: %w", errLoad)
	}
	return &item, nil
}

// List returns the user's watchlist, newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, userID, status string) ([]models.WatchlistItem, error) {
	query := s.db.WithContext(ctx).Preload("Movie").Where("user_id = ?", userID)
	if status != "" {
		if !validStatus(status) {
			return nil, ErrInvalidStatus
		}
		query = query.Where("status = ?", status)
	}
	var items []models.WatchlistItem
	if errFind := query.Order("created_at DESC").Find(&items).Error; errFind != nil {
		return nil, fmt.Errorf("watchlist: list items: %w", errFind)
	}
	return items, nil
}

// UpdateItem applies the given changes to an item owned by userID.
func (s *Service) UpdateItem(ctx context.Context, userID, itemID string, update Update) (*models.WatchlistItem, error) {
	var item models.WatchlistItem
	if errFind := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("watchlist: find item: %w", errFind)
	}

	updates := map[string]any{"updated_at": s.nowFn().UTC()}
	if update.Status != nil {
		if !validStatus(*update.Status) {
			return nil, ErrInvalidStatus
		}
		updates["status"] = *update.Status
	}
	if update.Rating != nil {
		if *update.Rating < 1 || *update.Rating > 10 {
			return nil, ErrInvalidRating
		}
		updates["rating"] = *update.Rating
	}
	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}

	if errUpdate := s.db.WithContext(ctx).Model(&models.WatchlistItem{}).
		Where("id = ?", item.ID).
		Updates(updates).Error; errUpdate != nil {
		return nil, fmt.Errorf("watchlist: update item: %w", errUpdate)
	}
	if errLoad := s.db.WithContext(ctx).Preload("Movie").First(&item, "id = ?", item.ID).Error; errLoad != nil {
		return nil, fmt.Errorf("watchlist: reload item: %w", errLoad)
	}
	return &item, nil
}

// Remove deletes an item owned by userID.
func (s *Service) Remove(ctx context.Context, userID, itemID string) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.WatchlistItem{})
	if result.Error != nil {
		return fmt.Errorf("watchlist: delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Contains reports whether the movie is on the user's watchlist.
func (s *Service) Contains(ctx context.Context, userID, movieID string) (bool, error) {
	var count int64
	if errCount := s.db.WithContext(ctx).Model(&models.WatchlistItem{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error; errCount != nil {
		return false, fmt.Errorf("watchlist: check contains: %w", errCount)
	}
	return count > 0, nil
}

// UserStats counts the user's items per status.
func (s *Service) UserStats(ctx context.Context, userID string) (*Stats, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	if errGroup := s.db.WithContext(ctx).Model(&models.WatchlistItem{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error; errGroup != nil {
		return nil, fmt.Errorf("watchlist: group stats: %w", errGroup)
	}

	stats := &Stats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case models.WatchlistStatusWantToWatch:
			stats.WantToWatch = row.Count
		case models.WatchlistStatusWatching:
			stats.Watching = row.Count
		case models.WatchlistStatusWatched:
			stats.Watched = row.Count
		}
	}
	return stats, nil
}

func validStatus(status string) bool {
	switch status {
	case models.WatchlistStatusWantToWatch, models.WatchlistStatusWatching, models.WatchlistStatusWatched:
		return true
	default:
		return false
	}
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
