package movies

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/basakrdnz/vibevault/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cacheTTL is how long a cached movie list stays fresh.
const cacheTTL = 24 * time.Hour

// ListCache stores ordered movie ID lists with a freshness window.
type ListCache struct {
	db    *gorm.DB
	nowFn func() time.Time
}

// NewListCache constructs a ListCache. A nil nowFn defaults to time.Now.
func NewListCache(db *gorm.DB, nowFn func() time.Time) *ListCache {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &ListCache{db: db, nowFn: nowFn}
}

// Get returns the cached movie IDs for a list type, or (nil, false) when the
// row is absent or older than the TTL.
func (c *ListCache) Get(ctx context.Context, listType string) ([]string, bool, error) {
	var row models.MovieListCache
	if errFind := c.db.WithContext(ctx).Where("type = ?", listType).First(&row).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("movies: load %s cache: %w", listType, errFind)
	}
	if c.nowFn().Sub(row.UpdatedAt) >= cacheTTL {
		return nil, false, nil
	}

	var ids []string
	if errUnmarshal := json.Unmarshal(row.MovieIDs, &ids); errUnmarshal != nil {
		return nil, false, fmt.Errorf("movies: decode %s cache: %w", listType, errUnmarshal)
	}
	return ids, true, nil
}

// Set stores the movie IDs for a list type, replacing any existing row.
func (c *ListCache) Set(ctx context.Context, listType string, movieIDs []string) error {
	payload, errMarshal := json.Marshal(movieIDs)
	if errMarshal != nil {
		return fmt.Errorf("movies: encode %s cache: %w", listType, errMarshal)
	}
	row := models.MovieListCache{
		Type:      listType,
		MovieIDs:  payload,
		UpdatedAt: c.nowFn().UTC(),
	}
	if errUpsert := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{"movie_ids", "updated_at"}),
	}).Create(&row).Error; errUpsert != nil {
		return fmt.Errorf("movies: store %s cache: %w", listType, errUpsert)
	}
	return nil
}

// Clear removes all cached lists.
func (c *ListCache) Clear(ctx context.Context) error {
	if errDelete := c.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&models.MovieListCache{}).Error; errDelete != nil {
		return fmt.Errorf("movies: clear cache: %w", errDelete)
	}
	return nil
}

// Info reports the last refresh time per list type; nil means no row.
func (c *ListCache) Info(ctx context.Context) (map[string]*time.Time, error) {
	var rows []models.MovieListCache
	if errFind := c.db.WithContext(ctx).Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("movies: load cache info: %w", errFind)
	}
	info := map[string]*time.Time{
		models.MovieListCacheFeatured: nil,
		models.MovieListCachePopular:  nil,
	}
	for _, row := range rows {
		updated := row.UpdatedAt
		info[row.Type] = &updated
	}
	return info, nil
}
