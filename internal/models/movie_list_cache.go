package models

import (
	"time"

	"gorm.io/datatypes"
)

// Movie list cache types.
const (
	MovieListCacheFeatured = "featured"
	MovieListCachePopular  = "popular"
)

// MovieListCache stores a cached, ordered list of movie IDs for the landing
// page sliders. Rows are keyed by list type and considered stale after 24h.
type MovieListCache struct {
	Type string `gorm:"type:text;primaryKey"` // List type: featured or popular.

	MovieIDs datatypes.JSON `gorm:"not null;default:'[]'"` // JSON array of movie IDs.

	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last refresh timestamp.
}
