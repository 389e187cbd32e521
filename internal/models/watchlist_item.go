package models

import "time"

// Watchlist item statuses.
const (
	WatchlistStatusWantToWatch = "want_to_watch"
	WatchlistStatusWatching    = "watching"
	WatchlistStatusWatched     = "watched"
)

// WatchlistItem links a user to a movie on their watchlist.
type WatchlistItem struct {
	ID string `gorm:"type:text;primaryKey"` // UUID primary key.

	UserID  string `gorm:"type:text;not null;uniqueIndex:idx_watchlist_user_movie"` // Owning user ID.
	MovieID string `gorm:"type:text;not null;uniqueIndex:idx_watchlist_user_movie"` // Referenced movie ID.
	Movie   *Movie `gorm:"foreignKey:MovieID"`                                      // Referenced movie.

	Status string  `gorm:"type:text;not null;default:'want_to_watch';index"` // Watch status.
	Rating *int    `gorm:""`                                                 // Optional 1-10 rating.
	Notes  *string `gorm:"type:text"`                                        // Optional free-form notes.

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`       // Last update timestamp.
}
