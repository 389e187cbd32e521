package models

import "time"

// MovieDiscovery records the first time a user discovered a movie.
// At most one row exists per (user, movie) pair.
type MovieDiscovery struct {
	ID string `gorm:"type:text;primaryKey"` // UUID primary key.

	UserID  string `gorm:"type:text;not null;uniqueIndex:idx_movie_discoveries_user_movie"` // Discovering user ID.
	MovieID string `gorm:"type:text;not null;uniqueIndex:idx_movie_discoveries_user_movie"` // Discovered movie ID.
	Movie   *Movie `gorm:"foreignKey:MovieID"`                                              // Discovered movie.

	DiscoveredAt time.Time `gorm:"not null;index"` // When the discovery happened.
}
