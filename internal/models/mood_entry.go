package models

import "time"

// MoodEntry records an emotional reaction a user logged for a movie.
type MoodEntry struct {
	ID string `gorm:"type:text;primaryKey"` // UUID primary key.

	UserID  string `gorm:"type:text;not null;index"` // Owning user ID.
	MovieID string `gorm:"type:text;not null;index"` // Referenced movie ID.
	Movie   *Movie `gorm:"foreignKey:MovieID"`       // Referenced movie.

	Mood      string `gorm:"type:text;not null"` // Emotion name from the catalogue.
	Intensity int    `gorm:"not null"`           // Intensity on a 1-10 scale.
	Notes     string `gorm:"type:text"`          // Optional free-form notes.

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index"` // Creation timestamp.
}
