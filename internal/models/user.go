package models

import "time"

// User represents an end-user account stored in the database.
type User struct {
	ID string `gorm:"type:text;primaryKey"` // UUID primary key.

	Email    string `gorm:"type:text;not null;uniqueIndex"` // Unique login email.
	Password string `gorm:"type:text;not null"`             // Bcrypt password hash.
	Name     string `gorm:"type:text"`                      // Display name.
	Image    string `gorm:"type:text"`                      // Avatar URL.

	WatchlistItems []WatchlistItem `gorm:"foreignKey:UserID"` // Related watchlist items.
	MoodEntries    []MoodEntry     `gorm:"foreignKey:UserID"` // Related mood entries.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// PublicSummary is the profile shape exposed to other users.
type PublicSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Summary returns the public profile summary for the user.
func (u User) Summary() PublicSummary {
	return PublicSummary{ID: u.ID, Email: u.Email, Name: u.Name, Image: u.Image}
}
