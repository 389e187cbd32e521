package models

import "time"

// SocialSettings holds a user's social sharing preferences.
type SocialSettings struct {
	ID string `gorm:"type:text;primaryKey"` // UUID primary key.

	UserID string `gorm:"type:text;not null;uniqueIndex"` // Owning user ID.

	IsProfilePrivate        bool `gorm:"not null;default:false"` // Hide the profile from non-friends.
	ShareViewingHistory     bool `gorm:"not null;default:true"`  // Expose watchlist activity to friends.
	ShareEmotionalResponses bool `gorm:"not null;default:true"`  // Expose mood entries to friends.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
