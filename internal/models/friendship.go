package models

import "time"

// Friendship represents an accepted friendship between two users.
// The pair is stored ordered (UserAID < UserBID) so a single row covers both
// directions; NormalizePair must be applied before any insert or lookup.
type Friendship struct {
	ID string `gorm:"type:text;primaryKey"` // UUID primary key.

	UserAID string `gorm:"type:text;not null;uniqueIndex:idx_friendships_pair"` // Lexicographically smaller user ID.
	UserBID string `gorm:"type:text;not null;uniqueIndex:idx_friendships_pair"` // Lexicographically larger user ID.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
}

// NormalizePair orders two user IDs so the same pair always maps to the same
// (a, b) regardless of call direction.
func NormalizePair(x, y string) (string, string) {
	if x < y {
		return x, y
	}
	return y, x
}
