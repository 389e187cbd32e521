package models

import "time"

// Friend request statuses. A request starts pending and moves exactly once
// to accepted or declined. Cancelled is reserved; nothing transitions into it.
const (
	FriendRequestPending   = "pending"
	FriendRequestAccepted  = "accepted"
	FriendRequestDeclined  = "declined"
	FriendRequestCancelled = "cancelled"
)

// FriendRequest represents a pending or handled friend request between two users.
type FriendRequest struct {
	ID string `gorm:"type:text;primaryKey"` // UUID primary key.

	SenderID   string `gorm:"type:text;not null;index:idx_friend_requests_sender_status"`   // Sending user ID.
	ReceiverID string `gorm:"type:text;not null;index:idx_friend_requests_receiver_status"` // Receiving user ID.

	Sender   *User `gorm:"foreignKey:SenderID"`   // Sending user.
	Receiver *User `gorm:"foreignKey:ReceiverID"` // Receiving user.

	Status string `gorm:"type:text;not null;default:'pending';index:idx_friend_requests_sender_status;index:idx_friend_requests_receiver_status"` // Request status.

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`       // Last update timestamp.
}
