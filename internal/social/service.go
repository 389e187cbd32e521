package social

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/basakrdnz/vibevault/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Business-rule rejections surfaced by the friend request flow. Each maps to
// a stable client-facing identifier at the HTTP boundary.
var (
	ErrUserNotFound          = errors.New("social: user not found")
	ErrCannotFriendSelf      = errors.New("social: cannot friend self")
	ErrRequestAlreadyExists  = errors.New("social: request already exists")
	ErrAlreadyFriends        = errors.New("social: already friends")
	ErrRequestNotFound       = errors.New("social: request not found")
	ErrRequestAlreadyHandled = errors.New("social: request already handled")
	ErrInvalidAction         = errors.New("social: invalid action")
)

// Actions accepted by RespondToFriendRequest.
const (
	ActionAccept  = "accept"
	ActionDecline = "decline"
)

// Service implements the friend request state machine over the database.
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

// SendFriendRequest creates a pending request from sender to the user who
// owns the given email. Validation runs fully before any write: receiver
// existence, self-friending, duplicate pending request in either direction,
// then existing friendship.
func (s *Service) SendFriendRequest(ctx context.Context, senderID, email string) (*models.FriendRequest, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var receiver models.User
	if errFind := s.db.WithContext(ctx).Where("email = ?", email).First(&receiver).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("social: find receiver: %w", errFind)
	}
	if receiver.ID == senderID {
		return nil, ErrCannotFriendSelf
	}

	var pendingCount int64
	if errCount := s.db.WithContext(ctx).Model(&models.FriendRequest{}).
		Where("status = ?", models.FriendRequestPending).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			senderID, receiver.ID, receiver.ID, senderID).
		Count(&pendingCount).Error; errCount != nil {
		return nil, fmt.Errorf("social: check pending request: %w", errCount)
	}
	if pendingCount > 0 {
		return nil, ErrRequestAlreadyExists
	}

	userA, userB := models.NormalizePair(senderID, receiver.ID)
	var friendCount int64
	if errCount := s.db.WithContext(ctx).Model(&models.Friendship{}).
		Where("user_a_id = ? AND user_b_id = ?", userA, userB).
		Count(&friendCount).Error; errCount != nil {
		return nil, fmt.Errorf("social: check friendship: %w", errCount)
	}
	if friendCount > 0 {
		return nil, ErrAlreadyFriends
	}

	now := s.nowFn().UTC()
	request := models.FriendRequest{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiver.ID,
		Status:     models.FriendRequestPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if errCreate := s.db.WithContext(ctx).Create(&request).Error; errCreate != nil {
		// The partial unique index turns a concurrent duplicate send into a
		// constraint violation instead of a second pending row.
		if isUniqueViolation(errCreate) {
			return nil, ErrRequestAlreadyExists
		}
		return nil, fmt.Errorf("social: create request: %w", errCreate)
	}
	request.Receiver = &receiver
	return &request, nil
}

// RespondToFriendRequest accepts or declines a pending request addressed to
// userID. A request that does not exist and a request addressed to someone
// else are indistinguishable to the caller.
func (s *Service) RespondToFriendRequest(ctx context.Context, userID, requestID, action string) (*models.FriendRequest, error) {
	if action != ActionAccept && action != ActionDecline {
		return nil, ErrInvalidAction
	}

	var request models.FriendRequest
	if errFind := s.db.WithContext(ctx).
		Where("id = ? AND receiver_id = ?", requestID, userID).
		First(&request).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("social: find request: %w", errFind)
	}
	if request.Status != models.FriendRequestPending {
		return nil, ErrRequestAlreadyHandled
	}

	now := s.nowFn().UTC()
	if action == ActionDecline {
		if errUpdate := s.db.WithContext(ctx).Model(&request).Updates(map[string]any{
			"status":     models.FriendRequestDeclined,
			"updated_at": now,
		}).Error; errUpdate != nil {
			return nil, fmt.Errorf("social: decline request: %w", errUpdate)
		}
		request.Status = models.FriendRequestDeclined
		request.UpdatedAt = now
		return &request, nil
	}

	userA, userB := models.NormalizePair(request.SenderID, request.ReceiverID)
	friendship := models.Friendship{
		ID:        uuid.NewString(),
		UserAID:   userA,
		UserBID:   userB,
		CreatedAt: now,
	}
	// Status update and friendship insert must land together. An existing
	// row for the pair is tolerated rather than treated as a failure.
	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if errUpdate := tx.Model(&models.FriendRequest{}).
			Where("id = ?", request.ID).
			Updates(map[string]any{
				"status":     models.FriendRequestAccepted,
				"updated_at": now,
			}).Error; errUpdate != nil {
			return fmt.Errorf("social: accept request: %w", errUpdate)
		}
		if errUpsert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_a_id"}, {Name: "user_b_id"}},
			DoNothing: true,
		}).Create(&friendship).Error; errUpsert != nil {
			return fmt.Errorf("social: create friendship: %w", errUpsert)
		}
		return nil
	})
	if errTx != nil {
		return nil, errTx
	}
	request.Status = models.FriendRequestAccepted
	request.UpdatedAt = now
	return &request, nil
}

// ListFriends returns the public summaries of every friend of userID.
func (s *Service) ListFriends(ctx context.Context, userID string) ([]models.PublicSummary, error) {
	var friendships []models.Friendship
	if errFind := s.db.WithContext(ctx).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&friendships).Error; errFind != nil {
		return nil, fmt.Errorf("social: list friendships: %w", errFind)
	}

	friendIDs := make([]string, 0, len(friendships))
	for _, friendship := range friendships {
		if friendship.UserAID == userID {
			friendIDs = append(friendIDs, friendship.UserBID)
		} else {
			friendIDs = append(friendIDs, friendship.UserAID)
		}
	}
	if len(friendIDs) == 0 {
		return []models.PublicSummary{}, nil
	}

	var users []models.User
	if errFind := s.db.WithContext(ctx).Where("id IN ?", friendIDs).Find(&users).Error; errFind != nil {
		return nil, fmt.Errorf("social: load friends: %w", errFind)
	}

	byID := make(map[string]models.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}
	summaries := make([]models.PublicSummary, 0, len(friendIDs))
	for _, id := range friendIDs {
		if user, ok := byID[id]; ok {
			summaries = append(summaries, user.Summary())
		}
	}
	return summaries, nil
}

// RequestLists groups a user's pending requests by direction.
type RequestLists struct {
	Incoming []models.FriendRequest `json:"incoming"`
	Outgoing []models.FriendRequest `json:"outgoing"`
}

// ListFriendRequests returns the user's pending requests, newest first.
// Incoming rows carry the sender's account, outgoing rows the receiver's.
func (s *Service) ListFriendRequests(ctx context.Context, userID string) (*RequestLists, error) {
	lists := RequestLists{
		Incoming: []models.FriendRequest{},
		Outgoing: []models.FriendRequest{},
	}
	if errFind := s.db.WithContext(ctx).
		Preload("Sender").
		Where("receiver_id = ? AND status = ?", userID, models.FriendRequestPending).
		Order("created_at DESC").
		Find(&lists.Incoming).Error; errFind != nil {
		return nil, fmt.Errorf("social: list incoming requests: %w", errFind)
	}
	if errFind := s.db.WithContext(ctx).
		Preload("Receiver").
		Where("sender_id = ? AND status = ?", userID, models.FriendRequestPending).
		Order("created_at DESC").
		Find(&lists.Outgoing).Error; errFind != nil {
		return nil, fmt.Errorf("social: list outgoing requests: %w", errFind)
	}
	return &lists, nil
}

// isUniqueViolation reports whether the error looks like a unique constraint failure.
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
