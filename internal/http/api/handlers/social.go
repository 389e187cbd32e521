package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/basakrdnz/vibevault/internal/models"
	"github.com/basakrdnz/vibevault/internal/social"
)

// SocialHandler manages friend requests and friendships.
type SocialHandler struct {
	social *social.Service
}

// NewSocialHandler constructs a SocialHandler.
func NewSocialHandler(socialSvc *social.Service) *SocialHandler {
	return &SocialHandler{social: socialSvc}
}

// sendRequestBody defines the request body for sending a friend request.
type sendRequestBody struct {
	Email string `json:"email"`
}

// respondBody defines the request body for answering a friend request.
type respondBody struct {
	RequestID string `json:"requestId"`
	Action    string `json:"action"`
}

// requestSummary is the pending-request shape exposed to the client.
type requestSummary struct {
	ID        string                `json:"id"`
	Status    string                `json:"status"`
	CreatedAt string                `json:"createdAt"`
	User      *models.PublicSummary `json:"user,omitempty"`
}

// SendRequest sends a friend request to the user owning the given email.
func (h *SocialHandler) SendRequest(c *gin.Context) {
	var body sendRequestBody
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(body.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing email"})
		return
	}

	request, errSend := h.social.SendFriendRequest(c.Request.Context(), CurrentUserID(c), body.Email)
	if errSend != nil {
		status, identifier := socialErrorResponse(errSend)
		c.JSON(status, gin.H{"error": identifier})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":     request.ID,
		"status": request.Status,
	})
}

// Respond accepts or declines a pending friend request addressed to the caller.
func (h *SocialHandler) Respond(c *gin.Context) {
	var body respondBody
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(body.RequestID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing requestId"})
		return
	}

	request, errRespond := h.social.RespondToFriendRequest(c.Request.Context(), CurrentUserID(c), body.RequestID, body.Action)
	if errRespond != nil {
		status, identifier := socialErrorResponse(errRespond)
		c.JSON(status, gin.H{"error": identifier})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":     request.ID,
		"status": request.Status,
	})
}

// Friends lists the caller's friends as public summaries.
func (h *SocialHandler) Friends(c *gin.Context) {
	friends, errList := h.social.ListFriends(c.Request.Context(), CurrentUserID(c))
	if errList != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// Requests lists the caller's pending requests in both directions.
func (h *SocialHandler) Requests(c *gin.Context) {
	lists, errList := h.social.ListFriendRequests(c.Request.Context(), CurrentUserID(c))
	if errList != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	incoming := make([]requestSummary, 0, len(lists.Incoming))
	for _, request := range lists.Incoming {
		incoming = append(incoming, newRequestSummary(request, request.Sender))
	}
	outgoing := make([]requestSummary, 0, len(lists.Outgoing))
	for _, request := range lists.Outgoing {
		outgoing = append(outgoing, newRequestSummary(request, request.Receiver))
	}
	c.JSON(http.StatusOK, gin.H{
		"incoming": incoming,
		"outgoing": outgoing,
	})
}

func newRequestSummary(request models.FriendRequest, counterpart *models.User) requestSummary {
	out := requestSummary{
		ID:        request.ID,
		Status:    request.Status,
		CreatedAt: request.CreatedAt.UTC().Format(time.RFC3339),
	}
	if counterpart != nil {
		summary := counterpart.Summary()
		out.User = &summary
	}
	return out
}

// socialErrorResponse maps business-rule rejections to HTTP statuses and
// their stable client-facing identifiers.
func socialErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, social.ErrUserNotFound):
		return http.StatusNotFound, "UserNotFound"
	case errors.Is(err, social.ErrCannotFriendSelf):
		return http.StatusBadRequest, "CannotFriendSelf"
	case errors.Is(err, social.ErrRequestAlreadyExists):
		return http.StatusConflict, "RequestAlreadyExists"
	case errors.Is(err, social.ErrAlreadyFriends):
		return http.StatusConflict, "AlreadyFriends"
	case errors.Is(err, social.ErrRequestNotFound):
		return http.StatusNotFound, "RequestNotFound"
	case errors.Is(err, social.ErrRequestAlreadyHandled):
		return http.StatusConflict, "RequestAlreadyHandled"
	case errors.Is(err, social.ErrInvalidAction):
		return http.StatusBadRequest, "InvalidAction"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
