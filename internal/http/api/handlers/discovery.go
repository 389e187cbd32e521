package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/basakrdnz/vibevault/internal/discovery"
)

// DiscoveryHandler manages movie discovery tracking endpoints.
type DiscoveryHandler struct {
	discovery *discovery.Service
}

// NewDiscoveryHandler constructs a DiscoveryHandler.
func NewDiscoveryHandler(discoverySvc *discovery.Service) *DiscoveryHandler {
	return &DiscoveryHandler{discovery: discoverySvc}
}

// recordRequest defines the request body for recording a discovery.
type recordRequest struct {
	MovieID string `json:"movieId"`
}

// Record marks a movie as discovered by the caller.
func (h *DiscoveryHandler) Record(c *gin.Context) {
	var body recordRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(body.MovieID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing movieId"})
		return
	}

	userID := CurrentUserID(c)
	created, errRecord := h.discovery.Record(c.Request.Context(), userID, body.MovieID)
	if errRecord != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	count, errCount := h.discovery.Count(c.Request.Context(), userID)
	if errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"isNewDiscovery": created,
		"discoveryCount": count,
	})
}

// History returns the caller's discovery count and recent history.
func (h *DiscoveryHandler) History(c *gin.Context) {
	userID := CurrentUserID(c)
	limit := intQuery(c, "limit", 20)

	count, errCount := h.discovery.Count(c.Request.Context(), userID)
	if errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	history, errHistory := h.discovery.History(c.Request.Context(), userID, limit)
	if errHistory != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"discoveryCount": count,
		"history":        history,
	})
}
