package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/basakrdnz/vibevault/internal/watchlist"
)

// WatchlistHandler manages per-user watchlist endpoints.
type WatchlistHandler struct {
	watchlist *watchlist.Service
}

// NewWatchlistHandler constructs a WatchlistHandler.
func NewWatchlistHandler(watchlistSvc *watchlist.Service) *WatchlistHandler {
	return &WatchlistHandler{watchlist: watchlistSvc}
}

// addRequest defines the request body for adding a movie to the watchlist.
type addRequest struct {
	MovieID string  `json:"movieId"`
	Status  string  `json:"status"`
	Rating  *int    `json:"rating"`
	Notes   *string `json:"notes"`
}

// Add puts a movie on the caller's watchlist.
func (h *WatchlistHandler) Add(c *gin.Context) {
	var body addRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(body.MovieID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing movieId"})
		return
	}

	item, errAdd := h.watchlist.Add(c.Request.Context(), CurrentUserID(c), body.MovieID, body.Status, body.Rating, body.Notes)
	switch {
	case errors.Is(errAdd, watchlist.ErrAlreadyInWatchlist):
		c.JSON(http.StatusConflict, gin.H{"error": "AlreadyInWatchlist"})
		return
	case errors.Is(errAdd, watchlist.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "InvalidStatus"})
		return
	case errors.Is(errAdd, watchlist.ErrInvalidRating):
		c.JSON(http.StatusBadRequest, gin.H{"error": "InvalidRating"})
		return
	case errAdd != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// List returns the caller's watchlist, optionally filtered by status.
func (h *WatchlistHandler) List(c *gin.Context) {
	status := strings.TrimSpace(c.Query("status"))
	items, errList := h.watchlist.List(c.Request.Context(), CurrentUserID(c), status)
	if errors.Is(errList, watchlist.ErrInvalidStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "InvalidStatus"})
		return
	}
	if errList != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Check reports whether a movie is already on the caller's watchlist.
func (h *WatchlistHandler) Check(c *gin.Context) {
	movieID := strings.TrimSpace(c.Query("movieId"))
	if movieID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing movieId"})
		return
	}
	inList, errCheck := h.watchlist.Contains(c.Request.Context(), CurrentUserID(c), movieID)
	if errCheck != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"inWatchlist": inList})
}

// Stats returns per-status counts for the caller's watchlist.
func (h *WatchlistHandler) Stats(c *gin.Context) {
	stats, errStats := h.watchlist.UserStats(c.Request.Context(), CurrentUserID(c))
	if errStats != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Update changes a watchlist item's status, rating, or notes.
func (h *WatchlistHandler) Update(c *gin.Context) {
	var body watchlist.Update
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	item, errUpdate := h.watchlist.UpdateItem(c.Request.Context(), CurrentUserID(c), c.Param("id"), body)
	switch {
	case errors.Is(errUpdate, watchlist.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "ItemNotFound"})
		return
	case errors.Is(errUpdate, watchlist.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "InvalidStatus"})
		return
	case errors.Is(errUpdate, watchlist.ErrInvalidRating):
		c.JSON(http.StatusBadRequest, gin.H{"error": "InvalidRating"})
		return
	case errUpdate != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// Remove deletes a watchlist item owned by the caller.
func (h *WatchlistHandler) Remove(c *gin.Context) {
	errRemove := h.watchlist.Remove(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if errors.Is(errRemove, watchlist.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "ItemNotFound"})
		return
	}
	if errRemove != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
