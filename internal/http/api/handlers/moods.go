package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/basakrdnz/vibevault/internal/moods"
)

// MoodHandler manages mood logging and analytics endpoints.
type MoodHandler struct {
	moods *moods.Service
}

// NewMoodHandler constructs a MoodHandler.
func NewMoodHandler(moodSvc *moods.Service) *MoodHandler {
	return &MoodHandler{moods: moodSvc}
}

// addEntryRequest defines the request body for logging a mood.
type addEntryRequest struct {
	MovieID   string `json:"movieId"`
	Mood      string `json:"mood"`
	Intensity int    `json:"intensity"`
	Notes     string `json:"notes"`
}

// AddEntry logs an emotional reaction for a movie.
func (h *MoodHandler) AddEntry(c *gin.Context) {
	var body addEntryRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(body.MovieID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing movieId"})
		return
	}

	entry, errAdd := h.moods.AddEntry(c.Request.Context(), CurrentUserID(c), body.MovieID, body.Mood, body.Intensity, body.Notes)
	switch {
	case errors.Is(errAdd, moods.ErrUnknownEmotion):
		c.JSON(http.StatusBadRequest, gin.H{"error": "UnknownEmotion"})
		return
	case errors.Is(errAdd, moods.ErrInvalidIntensity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "InvalidIntensity"})
		return
	case errAdd != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// MovieAnalytics returns the aggregated mood profile of a movie.
func (h *MoodHandler) MovieAnalytics(c *gin.Context) {
	movieID := strings.TrimSpace(c.Query("movieId"))
	if movieID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing movieId"})
		return
	}
	analytics, errAnalytics := h.moods.MovieAnalytics(c.Request.Context(), movieID)
	if errAnalytics != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, analytics)
}

// UserEntries lists the caller's mood entries, optionally for one movie.
func (h *MoodHandler) UserEntries(c *gin.Context) {
	movieID := strings.TrimSpace(c.Query("movieId"))
	entries, errList := h.moods.UserEntries(c.Request.Context(), CurrentUserID(c), movieID)
	if errList != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// UserStats returns the caller's mood dashboard payload: totals,
// distribution, and weekly intensity trends.
func (h *MoodHandler) UserStats(c *gin.Context) {
	ctx := c.Request.Context()
	userID := CurrentUserID(c)

	stats, errStats := h.moods.UserStats(ctx, userID)
	if errStats != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	distribution, errDistribution := h.moods.UserDistribution(ctx, userID)
	if errDistribution != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	trends, errTrends := h.moods.UserIntensityTrends(ctx, userID)
	if errTrends != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stats":        stats,
		"distribution": distribution,
		"trends":       trends,
	})
}

// Emotions lists the emotion catalogue with chart colors.
func (h *MoodHandler) Emotions(c *gin.Context) {
	emotions := moods.AvailableEmotions()
	colors := make(map[string]string, len(emotions))
	for _, emotion := range emotions {
		colors[emotion] = moods.ColorFor(emotion)
	}
	c.JSON(http.StatusOK, gin.H{
		"emotions": emotions,
		"colors":   colors,
	})
}
