package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/basakrdnz/vibevault/internal/models"
)

// HealthHandler reports service and database health.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health verifies database connectivity and reports row counts.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	var one int
	if errPing := h.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; errPing != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "database unreachable",
		})
		return
	}

	var userCount, movieCount int64
	if errCount := h.db.WithContext(ctx).Model(&models.User{}).Count(&userCount).Error; errCount != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unreachable"})
		return
	}
	if errCount := h.db.WithContext(ctx).Model(&models.Movie{}).Count(&movieCount).Error; errCount != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unreachable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"users":  userCount,
		"movies": movieCount,
	})
}
