package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/basakrdnz/vibevault/internal/movies"
)

// CacheHandler exposes the movie list cache for inspection and clearing.
type CacheHandler struct {
	cache *movies.ListCache
}

// NewCacheHandler constructs a CacheHandler.
func NewCacheHandler(cache *movies.ListCache) *CacheHandler {
	return &CacheHandler{cache: cache}
}

// Info reports the age of each cached movie list.
func (h *CacheHandler) Info(c *gin.Context) {
	info, errInfo := h.cache.Info(c.Request.Context())
	if errInfo != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	now := time.Now()
	entries := make(map[string]gin.H, len(info))
	for listType, updatedAt := range info {
		if updatedAt == nil {
			entries[listType] = gin.H{"cached": false}
			continue
		}
		entries[listType] = gin.H{
			"cached":     true,
			"updatedAt":  updatedAt.UTC(),
			"ageSeconds": int(now.Sub(*updatedAt).Seconds()),
		}
	}
	c.JSON(http.StatusOK, gin.H{"caches": entries})
}

// Clear drops every cached movie list.
func (h *CacheHandler) Clear(c *gin.Context) {
	if errClear := h.cache.Clear(c.Request.Context()); errClear != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "caches cleared"})
}
