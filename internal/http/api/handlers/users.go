package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/basakrdnz/vibevault/internal/users"
)

// UserHandler manages profile, settings, export, and account deletion.
type UserHandler struct {
	users *users.Service
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(userSvc *users.Service) *UserHandler {
	return &UserHandler{users: userSvc}
}

// updateProfileRequest defines the request body for profile updates.
type updateProfileRequest struct {
	Name string `json:"name"`
}

// GetProfile returns the caller's profile and activity stats.
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, errProfile := h.users.Profile(c.Request.Context(), CurrentUserID(c))
	if errors.Is(errProfile, users.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "UserNotFound"})
		return
	}
	if errProfile != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile changes the caller's display name.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var body updateProfileRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	user, errUpdate := h.users.UpdateName(c.Request.Context(), CurrentUserID(c), body.Name)
	if errors.Is(errUpdate, users.ErrNameRequired) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	if errors.Is(errUpdate, users.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "UserNotFound"})
		return
	}
	if errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.Summary()})
}

// GetSocialSettings returns the caller's sharing preferences, creating
// defaults on first access.
func (h *UserHandler) GetSocialSettings(c *gin.Context) {
	settings, errGet := h.users.SocialSettings(c.Request.Context(), CurrentUserID(c))
	if errGet != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, settingsPayload(settings.IsProfilePrivate, settings.ShareViewingHistory, settings.ShareEmotionalResponses))
}

// UpdateSocialSettings toggles the caller's sharing preferences.
func (h *UserHandler) UpdateSocialSettings(c *gin.Context) {
	var body users.SettingsUpdate
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	settings, errUpdate := h.users.UpdateSocialSettings(c.Request.Context(), CurrentUserID(c), body)
	if errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, settingsPayload(settings.IsProfilePrivate, settings.ShareViewingHistory, settings.ShareEmotionalResponses))
}

// Export streams the caller's full data snapshot as a JSON download.
func (h *UserHandler) Export(c *gin.Context) {
	export, errExport := h.users.ExportData(c.Request.Context(), CurrentUserID(c))
	if errors.Is(errExport, users.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "UserNotFound"})
		return
	}
	if errExport != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	filename := fmt.Sprintf("vibevault-data-%s.json", export.User.ExportDate.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.IndentedJSON(http.StatusOK, export)
}

// Delete permanently removes the caller's account and all related rows.
func (h *UserHandler) Delete(c *gin.Context) {
	errDelete := h.users.Delete(c.Request.Context(), CurrentUserID(c))
	if errors.Is(errDelete, users.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "UserNotFound"})
		return
	}
	if errDelete != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Account and all associated data have been permanently deleted",
	})
}

func settingsPayload(private, viewing, emotional bool) gin.H {
	return gin.H{
		"isProfilePrivate":        private,
		"shareViewingHistory":     viewing,
		"shareEmotionalResponses": emotional,
	}
}
