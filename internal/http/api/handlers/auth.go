package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/basakrdnz/vibevault/internal/config"
	"github.com/basakrdnz/vibevault/internal/security"
	"github.com/basakrdnz/vibevault/internal/users"
)

const minPasswordLength = 8

// AuthHandler manages registration and login.
type AuthHandler struct {
	users  *users.Service
	jwtCfg config.JWTConfig
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(userSvc *users.Service, jwtCfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{users: userSvc, jwtCfg: jwtCfg}
}

// registerRequest defines the request body for account creation.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// loginRequest defines the request body for login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new user account.
func (h *AuthHandler) Register(c *gin.Context) {
	var body registerRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	email := strings.TrimSpace(body.Email)
	if email == "" || !strings.Contains(email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
		return
	}
	if len(body.Password) < minPasswordLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters"})
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing name"})
		return
	}

	user, errRegister := h.users.Register(c.Request.Context(), email, body.Password, body.Name)
	if errors.Is(errRegister, users.ErrEmailExists) {
		c.JSON(http.StatusConflict, gin.H{"error": "EmailExists"})
		return
	}
	if errRegister != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"name":      user.Name,
		"createdAt": user.CreatedAt,
	})
}

// Login verifies credentials and issues a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if body.Email == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing credentials"})
		return
	}

	user, errAuth := h.users.Authenticate(c.Request.Context(), body.Email, body.Password)
	if errors.Is(errAuth, users.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if errAuth != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	token, errToken := security.IssueUserToken(h.jwtCfg.Secret, user.ID, h.jwtCfg.Expiry, time.Now())
	if errToken != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user.Summary(),
	})
}
