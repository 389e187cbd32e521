package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/basakrdnz/vibevault/internal/config"
	"github.com/basakrdnz/vibevault/internal/http/api/handlers"
	"github.com/basakrdnz/vibevault/internal/observability"
	"github.com/basakrdnz/vibevault/internal/ratelimit"
	"github.com/basakrdnz/vibevault/internal/security"
)

// userAuthMiddleware validates user JWTs and stores the caller identity.
func userAuthMiddleware(jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		token = strings.TrimSpace(token)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		userID, errJWT := security.ParseUserToken(jwtCfg.Secret, token)
		if errJWT != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(handlers.ContextUserID, userID)
		c.Next()
	}
}

// rateLimitMiddleware rejects callers that exceed the rule's fixed window.
// Limiter failures fail open so persistence outages do not block writes.
func rateLimitMiddleware(limiter *ratelimit.Manager, ruleName string, rule ratelimit.Rule, keyFn func(string) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		userID := c.GetString(handlers.ContextUserID)
		result, errAllow := limiter.Allow(c.Request.Context(), keyFn(userID), rule)
		if errAllow != nil {
			log.WithError(errAllow).Warn("rate limit check failed, allowing request")
			c.Next()
			return
		}
		if !result.Allowed {
			observability.IncRateLimitRejection(ruleName)
			c.Header("Retry-After", result.Reset.UTC().Format(http.TimeFormat))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "RateLimited"})
			return
		}
		c.Next()
	}
}
