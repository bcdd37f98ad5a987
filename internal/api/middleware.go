package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/xaramillo/crossfit/internal/domain"
	"github.com/xaramillo/crossfit/internal/service"
)

// Constants for context keys
const (
	ContextActorKey     = "actor"
	ContextRequestIDKey = "requestID"
)

// AuthMiddleware creates a Gin middleware for JWT authentication. On
// success it stores the acting identity (id + role) in the request context;
// handlers pass it explicitly into every service call.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		claims := &service.Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		if !token.Valid || claims.UserID == 0 || !domain.ValidRole(claims.Role) {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		c.Set(ContextActorKey, domain.Actor{UserID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// RoleMiddleware creates middleware to check if user has the required
// role(s). Must run AFTER AuthMiddleware. This is only a route-level gate;
// the services re-check the capability table on every call.
func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := getActorFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Acting identity not found in context")
			return
		}

		for _, role := range allowedRoles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		abortWithError(c, http.StatusForbidden, "denied")
	}
}

// RequestIDMiddleware tags every request with a uuid, echoed in the
// X-Request-ID response header and the request log line.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// RequestLogger logs one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("requestId", c.GetString(ContextRequestIDKey)).
			Str("ip", c.ClientIP()).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// Helper function to get the acting identity from context (used by handlers)
func getActorFromContext(c *gin.Context) (domain.Actor, error) {
	raw, exists := c.Get(ContextActorKey)
	if !exists {
		return domain.Actor{}, errors.New("actor not found in context")
	}
	actor, ok := raw.(domain.Actor)
	if !ok {
		return domain.Actor{}, errors.New("invalid actor type in context")
	}
	return actor, nil
}
