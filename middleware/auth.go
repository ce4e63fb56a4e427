package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/trywilco/secure-info-concierge/logger"
	"github.com/trywilco/secure-info-concierge/models"
)

const principalKey = "principal"

// ResolvePrincipal verifies a bearer token and adapts it into a Principal.
// It is the only place token verification happens; both middleware variants
// go through it.
func ResolvePrincipal(tokenString string) (*models.Principal, error) {
	claims := &models.ConciergeClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		secret := os.Getenv("CONCIERGE_JWT_SECRET")
		if secret == "" {
			return nil, fmt.Errorf("CONCIERGE_JWT_SECRET environment variable not set")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("error parsing claims: %v", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token carries no subject")
	}
	return &models.Principal{Username: claims.Subject}, nil
}

// RequireAuth rejects requests without a verifiable bearer token.
func RequireAuth(c *gin.Context) {
	tokenString := extractToken(c.Request)
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
		c.Abort()
		return
	}

	principal, err := ResolvePrincipal(tokenString)
	if err != nil {
		logger.Get().Warn("Token verification failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		c.Abort()
		return
	}

	c.Set(principalKey, principal)
	c.Next()
}

// OptionalAuth resolves a principal when a valid token is present and lets
// the request through anonymously otherwise. A malformed or expired token is
// treated exactly like a missing one so callers cannot distinguish the two.
func OptionalAuth(c *gin.Context) {
	tokenString := extractToken(c.Request)
	if tokenString != "" {
		if principal, err := ResolvePrincipal(tokenString); err == nil {
			c.Set(principalKey, principal)
		} else {
			logger.Get().Debug("Ignoring unverifiable token on anonymous-tolerant route",
				zap.Error(err))
		}
	}
	c.Next()
}

// PrincipalFrom returns the request's principal, or nil for anonymous
// requests.
func PrincipalFrom(c *gin.Context) *models.Principal {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	principal, ok := v.(*models.Principal)
	if !ok {
		return nil
	}
	return principal
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}
