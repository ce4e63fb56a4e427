package handlers

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/trywilco/secure-info-concierge/db"
	"github.com/trywilco/secure-info-concierge/logger"
	"github.com/trywilco/secure-info-concierge/models"
)

// TokenTTL is set from config in main.
var TokenTTL = 30 * time.Minute

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// HandleToken issues a bearer token for valid credentials. Unknown users and
// wrong passwords produce the same response.
func HandleToken(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := db.GetPasswordHash(c.Request.Context(), req.Username)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Get().Error("Credential lookup failed", zap.Error(err))
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
		return
	}

	now := time.Now()
	claims := models.ConciergeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   req.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("CONCIERGE_JWT_SECRET")))
	if err != nil {
		logger.Get().Error("Token signing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: signed, TokenType: "bearer"})
}
