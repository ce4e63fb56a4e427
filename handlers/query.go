package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trywilco/secure-info-concierge/logger"
	"github.com/trywilco/secure-info-concierge/middleware"
	"github.com/trywilco/secure-info-concierge/models"
	"github.com/trywilco/secure-info-concierge/pipeline"
)

// Concierge is the pipeline orchestrator, set in main before routes are
// registered.
var Concierge *pipeline.Orchestrator

// HandleSecureQuery is the anonymous-tolerant variant: a principal is used
// when present and the authorization table inside the resolver does the rest.
func HandleSecureQuery(c *gin.Context) {
	serveQuery(c, Concierge.Handle)
}

// HandleUserSecureQuery is the strict variant. RequireAuth already rejects
// missing tokens; HandleStrict keeps the guarantee even if the route is ever
// rewired.
func HandleUserSecureQuery(c *gin.Context) {
	serveQuery(c, Concierge.HandleStrict)
}

func serveQuery(c *gin.Context, handle func(ctx context.Context, query string, principal *models.Principal) (*models.QueryResult, error)) {
	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal := middleware.PrincipalFrom(c)

	result, err := handle(c.Request.Context(), req.Query, principal)
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": pipeline.ErrUnauthenticated.Error()})
		case errors.Is(err, pipeline.ErrRejected):
			c.JSON(http.StatusBadRequest, gin.H{"error": pipeline.ErrRejected.Error()})
		case errors.Is(err, pipeline.ErrUpstreamUnavailable):
			logger.Get().Error("Context resolution failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
		default:
			logger.Get().Error("Query handling failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, models.QueryResponse{Response: result.Answer})
}
