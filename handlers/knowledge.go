package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trywilco/secure-info-concierge/db"
	"github.com/trywilco/secure-info-concierge/logger"
)

type knowledgeRequest struct {
	Tag  string `json:"tag" binding:"required"`
	Info string `json:"info" binding:"required"`
}

// HandleAddKnowledge inserts a knowledge item. New items default to the
// lowest sensitivity level; raising it is a manual operation.
func HandleAddKnowledge(c *gin.Context) {
	var req knowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := db.InsertKnowledge(c.Request.Context(), req.Tag, req.Info, 1)
	if err != nil {
		logger.Get().Error("Knowledge insert failed",
			zap.String("tag", req.Tag),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}
