package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trywilco/secure-info-concierge/db"
	"github.com/trywilco/secure-info-concierge/llm"
)

var startedAt = time.Now()

// Generator is the generation client, set in main; /ready reports 503 until
// it exists.
var Generator *llm.Client

// HandleHealth always returns 200.
func HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleReady returns 200 only once the database answers and the generation
// client is initialized.
func HandleReady(c *gin.Context) {
	uptime := fmt.Sprintf("%.2f seconds", time.Since(startedAt).Seconds())

	if Generator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "initializing",
			"message": "Application is still initializing. Please try again later.",
			"uptime":  uptime,
		})
		return
	}

	if err := db.DB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "initializing",
			"message": "Database is not reachable yet.",
			"uptime":  uptime,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "uptime": uptime})
}
