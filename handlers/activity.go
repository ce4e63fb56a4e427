package handlers

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trywilco/secure-info-concierge/sse"
)

// Activity is the query-activity hub, set in main.
var Activity *sse.Hub

// HandleActivityStream streams handled-query audit records to the client as
// server-sent events until the client disconnects.
func HandleActivityStream(c *gin.Context) {
	streamID := uuid.NewString()
	stream := Activity.Subscribe(streamID)
	defer Activity.Unsubscribe(streamID)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case rec, ok := <-stream.Events:
			if !ok {
				return false
			}
			payload, err := json.Marshal(rec)
			if err != nil {
				return true
			}
			c.SSEvent("query", string(payload))
			return true
		}
	})
}
