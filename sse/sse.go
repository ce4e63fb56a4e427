// Package sse fans handled-query activity out to connected admin streams.
package sse

import (
	"sync"

	"go.uber.org/zap"

	"github.com/trywilco/secure-info-concierge/logger"
	"github.com/trywilco/secure-info-concierge/models"
)

const streamBuffer = 16

// ClientStream is one subscriber's event channel. Done is closed when the
// hub drops the subscriber.
type ClientStream struct {
	Events chan models.QueryRecord
	Done   chan struct{}
}

// Hub tracks activity subscribers. Broadcast never blocks: a subscriber that
// cannot keep up misses events rather than stalling the worker pool.
type Hub struct {
	mu      sync.RWMutex
	streams map[string]*ClientStream
}

func NewHub() *Hub {
	return &Hub{streams: make(map[string]*ClientStream)}
}

// Subscribe registers a new stream under the given ID.
func (h *Hub) Subscribe(id string) *ClientStream {
	stream := &ClientStream{
		Events: make(chan models.QueryRecord, streamBuffer),
		Done:   make(chan struct{}),
	}
	h.mu.Lock()
	h.streams[id] = stream
	h.mu.Unlock()
	return stream
}

// Unsubscribe removes the stream and closes its Done channel.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	stream, ok := h.streams[id]
	if ok {
		delete(h.streams, id)
	}
	h.mu.Unlock()
	if ok {
		close(stream.Done)
	}
}

// Broadcast delivers the record to every subscriber that has buffer room.
func (h *Hub) Broadcast(rec models.QueryRecord) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, stream := range h.streams {
		select {
		case stream.Events <- rec:
		default:
			logger.Get().Debug("Activity subscriber lagging, event skipped",
				zap.String("stream_id", id))
		}
	}
}
