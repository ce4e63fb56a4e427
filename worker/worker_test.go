package worker

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/trywilco/secure-info-concierge/models"
)

type countingSink struct {
	mu      sync.Mutex
	records []models.QueryRecord
	err     error
}

func (s *countingSink) RecordQuery(ctx context.Context, rec models.QueryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, rec)
	return nil
}

func record(username string) models.QueryRecord {
	return models.QueryRecord{
		ID:       uuid.New(),
		Username: username,
		Query:    "what's my balance",
		Intent:   models.IntentAccountBalance,
	}
}

func TestPoolProcessesSubmittedRecords(t *testing.T) {
	sink := &countingSink{}
	pool := NewPool(2, 10, sink)
	pool.Start()

	for i := 0; i < 5; i++ {
		assert.True(t, pool.Submit(record("johndoe")))
	}
	pool.Stop()

	processed, failed, dropped := pool.Stats()
	assert.Equal(t, uint64(5), processed)
	assert.Equal(t, uint64(0), failed)
	assert.Equal(t, uint64(0), dropped)
	assert.Len(t, sink.records, 5)
}

func TestPoolDropsWhenBufferFull(t *testing.T) {
	// Not started, so the single buffer slot fills immediately.
	pool := NewPool(1, 1, &countingSink{})

	assert.True(t, pool.Submit(record("johndoe")))
	assert.False(t, pool.Submit(record("janedoe")))

	_, _, dropped := pool.Stats()
	assert.Equal(t, uint64(1), dropped)
}

func TestPoolCountsSinkFailures(t *testing.T) {
	sink := &countingSink{err: fmt.Errorf("database unavailable")}
	pool := NewPool(1, 10, sink)
	pool.Start()

	pool.Submit(record("johndoe"))
	pool.Stop()

	processed, failed, _ := pool.Stats()
	assert.Equal(t, uint64(0), processed)
	assert.Equal(t, uint64(1), failed)
}

func TestPoolStopDrainsBufferedRecords(t *testing.T) {
	sink := &countingSink{}
	pool := NewPool(1, 10, sink)

	for i := 0; i < 3; i++ {
		pool.Submit(record("johndoe"))
	}
	pool.Start()
	pool.Stop()

	processed, _, _ := pool.Stats()
	assert.Equal(t, uint64(3), processed)
}
