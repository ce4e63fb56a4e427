// Package worker runs the background audit-log pool. The orchestrator
// submits one record per handled query; workers persist it and feed the
// activity stream without ever blocking request handling.
package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/trywilco/secure-info-concierge/logger"
	"github.com/trywilco/secure-info-concierge/models"
)

// Sink consumes audit records off the pool.
type Sink interface {
	RecordQuery(ctx context.Context, rec models.QueryRecord) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, rec models.QueryRecord) error

func (f SinkFunc) RecordQuery(ctx context.Context, rec models.QueryRecord) error {
	return f(ctx, rec)
}

// Pool is a bounded worker pool draining audit records into a Sink.
type Pool struct {
	workers    int
	jobs       chan models.QueryRecord
	sink       Sink
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc

	// Metrics
	mu        sync.RWMutex
	processed uint64
	failed    uint64
	dropped   uint64
}

func NewPool(workers, buffer int, sink Sink) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers:    workers,
		jobs:       make(chan models.QueryRecord, buffer),
		sink:       sink,
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

func (p *Pool) Start() {
	logger.Get().Info("Starting audit worker pool", zap.Int("workers", p.workers))
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop drains the buffered records and waits for the workers to exit.
func (p *Pool) Stop() {
	logger.Get().Info("Stopping audit worker pool")
	close(p.jobs)
	p.wg.Wait()
	p.cancelFunc()
}

// Submit enqueues a record without blocking. It reports false when the buffer
// is full and the record was dropped; a dropped audit record is never an
// error surfaced to the user.
func (p *Pool) Submit(rec models.QueryRecord) bool {
	select {
	case p.jobs <- rec:
		return true
	default:
		p.mu.Lock()
		p.dropped++
		p.mu.Unlock()
		logger.Get().Warn("Audit buffer full, dropping record",
			zap.String("username", rec.Username))
		return false
	}
}

// Stats returns the processed, failed, and dropped counters.
func (p *Pool) Stats() (processed, failed, dropped uint64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.processed, p.failed, p.dropped
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for rec := range p.jobs {
		if err := p.sink.RecordQuery(p.ctx, rec); err != nil {
			p.mu.Lock()
			p.failed++
			p.mu.Unlock()
			logger.Get().Error("Failed to record query",
				zap.Int("worker", id),
				zap.String("username", rec.Username),
				zap.Error(err))
			continue
		}
		p.mu.Lock()
		p.processed++
		p.mu.Unlock()
		logger.Get().Debug("Query recorded",
			zap.Int("worker", id),
			zap.String("intent", rec.Intent.String()))
	}
}
