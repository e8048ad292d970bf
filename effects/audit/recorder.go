// Package audit collects execution context reports into per-unit claims.
//
// Contexts are single-goroutine, but many goroutines may report into one
// Recorder. Reports are routed to a worker by a hash of their unit name,
// so one worker folds every report of a unit, in arrival order, without
// locks on the claims.
package audit

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/on-the-ground/effect_ive_kinds/effects"
	"go.uber.org/zap"
)

// ErrRecorderClosed is returned by Record after Close.
var ErrRecorderClosed = errors.New("recorder is closed")

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogger logs invalid reports at warn level.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Recorder folds reports into claims on NumWorkers goroutines.
type Recorder struct {
	id     string
	logger *zap.Logger

	shardChs []chan effects.Report
	shards   []map[string]*Claim
	wg       sync.WaitGroup

	mu        sync.RWMutex
	closed    bool
	collected bool
	done      chan struct{}
}

// New starts a recorder. Cancelling ctx stops accepting reports and lets
// the workers drain, as Close does; Close still returns the claims.
func New(ctx context.Context, config Config, opts ...Option) *Recorder {
	config = NewConfig(config.BufferSize, config.NumWorkers)
	r := &Recorder{
		id:       uuid.New().String(),
		logger:   zap.NewNop(),
		shardChs: make([]chan effects.Report, config.NumWorkers),
		shards:   make([]map[string]*Claim, config.NumWorkers),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(zap.String("recorder_id", r.id))

	for i := 0; i < config.NumWorkers; i++ {
		ch := make(chan effects.Report, config.BufferSize)
		claims := make(map[string]*Claim)
		r.shardChs[i] = ch
		r.shards[i] = claims
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			for report := range ch {
				r.fold(claims, report)
			}
		}()
	}
	if ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				if r.stop() {
					r.logger.Debug("recorder context done", zap.Error(ctx.Err()))
				}
			case <-r.done:
			}
		}()
	}
	r.logger.Debug("started recorder", zap.Int("workers", config.NumWorkers))
	return r
}

// Record queues report for its unit's worker.
func (r *Recorder) Record(ctx context.Context, report effects.Report) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrRecorderClosed
	}
	select {
	case r.shardChs[shardOf(report.PartitionKey(), len(r.shardChs))] <- report:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RecordContext reports c and records the result.
func (r *Recorder) RecordContext(ctx context.Context, c *effects.ExecutionContext) error {
	return r.Record(ctx, c.Report())
}

// Close stops accepting reports, waits for the workers to drain and
// returns every claim sorted by unit. Later calls return nil.
func (r *Recorder) Close() []Claim {
	r.stop()
	r.mu.Lock()
	if r.collected {
		r.mu.Unlock()
		return nil
	}
	r.collected = true
	r.mu.Unlock()
	r.wg.Wait()

	out := make([]Claim, 0)
	for _, shard := range r.shards {
		for _, claim := range shard {
			out = append(out, *claim)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Unit < out[j].Unit })
	r.logger.Debug("closed recorder", zap.Int("claims", len(out)))
	return out
}

// stop closes the shard channels once and reports whether it did.
func (r *Recorder) stop() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	r.closed = true
	for _, ch := range r.shardChs {
		close(ch)
	}
	close(r.done)
	return true
}

func (r *Recorder) fold(claims map[string]*Claim, report effects.Report) {
	claim, ok := claims[report.Unit]
	if !ok {
		claim = &Claim{Unit: report.Unit}
		claims[report.Unit] = claim
	}
	claim.fold(report)
	if !report.Valid {
		r.logger.Warn("unit showed effects outside its policy",
			zap.String("unit", report.Unit),
			zap.String("context_id", report.ContextID),
			zap.Stringer("kind", report.Kind),
			zap.Stringer("violations", report.Violations()),
		)
	}
}

func shardOf(key string, n int) int {
	switch n {
	case 0:
		panic("number of shards cannot be 0")
	case 1:
		return 0
	default:
		return int(xxhash.Sum64String(key) % uint64(n))
	}
}
