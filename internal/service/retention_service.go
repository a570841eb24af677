package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/html2url/internal/models"
	"github.com/noah-isme/html2url/pkg/storage"
)

type retentionStore interface {
	List() ([]models.Artifact, error)
	Delete(name string) error
}

// RetentionConfig tunes the sweep cadence and the age cutoff.
type RetentionConfig struct {
	MaxFileAge      time.Duration
	CleanupInterval time.Duration
}

// Retention evicts artifacts older than the configured TTL. Exactly one
// sweep loop runs per process, independent of request traffic.
type Retention struct {
	store   retentionStore
	metrics *MetricsService
	logger  *zap.Logger
	cfg     RetentionConfig

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewRetention constructs the sweeper.
func NewRetention(store retentionStore, metrics *MetricsService, logger *zap.Logger, cfg RetentionConfig) *Retention {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxFileAge <= 0 {
		cfg.MaxFileAge = 24 * time.Hour
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 10 * time.Minute
	}
	return &Retention{
		store:   store,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
	}
}

// Start launches the sweep loop. Safe to call more than once; only the first
// call has an effect.
func (r *Retention) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	ctx, r.cancel = context.WithCancel(ctx)
	r.started = true
	r.wg.Add(1)
	go r.loop(ctx)
	r.logger.Info("retention sweeper started",
		zap.Duration("max_file_age", r.cfg.MaxFileAge),
		zap.Duration("cleanup_interval", r.cfg.CleanupInterval))
}

// Stop cancels the loop and waits for the current sweep to finish.
func (r *Retention) Stop() {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	r.cancel()
	r.mu.Unlock()
	r.wg.Wait()
	r.logger.Info("retention sweeper stopped")
}

func (r *Retention) loop(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.cfg.CleanupInterval)
	defer ticker.Stop()

	// One sweep up front so a restart with a full directory does not wait a
	// whole interval before evicting.
	r.Sweep(time.Now())

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(time.Now())
		}
	}
}

// Sweep performs one full pass: every artifact older than MaxFileAge is
// deleted. Per-file failures are logged and never abort the pass. Returns
// the number of artifacts evicted.
func (r *Retention) Sweep(now time.Time) int {
	artifacts, err := r.store.List()
	if err != nil {
		r.logger.Error("sweep enumeration failed", zap.Error(err))
		return 0
	}

	deleted := 0
	for _, artifact := range artifacts {
		age := artifact.Age(now)
		if age <= r.cfg.MaxFileAge {
			continue
		}
		if err := r.store.Delete(artifact.Name); err != nil {
			// Already gone is a benign race with a concurrent fetch or a
			// previous sweep.
			if !errors.Is(err, storage.ErrNotFound) {
				r.logger.Warn("sweep delete failed", zap.String("filename", artifact.Name), zap.Error(err))
			}
			continue
		}
		deleted++
		r.logger.Info("artifact evicted",
			zap.String("filename", artifact.Name),
			zap.Float64("age_hours", age.Hours()))
	}
	if deleted > 0 {
		r.metrics.RecordSwept(deleted)
		r.logger.Info("sweep finished", zap.Int("deleted", deleted))
	}
	return deleted
}
