package job

import (
	"context"
	"time"

	"github.com/phuslu/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Purger drops expired cache entries.
type Purger interface {
	Purge(now time.Time) int
}

// CacheJanitor periodically evicts expired entries from the in-memory cache,
// which otherwise only checks expiry on read.
type CacheJanitor struct {
	tracer   trace.Tracer
	store    Purger
	interval time.Duration
	now      func() time.Time
}

func NewCacheJanitor(tracer trace.Tracer, store Purger, intervalSecs int) *CacheJanitor {
	if intervalSecs <= 0 {
		intervalSecs = 60
	}
	return &CacheJanitor{
		tracer:   tracer,
		store:    store,
		interval: time.Duration(intervalSecs) * time.Second,
		now:      time.Now,
	}
}

// Start blocks until ctx is cancelled.
func (j *CacheJanitor) Start(ctx context.Context) {
	log.Info().Dur("interval", j.interval).Msg("cache janitor starting")
	j.pollLoop(ctx, "cache-purge", j.interval, j.sweep)
	log.Info().Msg("cache janitor stopped")
}

func (j *CacheJanitor) pollLoop(ctx context.Context, name string, interval time.Duration, fn func(context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := fn(ctx); err != nil {
				log.Warn().Err(err).Str("job", name).Msg("job run failed")
			}
		}
	}
}

func (j *CacheJanitor) sweep(ctx context.Context) error {
	_, span := j.tracer.Start(ctx, "job.cache-purge")
	defer span.End()

	removed := j.store.Purge(j.now())
	span.SetAttributes(attribute.Int("removed", removed))
	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("purged expired cache entries")
	}
	return nil
}
