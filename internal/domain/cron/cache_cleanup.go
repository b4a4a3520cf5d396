package cron

import (
	"context"
	"time"

	"github.com/lotopool/backend/internal/domain/resultcache"
	"github.com/lotopool/backend/pkg/xcontext"
)

// CacheCleanupCronJob periodically evicts expired draw results from both
// cache tiers so the durable tier does not grow without bound.
type CacheCleanupCronJob struct {
	cache    *resultcache.Cache
	interval time.Duration
}

func NewCacheCleanupCronJob(cache *resultcache.Cache, interval time.Duration) *CacheCleanupCronJob {
	if interval <= 0 {
		interval = 4 * time.Hour
	}

	return &CacheCleanupCronJob{cache: cache, interval: interval}
}

func (job *CacheCleanupCronJob) Do(ctx context.Context) {
	removed, err := job.cache.Cleanup(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot cleanup result cache: %v", err)
		return
	}

	if removed > 0 {
		xcontext.Logger(ctx).Infof("Removed %d expired results from cache", removed)
	}
}

func (job *CacheCleanupCronJob) RunNow() bool {
	return true
}

func (job *CacheCleanupCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}
