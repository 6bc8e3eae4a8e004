package jobs

import (
	"github.com/claimlens/claimlens-backend/services"
	"github.com/sirupsen/logrus"
)

// CacheCleanupJob periodically purges expired verdicts from the cache.
// Expiry is already enforced at read time, so this only reclaims memory.
type CacheCleanupJob struct {
	CacheService *services.CacheService
}

func NewCacheCleanupJob(cacheService *services.CacheService) *CacheCleanupJob {
	return &CacheCleanupJob{CacheService: cacheService}
}

func (j *CacheCleanupJob) Run() {
	logrus.Info("Starting Cache Cleanup Job")
	purged := j.CacheService.CleanupExpired()
	logrus.WithField("purged", purged).Info("Cache Cleanup Job completed")
}
