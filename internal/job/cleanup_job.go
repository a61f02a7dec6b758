package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"postforge-api/internal/repository"
)

// CleanupJob permanently removes form definitions that have been soft
// deleted for longer than the retention period
type CleanupJob struct {
	formRepo      repository.FormRepository
	retentionDays int
	logger        *zap.Logger
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(formRepo repository.FormRepository, retentionDays int, logger *zap.Logger) *CleanupJob {
	return &CleanupJob{
		formRepo:      formRepo,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// Run executes the cleanup job
func (j *CleanupJob) Run() {
	ctx := context.Background()

	cutoff := time.Now().UTC().AddDate(0, 0, -j.retentionDays)
	j.logger.Info("Starting form cleanup job",
		zap.Time("cutoff", cutoff),
		zap.Int("retention_days", j.retentionDays),
	)

	purged, err := j.formRepo.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to purge soft-deleted forms", zap.Error(err))
		return
	}

	if purged == 0 {
		j.logger.Info("No soft-deleted forms past retention")
		return
	}

	j.logger.Info("Cleanup job completed", zap.Int64("purged", purged))
}
