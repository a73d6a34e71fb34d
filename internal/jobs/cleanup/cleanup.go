package cleanup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Job prunes read notifications past their retention window. Unread
// notifications are never deleted here.
type Job struct {
	cleaner   readNotificationCleaner
	retention time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

type readNotificationCleaner interface {
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

func NewNotificationCleanupJob(cleaner readNotificationCleaner, retention time.Duration, logger *zap.Logger) *Job {
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		cleaner:   cleaner,
		retention: retention,
		now:       time.Now,
		logger:    logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.cleaner == nil {
		return nil
	}

	cutoff := j.now().Add(-j.retention)
	rows, err := j.cleaner.DeleteReadOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("cleanup read notifications: %w", err)
	}
	if rows > 0 {
		j.logger.Info("cleanup read notifications completed", zap.Int64("deleted", rows))
	}

	return nil
}
