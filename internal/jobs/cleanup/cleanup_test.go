package cleanup

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestRunDeletesReadNotificationsPastRetention(t *testing.T) {
	now := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)

	cleaner := &fakeCleaner{
		notifications: []storedNotification{
			{IsRead: true, CreatedAt: now.Add(-31 * 24 * time.Hour)},
			{IsRead: true, CreatedAt: now.Add(-5 * 24 * time.Hour)},
			{IsRead: false, CreatedAt: now.Add(-60 * 24 * time.Hour)},
		},
	}

	job := NewNotificationCleanupJob(cleaner, 30*24*time.Hour, zap.NewNop())
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run cleanup job: %v", err)
	}

	if len(cleaner.notifications) != 2 {
		t.Fatalf("unexpected remaining notifications: %d", len(cleaner.notifications))
	}
	for _, n := range cleaner.notifications {
		if n.IsRead && n.CreatedAt.Before(now.Add(-30*24*time.Hour)) {
			t.Fatalf("stale read notification survived cleanup")
		}
	}
}

func TestRunWithoutCleanerIsNoop(t *testing.T) {
	job := NewNotificationCleanupJob(nil, 0, nil)
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run cleanup job without cleaner: %v", err)
	}
}

type storedNotification struct {
	IsRead    bool
	CreatedAt time.Time
}

type fakeCleaner struct {
	notifications []storedNotification
}

func (f *fakeCleaner) DeleteReadOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []storedNotification
	var deleted int64
	for _, n := range f.notifications {
		if n.IsRead && n.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	f.notifications = kept
	return deleted, nil
}
