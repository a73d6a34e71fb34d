package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	pgrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/postgres"
)

func TestNotifyValidatesInput(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store)
	ctx := context.Background()

	if err := svc.Notify(ctx, 0, enums.NotificationPostApproved, "msg", nil); err == nil {
		t.Fatalf("expected error for zero recipient")
	}
	if err := svc.Notify(ctx, 7, enums.NotificationPostApproved, "  ", nil); err == nil {
		t.Fatalf("expected error for empty message")
	}
	if err := svc.Notify(ctx, 7, enums.NotificationPostApproved, "your post was approved", map[string]any{"post_id": int64(3)}); err != nil {
		t.Fatalf("notify: %v", err)
	}

	if len(store.inserted) != 1 {
		t.Fatalf("unexpected insert count: %d", len(store.inserted))
	}
	if store.inserted[0].kind != string(enums.NotificationPostApproved) {
		t.Fatalf("unexpected kind: %s", store.inserted[0].kind)
	}
}

func TestMarkReadMapsNotFound(t *testing.T) {
	store := &stubStore{markReadErr: pgrepo.ErrNotificationNotFound}
	svc := NewService(store)

	if err := svc.MarkRead(context.Background(), 99, 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type insertedNotification struct {
	userID  int64
	kind    string
	message string
}

type stubStore struct {
	inserted    []insertedNotification
	markReadErr error
}

func (s *stubStore) Insert(_ context.Context, userID int64, kind, message string, _ map[string]any) error {
	s.inserted = append(s.inserted, insertedNotification{userID: userID, kind: kind, message: message})
	return nil
}

func (s *stubStore) ListByUser(_ context.Context, _ int64, _ bool, _ int) ([]pgrepo.NotificationRecord, error) {
	return nil, nil
}

func (s *stubStore) MarkRead(_ context.Context, _, _ int64) error {
	return s.markReadErr
}

func (s *stubStore) MarkAllRead(_ context.Context, _ int64) (int64, error) {
	return 0, nil
}
