package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	pgrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/postgres"
)

var ErrNotFound = errors.New("notification not found")

type Store interface {
	Insert(ctx context.Context, userID int64, kind, message string, data map[string]any) error
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]pgrepo.NotificationRecord, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Notify persists one in-app notification. Callers on the moderation path
// treat failures as non-fatal.
func (s *Service) Notify(ctx context.Context, userID int64, kind enums.NotificationType, message string, data map[string]any) error {
	if s.store == nil {
		return fmt.Errorf("notifications service store is nil")
	}
	if userID <= 0 {
		return fmt.Errorf("invalid notification recipient")
	}
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("notification message is required")
	}
	return s.store.Insert(ctx, userID, string(kind), message, data)
}

func (s *Service) List(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]pgrepo.NotificationRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("notifications service store is nil")
	}
	return s.store.ListByUser(ctx, userID, unreadOnly, limit)
}

func (s *Service) MarkRead(ctx context.Context, notificationID, userID int64) error {
	if s.store == nil {
		return fmt.Errorf("notifications service store is nil")
	}
	if err := s.store.MarkRead(ctx, notificationID, userID); err != nil {
		if errors.Is(err, pgrepo.ErrNotificationNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	if s.store == nil {
		return 0, fmt.Errorf("notifications service store is nil")
	}
	return s.store.MarkAllRead(ctx, userID)
}
