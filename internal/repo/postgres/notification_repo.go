package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepo struct {
	pool *pgxpool.Pool
}

type NotificationRecord struct {
	ID        int64
	UserID    int64
	Type      string
	Message   string
	Data      map[string]any
	IsRead    bool
	CreatedAt time.Time
}

func NewNotificationRepo(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

func (r *NotificationRepo) Insert(ctx context.Context, userID int64, kind, message string, data map[string]any) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 || strings.TrimSpace(kind) == "" {
		return fmt.Errorf("invalid notification payload")
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal notification data: %w", err)
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO notifications (user_id, type, message, data, is_read, created_at)
VALUES ($1, $2, $3, $4::jsonb, FALSE, NOW())
`, userID, kind, message, string(payload)); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	return nil
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]NotificationRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := `
SELECT id, user_id, type, message, data, is_read, created_at
FROM notifications
WHERE user_id = $1
`
	if unreadOnly {
		query += "  AND is_read = FALSE\n"
	}
	query += "ORDER BY created_at DESC, id DESC\nLIMIT $2"

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []NotificationRecord
	for rows.Next() {
		var n NotificationRecord
		var raw []byte
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &raw, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &n.Data); err != nil {
				return nil, fmt.Errorf("unmarshal notification data: %w", err)
			}
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notification rows: %w", err)
	}

	return notifications, nil
}

// MarkRead is scoped to the owner so one user cannot mark another's rows.
func (r *NotificationRepo) MarkRead(ctx context.Context, notificationID, userID int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if notificationID <= 0 || userID <= 0 {
		return fmt.Errorf("invalid notification payload")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE notifications
SET is_read = TRUE
WHERE id = $1 AND user_id = $2
`, notificationID, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return 0, fmt.Errorf("invalid user id")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE notifications
SET is_read = TRUE
WHERE user_id = $1 AND is_read = FALSE
`, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *NotificationRepo) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if cutoff.IsZero() {
		return 0, fmt.Errorf("cutoff is required")
	}

	tag, err := r.pool.Exec(ctx, `
DELETE FROM notifications
WHERE is_read = TRUE AND created_at < $1
`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete read notifications: %w", err)
	}

	return tag.RowsAffected(), nil
}
