package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
)

var ErrContentNotFound = errors.New("content not found")

// ModerationRepo implements the status transition for every moderated
// content table. The write is a single conditional UPDATE keyed on
// status = 'PENDING'; zero affected rows means the entity was either
// missing or already moderated, which the service tells apart via GetState.
type ModerationRepo struct {
	pool *pgxpool.Pool
}

type ContentState struct {
	ID       int64
	AuthorID int64
	Status   string
}

type DecisionRecord struct {
	ID          int64
	AuthorID    int64
	Status      string
	ModeratedBy int64
	ModeratedAt time.Time
}

type QueueItemRecord struct {
	ID        int64
	AuthorID  int64
	Title     string
	Images    []string
	CreatedAt time.Time
}

func NewModerationRepo(pool *pgxpool.Pool) *ModerationRepo {
	return &ModerationRepo{pool: pool}
}

func contentTable(kind enums.ContentKind) (table, authorColumn string, err error) {
	switch kind {
	case enums.ContentKindPost:
		return "posts", "author_id", nil
	case enums.ContentKindReview:
		return "reviews", "customer_id", nil
	case enums.ContentKindCommunityPost:
		return "community_posts", "author_id", nil
	default:
		return "", "", fmt.Errorf("unknown content kind %q", kind)
	}
}

// Transition applies PENDING -> target for one entity. The returned bool is
// false when no PENDING row matched; callers must not treat that as success.
func (r *ModerationRepo) Transition(
	ctx context.Context,
	kind enums.ContentKind,
	contentID int64,
	target enums.ContentStatus,
	moderatorID int64,
	note string,
) (DecisionRecord, bool, error) {
	if r.pool == nil {
		return DecisionRecord{}, false, fmt.Errorf("postgres pool is nil")
	}
	if contentID <= 0 || moderatorID <= 0 {
		return DecisionRecord{}, false, fmt.Errorf("invalid transition payload")
	}
	if !target.Terminal() {
		return DecisionRecord{}, false, fmt.Errorf("transition target %q is not terminal", target)
	}

	table, authorColumn, err := contentTable(kind)
	if err != nil {
		return DecisionRecord{}, false, err
	}

	var record DecisionRecord
	err = r.pool.QueryRow(ctx, fmt.Sprintf(`
UPDATE %s
SET
	status = $2,
	moderated_by = $3,
	moderated_at = NOW(),
	moderation_note = NULLIF($4, ''),
	updated_at = NOW()
WHERE id = $1 AND status = 'PENDING'
RETURNING id, %s, status, moderated_by, moderated_at
`, table, authorColumn), contentID, string(target), moderatorID, strings.TrimSpace(note)).Scan(
		&record.ID,
		&record.AuthorID,
		&record.Status,
		&record.ModeratedBy,
		&record.ModeratedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return DecisionRecord{}, false, nil
		}
		return DecisionRecord{}, false, fmt.Errorf("transition %s %d: %w", table, contentID, err)
	}

	return record, true, nil
}

func (r *ModerationRepo) GetState(ctx context.Context, kind enums.ContentKind, contentID int64) (ContentState, error) {
	if r.pool == nil {
		return ContentState{}, fmt.Errorf("postgres pool is nil")
	}
	if contentID <= 0 {
		return ContentState{}, fmt.Errorf("invalid content id")
	}

	table, authorColumn, err := contentTable(kind)
	if err != nil {
		return ContentState{}, err
	}

	var state ContentState
	err = r.pool.QueryRow(ctx, fmt.Sprintf(`
SELECT id, %s, status
FROM %s
WHERE id = $1
`, authorColumn, table), contentID).Scan(&state.ID, &state.AuthorID, &state.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ContentState{}, ErrContentNotFound
		}
		return ContentState{}, fmt.Errorf("get %s state: %w", table, err)
	}

	return state, nil
}

// ApproveAllPending flips every PENDING row of the kind to APPROVED in one
// statement. Re-running it is a no-op since only PENDING rows match.
func (r *ModerationRepo) ApproveAllPending(ctx context.Context, kind enums.ContentKind) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	table, _, err := contentTable(kind)
	if err != nil {
		return 0, err
	}

	tag, err := r.pool.Exec(ctx, fmt.Sprintf(`
UPDATE %s
SET status = 'APPROVED', updated_at = NOW()
WHERE status = 'PENDING'
`, table))
	if err != nil {
		return 0, fmt.Errorf("approve all pending %s: %w", table, err)
	}

	return tag.RowsAffected(), nil
}

func (r *ModerationRepo) CountPending(ctx context.Context, kind enums.ContentKind) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	table, _, err := contentTable(kind)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.pool.QueryRow(ctx, fmt.Sprintf(`
SELECT COUNT(*)
FROM %s
WHERE status = 'PENDING'
`, table)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pending %s: %w", table, err)
	}

	return count, nil
}

func (r *ModerationRepo) ListPending(ctx context.Context, kind enums.ContentKind, limit int) ([]QueueItemRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	table, authorColumn, err := contentTable(kind)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
SELECT id, %s, title, images, created_at
FROM %s
WHERE status = 'PENDING'
ORDER BY created_at ASC, id ASC
LIMIT $1
`, authorColumn, table), limit)
	if err != nil {
		return nil, fmt.Errorf("list pending %s: %w", table, err)
	}
	defer rows.Close()

	var items []QueueItemRecord
	for rows.Next() {
		var item QueueItemRecord
		if err := rows.Scan(&item.ID, &item.AuthorID, &item.Title, &item.Images, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending %s row: %w", table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending %s rows: %w", table, err)
	}

	return items, nil
}
