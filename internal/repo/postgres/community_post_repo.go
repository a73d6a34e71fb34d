package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrCommunityPostNotFound = errors.New("community post not found")

type CommunityPostRepo struct {
	pool *pgxpool.Pool
}

type CommunityPostRecord struct {
	ID             int64
	AuthorID       int64
	Title          string
	Body           string
	Images         []string
	Status         string
	ModeratedBy    *int64
	ModeratedAt    *time.Time
	ModerationNote *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewCommunityPostRepo(pool *pgxpool.Pool) *CommunityPostRepo {
	return &CommunityPostRepo{pool: pool}
}

const communityPostColumns = `id, author_id, title, body, images, status, moderated_by, moderated_at, moderation_note, created_at, updated_at`

func (r *CommunityPostRepo) Create(ctx context.Context, authorID int64, title, body string, images []string) (CommunityPostRecord, error) {
	if r.pool == nil {
		return CommunityPostRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if authorID <= 0 || strings.TrimSpace(title) == "" {
		return CommunityPostRecord{}, fmt.Errorf("invalid community post payload")
	}
	if images == nil {
		images = []string{}
	}

	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
INSERT INTO community_posts (author_id, title, body, images, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, 'PENDING', NOW(), NOW())
RETURNING %s
`, communityPostColumns), authorID, strings.TrimSpace(title), body, images)

	return scanCommunityPost(row)
}

func (r *CommunityPostRepo) GetByID(ctx context.Context, postID int64) (CommunityPostRecord, error) {
	if r.pool == nil {
		return CommunityPostRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if postID <= 0 {
		return CommunityPostRecord{}, fmt.Errorf("invalid community post id")
	}

	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
SELECT %s
FROM community_posts
WHERE id = $1
`, communityPostColumns), postID)

	return scanCommunityPost(row)
}

func (r *CommunityPostRepo) List(ctx context.Context, status string, authorID int64, limit, offset int) ([]CommunityPostRecord, int64, error) {
	if r.pool == nil {
		return nil, 0, fmt.Errorf("postgres pool is nil")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var conds []string
	args := []any{}
	if strings.TrimSpace(status) != "" {
		args = append(args, strings.ToUpper(strings.TrimSpace(status)))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if authorID > 0 {
		args = append(args, authorID)
		conds = append(conds, fmt.Sprintf("author_id = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM community_posts %s`, where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count community posts: %w", err)
	}

	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
SELECT %s
FROM community_posts
%s
ORDER BY created_at DESC, id DESC
LIMIT $%d OFFSET $%d
`, communityPostColumns, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list community posts: %w", err)
	}
	defer rows.Close()

	var posts []CommunityPostRecord
	for rows.Next() {
		post, err := scanCommunityPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate community post rows: %w", err)
	}

	return posts, total, nil
}

func (r *CommunityPostRepo) UpdateOwnPending(ctx context.Context, postID, authorID int64, title, body string) (CommunityPostRecord, bool, error) {
	if r.pool == nil {
		return CommunityPostRecord{}, false, fmt.Errorf("postgres pool is nil")
	}
	if postID <= 0 || authorID <= 0 || strings.TrimSpace(title) == "" {
		return CommunityPostRecord{}, false, fmt.Errorf("invalid community post update payload")
	}

	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
UPDATE community_posts
SET title = $3, body = $4, updated_at = NOW()
WHERE id = $1 AND author_id = $2 AND status = 'PENDING'
RETURNING %s
`, communityPostColumns), postID, authorID, strings.TrimSpace(title), body)

	post, err := scanCommunityPost(row)
	if err != nil {
		if errors.Is(err, ErrCommunityPostNotFound) {
			return CommunityPostRecord{}, false, nil
		}
		return CommunityPostRecord{}, false, err
	}

	return post, true, nil
}

func (r *CommunityPostRepo) Delete(ctx context.Context, postID int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if postID <= 0 {
		return fmt.Errorf("invalid community post id")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM community_posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("delete community post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCommunityPostNotFound
	}

	return nil
}

func scanCommunityPost(row pgx.Row) (CommunityPostRecord, error) {
	var post CommunityPostRecord
	err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Body,
		&post.Images,
		&post.Status,
		&post.ModeratedBy,
		&post.ModeratedAt,
		&post.ModerationNote,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CommunityPostRecord{}, ErrCommunityPostNotFound
		}
		return CommunityPostRecord{}, fmt.Errorf("scan community post: %w", err)
	}
	return post, nil
}
