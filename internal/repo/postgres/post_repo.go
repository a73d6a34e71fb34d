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

var ErrPostNotFound = errors.New("post not found")

type PostRepo struct {
	pool *pgxpool.Pool
}

type PostRecord struct {
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

func NewPostRepo(pool *pgxpool.Pool) *PostRepo {
	return &PostRepo{pool: pool}
}

const postColumns = `id, author_id, title, body, images, status, moderated_by, moderated_at, moderation_note, created_at, updated_at`

func (r *PostRepo) Create(ctx context.Context, authorID int64, title, body string, images []string) (PostRecord, error) {
	if r.pool == nil {
		return PostRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if authorID <= 0 || strings.TrimSpace(title) == "" {
		return PostRecord{}, fmt.Errorf("invalid post payload")
	}
	if images == nil {
		images = []string{}
	}

	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
INSERT INTO posts (author_id, title, body, images, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, 'PENDING', NOW(), NOW())
RETURNING %s
`, postColumns), authorID, strings.TrimSpace(title), body, images)

	return scanPost(row)
}

func (r *PostRepo) GetByID(ctx context.Context, postID int64) (PostRecord, error) {
	if r.pool == nil {
		return PostRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if postID <= 0 {
		return PostRecord{}, fmt.Errorf("invalid post id")
	}

	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
SELECT %s
FROM posts
WHERE id = $1
`, postColumns), postID)

	return scanPost(row)
}

type PostFilter struct {
	Status   string
	AuthorID int64
	Limit    int
	Offset   int
}

func (r *PostRepo) List(ctx context.Context, filter PostFilter) ([]PostRecord, int64, error) {
	if r.pool == nil {
		return nil, 0, fmt.Errorf("postgres pool is nil")
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	var conds []string
	args := []any{}
	if strings.TrimSpace(filter.Status) != "" {
		args = append(args, strings.ToUpper(strings.TrimSpace(filter.Status)))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.AuthorID > 0 {
		args = append(args, filter.AuthorID)
		conds = append(conds, fmt.Sprintf("author_id = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM posts %s`, where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
SELECT %s
FROM posts
%s
ORDER BY created_at DESC, id DESC
LIMIT $%d OFFSET $%d
`, postColumns, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []PostRecord
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate post rows: %w", err)
	}

	return posts, total, nil
}

// UpdateOwnPending edits a post only while it still belongs to the author
// and has not been moderated. Zero rows affected means the precondition
// no longer holds.
func (r *PostRepo) UpdateOwnPending(ctx context.Context, postID, authorID int64, title, body string, images []string) (PostRecord, bool, error) {
	if r.pool == nil {
		return PostRecord{}, false, fmt.Errorf("postgres pool is nil")
	}
	if postID <= 0 || authorID <= 0 || strings.TrimSpace(title) == "" {
		return PostRecord{}, false, fmt.Errorf("invalid post update payload")
	}
	if images == nil {
		images = []string{}
	}

	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
UPDATE posts
SET title = $3, body = $4, images = $5, updated_at = NOW()
WHERE id = $1 AND author_id = $2 AND status = 'PENDING'
RETURNING %s
`, postColumns), postID, authorID, strings.TrimSpace(title), body, images)

	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return PostRecord{}, false, nil
		}
		return PostRecord{}, false, err
	}

	return post, true, nil
}

func (r *PostRepo) Delete(ctx context.Context, postID int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if postID <= 0 {
		return fmt.Errorf("invalid post id")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}

	return nil
}

func scanPost(row pgx.Row) (PostRecord, error) {
	var post PostRecord
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
			return PostRecord{}, ErrPostNotFound
		}
		return PostRecord{}, fmt.Errorf("scan post: %w", err)
	}
	return post, nil
}
