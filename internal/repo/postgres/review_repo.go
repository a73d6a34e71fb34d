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

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepo struct {
	pool *pgxpool.Pool
}

type ReviewRecord struct {
	ID             int64
	CustomerID     int64
	GirlID         int64
	Title          string
	Body           string
	Rating         int
	Images         []string
	Status         string
	ModeratedBy    *int64
	ModeratedAt    *time.Time
	ModerationNote *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewReviewRepo(pool *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{pool: pool}
}

const reviewColumns = `id, customer_id, girl_id, title, body, rating, images, status, moderated_by, moderated_at, moderation_note, created_at, updated_at`

func (r *ReviewRepo) Create(ctx context.Context, customerID, girlID int64, title, body string, rating int, images []string) (ReviewRecord, error) {
	if r.pool == nil {
		return ReviewRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if customerID <= 0 || girlID <= 0 {
		return ReviewRecord{}, fmt.Errorf("invalid review payload")
	}
	if rating < 1 || rating > 5 {
		return ReviewRecord{}, fmt.Errorf("rating must be between 1 and 5")
	}
	if images == nil {
		images = []string{}
	}

	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
INSERT INTO reviews (customer_id, girl_id, title, body, rating, images, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, 'PENDING', NOW(), NOW())
RETURNING %s
`, reviewColumns), customerID, girlID, strings.TrimSpace(title), body, rating, images)

	return scanReview(row)
}

func (r *ReviewRepo) GetByID(ctx context.Context, reviewID int64) (ReviewRecord, error) {
	if r.pool == nil {
		return ReviewRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if reviewID <= 0 {
		return ReviewRecord{}, fmt.Errorf("invalid review id")
	}

	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
SELECT %s
FROM reviews
WHERE id = $1
`, reviewColumns), reviewID)

	return scanReview(row)
}

type ReviewFilter struct {
	Status     string
	GirlID     int64
	CustomerID int64
	Limit      int
	Offset     int
}

func (r *ReviewRepo) List(ctx context.Context, filter ReviewFilter) ([]ReviewRecord, int64, error) {
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
	if filter.GirlID > 0 {
		args = append(args, filter.GirlID)
		conds = append(conds, fmt.Sprintf("girl_id = $%d", len(args)))
	}
	if filter.CustomerID > 0 {
		args = append(args, filter.CustomerID)
		conds = append(conds, fmt.Sprintf("customer_id = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM reviews %s`, where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
SELECT %s
FROM reviews
%s
ORDER BY created_at DESC, id DESC
LIMIT $%d OFFSET $%d
`, reviewColumns, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []ReviewRecord
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, total, nil
}

func (r *ReviewRepo) UpdateOwnPending(ctx context.Context, reviewID, customerID int64, title, body string, rating int) (ReviewRecord, bool, error) {
	if r.pool == nil {
		return ReviewRecord{}, false, fmt.Errorf("postgres pool is nil")
	}
	if reviewID <= 0 || customerID <= 0 {
		return ReviewRecord{}, false, fmt.Errorf("invalid review update payload")
	}
	if rating < 1 || rating > 5 {
		return ReviewRecord{}, false, fmt.Errorf("rating must be between 1 and 5")
	}

	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
UPDATE reviews
SET title = $3, body = $4, rating = $5, updated_at = NOW()
WHERE id = $1 AND customer_id = $2 AND status = 'PENDING'
RETURNING %s
`, reviewColumns), reviewID, customerID, strings.TrimSpace(title), body, rating)

	review, err := scanReview(row)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			return ReviewRecord{}, false, nil
		}
		return ReviewRecord{}, false, err
	}

	return review, true, nil
}

func (r *ReviewRepo) Delete(ctx context.Context, reviewID int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if reviewID <= 0 {
		return fmt.Errorf("invalid review id")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrReviewNotFound
	}

	return nil
}

func scanReview(row pgx.Row) (ReviewRecord, error) {
	var review ReviewRecord
	err := row.Scan(
		&review.ID,
		&review.CustomerID,
		&review.GirlID,
		&review.Title,
		&review.Body,
		&review.Rating,
		&review.Images,
		&review.Status,
		&review.ModeratedBy,
		&review.ModeratedAt,
		&review.ModerationNote,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ReviewRecord{}, ErrReviewNotFound
		}
		return ReviewRecord{}, fmt.Errorf("scan review: %w", err)
	}
	return review, nil
}
