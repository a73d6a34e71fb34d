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

var ErrReportNotFound = errors.New("report not found")

type ReportRepo struct {
	pool *pgxpool.Pool
}

type ReportRecord struct {
	ID               int64
	ReporterID       int64
	ReportedUserID   *int64
	ReportedPostID   *int64
	ReportedReviewID *int64
	Reason           string
	Description      string
	Status           string
	ResolvedBy       *int64
	ResolvedAt       *time.Time
	ResolutionNotes  *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

const reportColumns = `id, reporter_id, reported_user_id, reported_post_id, reported_review_id, reason, description, status, resolved_by, resolved_at, resolution_notes, created_at, updated_at`

type CreateReportParams struct {
	ReporterID       int64
	ReportedUserID   *int64
	ReportedPostID   *int64
	ReportedReviewID *int64
	Reason           enums.ReportReason
	Description      string
}

func (r *ReportRepo) Create(ctx context.Context, params CreateReportParams) (ReportRecord, error) {
	if r.pool == nil {
		return ReportRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if params.ReporterID <= 0 {
		return ReportRecord{}, fmt.Errorf("invalid reporter id")
	}
	if params.ReportedUserID == nil && params.ReportedPostID == nil && params.ReportedReviewID == nil {
		return ReportRecord{}, fmt.Errorf("report target is required")
	}

	var report ReportRecord
	err := WithTx(ctx, r.pool, func(txCtx context.Context, tx pgx.Tx) error {
		row := tx.QueryRow(txCtx, fmt.Sprintf(`
INSERT INTO reports (
	reporter_id,
	reported_user_id,
	reported_post_id,
	reported_review_id,
	reason,
	description,
	status,
	created_at,
	updated_at
) VALUES ($1, $2, $3, $4, $5, $6, 'PENDING', NOW(), NOW())
RETURNING %s
`, reportColumns),
			params.ReporterID,
			params.ReportedUserID,
			params.ReportedPostID,
			params.ReportedReviewID,
			string(params.Reason),
			strings.TrimSpace(params.Description),
		)

		rec, err := scanReport(row)
		if err != nil {
			return err
		}
		if err := recordReportEventTx(txCtx, tx, rec.ID, rec.ReporterID, "FILED"); err != nil {
			return err
		}

		report = rec
		return nil
	})
	if err != nil {
		return ReportRecord{}, err
	}

	return report, nil
}

func (r *ReportRepo) GetByID(ctx context.Context, reportID int64) (ReportRecord, error) {
	if r.pool == nil {
		return ReportRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if reportID <= 0 {
		return ReportRecord{}, fmt.Errorf("invalid report id")
	}

	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
SELECT %s
FROM reports
WHERE id = $1
`, reportColumns), reportID)

	return scanReport(row)
}

func (r *ReportRepo) ListByReporter(ctx context.Context, reporterID int64) ([]ReportRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if reporterID <= 0 {
		return nil, fmt.Errorf("invalid reporter id")
	}

	return r.queryMany(ctx, fmt.Sprintf(`
SELECT %s
FROM reports
WHERE reporter_id = $1
ORDER BY created_at DESC, id DESC
`, reportColumns), reporterID)
}

func (r *ReportRepo) List(ctx context.Context, status string, limit, offset int) ([]ReportRecord, int64, error) {
	if r.pool == nil {
		return nil, 0, fmt.Errorf("postgres pool is nil")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where := ""
	args := []any{}
	if strings.TrimSpace(status) != "" {
		args = append(args, strings.ToUpper(strings.TrimSpace(status)))
		where = "WHERE status = $1"
	}

	var total int64
	if err := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM reports %s`, where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	args = append(args, limit, offset)
	reports, err := r.queryMany(ctx, fmt.Sprintf(`
SELECT %s
FROM reports
%s
ORDER BY created_at DESC, id DESC
LIMIT $%d OFFSET $%d
`, reportColumns, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// Process applies PENDING -> RESOLVED|DISMISSED with the same conditional
// write contract as content transitions: false means no PENDING row matched.
func (r *ReportRepo) Process(
	ctx context.Context,
	reportID int64,
	outcome enums.ReportStatus,
	moderatorID int64,
	notes string,
) (ReportRecord, bool, error) {
	if r.pool == nil {
		return ReportRecord{}, false, fmt.Errorf("postgres pool is nil")
	}
	if reportID <= 0 || moderatorID <= 0 {
		return ReportRecord{}, false, fmt.Errorf("invalid report process payload")
	}
	if !outcome.Terminal() {
		return ReportRecord{}, false, fmt.Errorf("report outcome %q is not terminal", outcome)
	}

	var report ReportRecord
	matched := false
	err := WithTx(ctx, r.pool, func(txCtx context.Context, tx pgx.Tx) error {
		row := tx.QueryRow(txCtx, fmt.Sprintf(`
UPDATE reports
SET
	status = $2,
	resolved_by = $3,
	resolved_at = NOW(),
	resolution_notes = NULLIF($4, ''),
	updated_at = NOW()
WHERE id = $1 AND status = 'PENDING'
RETURNING %s
`, reportColumns), reportID, string(outcome), moderatorID, strings.TrimSpace(notes))

		rec, err := scanReport(row)
		if err != nil {
			if errors.Is(err, ErrReportNotFound) {
				return nil
			}
			return err
		}
		if err := recordReportEventTx(txCtx, tx, rec.ID, moderatorID, string(outcome)); err != nil {
			return err
		}

		report = rec
		matched = true
		return nil
	})
	if err != nil {
		return ReportRecord{}, false, err
	}
	if !matched {
		return ReportRecord{}, false, nil
	}

	return report, true, nil
}

// recordReportEventTx appends an audit row inside the same transaction as the
// report write, so a report never exists without its FILED event and a
// terminal status never lands without the matching decision event.
func recordReportEventTx(ctx context.Context, tx pgx.Tx, reportID, actorID int64, event string) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO report_events (
	report_id,
	actor_id,
	event,
	created_at
) VALUES ($1, $2, $3, NOW())
`, reportID, actorID, event); err != nil {
		return fmt.Errorf("record report event: %w", err)
	}

	return nil
}

func (r *ReportRepo) CountPending(ctx context.Context) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int64
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*)
FROM reports
WHERE status = 'PENDING'
`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pending reports: %w", err)
	}

	return count, nil
}

func (r *ReportRepo) queryMany(ctx context.Context, query string, args ...any) ([]ReportRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []ReportRecord
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report rows: %w", err)
	}

	return reports, nil
}

func scanReport(row pgx.Row) (ReportRecord, error) {
	var report ReportRecord
	err := row.Scan(
		&report.ID,
		&report.ReporterID,
		&report.ReportedUserID,
		&report.ReportedPostID,
		&report.ReportedReviewID,
		&report.Reason,
		&report.Description,
		&report.Status,
		&report.ResolvedBy,
		&report.ResolvedAt,
		&report.ResolutionNotes,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ReportRecord{}, ErrReportNotFound
		}
		return ReportRecord{}, fmt.Errorf("scan report: %w", err)
	}
	return report, nil
}
