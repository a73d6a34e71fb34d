package dto

import "time"

type CreateReportRequest struct {
	ReportedUserID   *int64 `json:"reported_user_id"`
	ReportedPostID   *int64 `json:"reported_post_id"`
	ReportedReviewID *int64 `json:"reported_review_id"`
	Reason           string `json:"reason"`
	Description      string `json:"description"`
}

type ReportResponse struct {
	ID               int64      `json:"id"`
	ReporterID       int64      `json:"reporter_id"`
	ReportedUserID   *int64     `json:"reported_user_id,omitempty"`
	ReportedPostID   *int64     `json:"reported_post_id,omitempty"`
	ReportedReviewID *int64     `json:"reported_review_id,omitempty"`
	Reason           string     `json:"reason"`
	Description      string     `json:"description"`
	Status           string     `json:"status"`
	ResolvedBy       *int64     `json:"resolved_by,omitempty"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
	ResolutionNotes  *string    `json:"resolution_notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type ReportListResponse struct {
	Reports []ReportResponse `json:"reports"`
	Total   int64            `json:"total"`
}
