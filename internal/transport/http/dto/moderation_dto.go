package dto

import "time"

type ApproveRequest struct {
	Note string `json:"note"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

type DecisionResponse struct {
	Kind        string    `json:"kind"`
	ContentID   int64     `json:"content_id"`
	AuthorID    int64     `json:"author_id"`
	Status      string    `json:"status"`
	ModeratedBy int64     `json:"moderated_by"`
	ModeratedAt time.Time `json:"moderated_at"`
}

type QueueItemResponse struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id"`
	Title     string    `json:"title"`
	ImageURLs []string  `json:"image_urls,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type QueueResponse struct {
	Kind  string              `json:"kind"`
	Items []QueueItemResponse `json:"items"`
}

type PendingCountsResponse struct {
	Posts          int64 `json:"posts"`
	Reviews        int64 `json:"reviews"`
	CommunityPosts int64 `json:"community_posts"`
	Reports        int64 `json:"reports"`
}

type BulkApproveResponse struct {
	Kind     string `json:"kind"`
	Approved int64  `json:"approved"`
}

type ProcessReportRequest struct {
	Action string `json:"action"`
	Notes  string `json:"notes"`
}
