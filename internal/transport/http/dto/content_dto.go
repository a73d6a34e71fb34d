package dto

import "time"

type CreatePostRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Images []string `json:"images"`
}

type StaffCreatePostRequest struct {
	AuthorID int64    `json:"author_id"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Images   []string `json:"images"`
}

type UpdatePostRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Images []string `json:"images"`
}

type PostResponse struct {
	ID             int64      `json:"id"`
	AuthorID       int64      `json:"author_id"`
	Title          string     `json:"title"`
	Body           string     `json:"body"`
	Images         []string   `json:"images"`
	Status         string     `json:"status"`
	ModerationNote *string    `json:"moderation_note,omitempty"`
	ModeratedAt    *time.Time `json:"moderated_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
	Total int64          `json:"total"`
}

type CreateReviewRequest struct {
	GirlID int64    `json:"girl_id"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Rating int      `json:"rating"`
	Images []string `json:"images"`
}

type UpdateReviewRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Rating int    `json:"rating"`
}

type ReviewResponse struct {
	ID             int64      `json:"id"`
	CustomerID     int64      `json:"customer_id"`
	GirlID         int64      `json:"girl_id"`
	Title          string     `json:"title"`
	Body           string     `json:"body"`
	Rating         int        `json:"rating"`
	Images         []string   `json:"images"`
	Status         string     `json:"status"`
	ModerationNote *string    `json:"moderation_note,omitempty"`
	ModeratedAt    *time.Time `json:"moderated_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
	Total   int64            `json:"total"`
}

type CreateCommunityPostRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Images []string `json:"images"`
}

type UpdateCommunityPostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type CommunityPostResponse struct {
	ID             int64      `json:"id"`
	AuthorID       int64      `json:"author_id"`
	Title          string     `json:"title"`
	Body           string     `json:"body"`
	Images         []string   `json:"images"`
	Status         string     `json:"status"`
	ModerationNote *string    `json:"moderation_note,omitempty"`
	ModeratedAt    *time.Time `json:"moderated_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type CommunityPostListResponse struct {
	Posts []CommunityPostResponse `json:"posts"`
	Total int64                   `json:"total"`
}
