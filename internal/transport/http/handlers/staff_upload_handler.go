package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	postsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/posts"
	userssvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/users"
	"github.com/vthuan-dev/girl-picks-sub004/internal/transport/http/dto"
	httperrors "github.com/vthuan-dev/girl-picks-sub004/internal/transport/http/errors"
)

// StaffUploadHandler lets upload staff publish posts on behalf of girl
// accounts. Created posts still enter the moderation queue as PENDING.
type StaffUploadHandler struct {
	posts *postsvc.Service
	users *userssvc.Service
}

func NewStaffUploadHandler(posts *postsvc.Service, users *userssvc.Service) *StaffUploadHandler {
	return &StaffUploadHandler{posts: posts, users: users}
}

func (h *StaffUploadHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	if h.posts == nil || h.users == nil {
		writeInternal(w, "UPLOAD_SERVICE_UNAVAILABLE", "upload service is unavailable")
		return
	}

	var req dto.StaffCreatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if req.AuthorID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "author_id is required")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "title is required")
		return
	}

	author, err := h.users.Get(r.Context(), req.AuthorID)
	if err != nil {
		if errors.Is(err, userssvc.ErrNotFound) {
			writeNotFound(w, "AUTHOR_NOT_FOUND", "author account does not exist")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to resolve author")
		return
	}
	if author.Role != string(enums.RoleGirl) {
		writeBadRequest(w, "VALIDATION_ERROR", "author must be a girl account")
		return
	}
	if !author.IsActive {
		writeBadRequest(w, "VALIDATION_ERROR", "author account is disabled")
		return
	}

	post, err := h.posts.Create(r.Context(), req.AuthorID, req.Title, req.Body, req.Images)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to create post")
		return
	}

	httperrors.Write(w, http.StatusCreated, postResponse(post))
}
