package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	pgrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/postgres"
	authsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/auth"
	postsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/posts"
	"github.com/vthuan-dev/girl-picks-sub004/internal/transport/http/dto"
	httperrors "github.com/vthuan-dev/girl-picks-sub004/internal/transport/http/errors"
)

type PostsHandler struct {
	service *postsvc.Service
}

func NewPostsHandler(service *postsvc.Service) *PostsHandler {
	return &PostsHandler{service: service}
}

func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "POSTS_SERVICE_UNAVAILABLE", "posts service is unavailable")
		return
	}

	var req dto.CreatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "title is required")
		return
	}

	post, err := h.service.Create(r.Context(), identity.UserID, req.Title, req.Body, req.Images)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to create post")
		return
	}

	httperrors.Write(w, http.StatusCreated, postResponse(post))
}

func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "POSTS_SERVICE_UNAVAILABLE", "posts service is unavailable")
		return
	}

	postID, ok := idFromURL(r, "postID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid post id")
		return
	}

	viewerID, viewerRole := viewer(r)
	post, err := h.service.Get(r.Context(), viewerID, viewerRole, postID)
	if err != nil {
		if errors.Is(err, postsvc.ErrNotFound) {
			writeNotFound(w, "NOT_FOUND", "post not found")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to load post")
		return
	}

	httperrors.Write(w, http.StatusOK, postResponse(post))
}

func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "POSTS_SERVICE_UNAVAILABLE", "posts service is unavailable")
		return
	}

	viewerID, viewerRole := viewer(r)
	filter := pgrepo.PostFilter{
		Status: r.URL.Query().Get("status"),
		Limit:  queryInt(r, "limit", 20),
		Offset: queryInt(r, "offset", 0),
	}
	if author := r.URL.Query().Get("author_id"); author != "" {
		if id, err := strconv.ParseInt(author, 10, 64); err == nil {
			filter.AuthorID = id
		}
	}

	posts, total, err := h.service.List(r.Context(), viewerID, viewerRole, filter)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list posts")
		return
	}

	res := dto.PostListResponse{Posts: make([]dto.PostResponse, 0, len(posts)), Total: total}
	for _, post := range posts {
		res.Posts = append(res.Posts, postResponse(post))
	}

	httperrors.Write(w, http.StatusOK, res)
}

func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "POSTS_SERVICE_UNAVAILABLE", "posts service is unavailable")
		return
	}

	postID, okID := idFromURL(r, "postID")
	if !okID {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid post id")
		return
	}

	var req dto.UpdatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	post, err := h.service.UpdateOwn(r.Context(), identity.UserID, postID, req.Title, req.Body, req.Images)
	if err != nil {
		switch {
		case errors.Is(err, postsvc.ErrNotFound):
			writeNotFound(w, "NOT_FOUND", "post not found")
		case errors.Is(err, postsvc.ErrNotOwner):
			writeForbidden(w, "FORBIDDEN", "post belongs to another user")
		case errors.Is(err, postsvc.ErrNotEditable):
			writeConflict(w, "ALREADY_MODERATED", "post can no longer be edited")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to update post")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, postResponse(post))
}

func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "POSTS_SERVICE_UNAVAILABLE", "posts service is unavailable")
		return
	}

	postID, okID := idFromURL(r, "postID")
	if !okID {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid post id")
		return
	}

	role, _ := enums.ParseRole(identity.Role)
	if err := h.service.Delete(r.Context(), identity.UserID, role, postID); err != nil {
		switch {
		case errors.Is(err, postsvc.ErrNotFound):
			writeNotFound(w, "NOT_FOUND", "post not found")
		case errors.Is(err, postsvc.ErrNotOwner):
			writeForbidden(w, "FORBIDDEN", "post belongs to another user")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to delete post")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func postResponse(post pgrepo.PostRecord) dto.PostResponse {
	return dto.PostResponse{
		ID:             post.ID,
		AuthorID:       post.AuthorID,
		Title:          post.Title,
		Body:           post.Body,
		Images:         post.Images,
		Status:         post.Status,
		ModerationNote: post.ModerationNote,
		ModeratedAt:    post.ModeratedAt,
		CreatedAt:      post.CreatedAt,
		UpdatedAt:      post.UpdatedAt,
	}
}

// viewer resolves the optional identity on public endpoints. Anonymous
// callers get a zero user id and an empty role.
func viewer(r *http.Request) (int64, enums.Role) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		return 0, ""
	}
	role, _ := enums.ParseRole(identity.Role)
	return identity.UserID, role
}

func idFromURL(r *http.Request, param string) (int64, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
