package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	pgrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/postgres"
	authsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/auth"
	communitysvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/community"
	"github.com/vthuan-dev/girl-picks-sub004/internal/transport/http/dto"
	httperrors "github.com/vthuan-dev/girl-picks-sub004/internal/transport/http/errors"
)

type CommunityHandler struct {
	service *communitysvc.Service
}

func NewCommunityHandler(service *communitysvc.Service) *CommunityHandler {
	return &CommunityHandler{service: service}
}

func (h *CommunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "COMMUNITY_SERVICE_UNAVAILABLE", "community service is unavailable")
		return
	}

	var req dto.CreateCommunityPostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	post, err := h.service.Create(r.Context(), identity.UserID, req.Title, req.Body, req.Images)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to create community post")
		return
	}

	httperrors.Write(w, http.StatusCreated, communityPostResponse(post))
}

func (h *CommunityHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "COMMUNITY_SERVICE_UNAVAILABLE", "community service is unavailable")
		return
	}

	postID, ok := idFromURL(r, "postID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid community post id")
		return
	}

	viewerID, viewerRole := viewer(r)
	post, err := h.service.Get(r.Context(), viewerID, viewerRole, postID)
	if err != nil {
		if errors.Is(err, communitysvc.ErrNotFound) {
			writeNotFound(w, "NOT_FOUND", "community post not found")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to load community post")
		return
	}

	httperrors.Write(w, http.StatusOK, communityPostResponse(post))
}

func (h *CommunityHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "COMMUNITY_SERVICE_UNAVAILABLE", "community service is unavailable")
		return
	}

	viewerID, viewerRole := viewer(r)

	var authorID int64
	if author := r.URL.Query().Get("author_id"); author != "" {
		if id, err := strconv.ParseInt(author, 10, 64); err == nil {
			authorID = id
		}
	}

	posts, total, err := h.service.List(
		r.Context(),
		viewerID,
		viewerRole,
		r.URL.Query().Get("status"),
		authorID,
		queryInt(r, "limit", 20),
		queryInt(r, "offset", 0),
	)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list community posts")
		return
	}

	res := dto.CommunityPostListResponse{Posts: make([]dto.CommunityPostResponse, 0, len(posts)), Total: total}
	for _, post := range posts {
		res.Posts = append(res.Posts, communityPostResponse(post))
	}

	httperrors.Write(w, http.StatusOK, res)
}

func (h *CommunityHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "COMMUNITY_SERVICE_UNAVAILABLE", "community service is unavailable")
		return
	}

	postID, okID := idFromURL(r, "postID")
	if !okID {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid community post id")
		return
	}

	var req dto.UpdateCommunityPostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	post, err := h.service.UpdateOwn(r.Context(), identity.UserID, postID, req.Title, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, communitysvc.ErrNotFound):
			writeNotFound(w, "NOT_FOUND", "community post not found")
		case errors.Is(err, communitysvc.ErrNotOwner):
			writeForbidden(w, "FORBIDDEN", "community post belongs to another user")
		case errors.Is(err, communitysvc.ErrNotEditable):
			writeConflict(w, "ALREADY_MODERATED", "community post can no longer be edited")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to update community post")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, communityPostResponse(post))
}

func (h *CommunityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "COMMUNITY_SERVICE_UNAVAILABLE", "community service is unavailable")
		return
	}

	postID, okID := idFromURL(r, "postID")
	if !okID {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid community post id")
		return
	}

	role, _ := enums.ParseRole(identity.Role)
	if err := h.service.Delete(r.Context(), identity.UserID, role, postID); err != nil {
		switch {
		case errors.Is(err, communitysvc.ErrNotFound):
			writeNotFound(w, "NOT_FOUND", "community post not found")
		case errors.Is(err, communitysvc.ErrNotOwner):
			writeForbidden(w, "FORBIDDEN", "community post belongs to another user")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to delete community post")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func communityPostResponse(post pgrepo.CommunityPostRecord) dto.CommunityPostResponse {
	return dto.CommunityPostResponse{
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
