package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	pgrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/postgres"
	authsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/auth"
	reviewsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/reviews"
	"github.com/vthuan-dev/girl-picks-sub004/internal/transport/http/dto"
	httperrors "github.com/vthuan-dev/girl-picks-sub004/internal/transport/http/errors"
)

type ReviewsHandler struct {
	service *reviewsvc.Service
}

func NewReviewsHandler(service *reviewsvc.Service) *ReviewsHandler {
	return &ReviewsHandler{service: service}
}

func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "REVIEWS_SERVICE_UNAVAILABLE", "reviews service is unavailable")
		return
	}

	var req dto.CreateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	review, err := h.service.Create(r.Context(), identity.UserID, req.GirlID, req.Title, req.Body, req.Rating, req.Images)
	if err != nil {
		switch {
		case errors.Is(err, reviewsvc.ErrInvalidRating):
			writeBadRequest(w, "VALIDATION_ERROR", "rating must be between 1 and 5")
		case errors.Is(err, reviewsvc.ErrGirlNotFound):
			writeNotFound(w, "NOT_FOUND", "girl profile not found")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to create review")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, reviewResponse(review))
}

func (h *ReviewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "REVIEWS_SERVICE_UNAVAILABLE", "reviews service is unavailable")
		return
	}

	reviewID, ok := idFromURL(r, "reviewID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid review id")
		return
	}

	viewerID, viewerRole := viewer(r)
	review, err := h.service.Get(r.Context(), viewerID, viewerRole, reviewID)
	if err != nil {
		if errors.Is(err, reviewsvc.ErrNotFound) {
			writeNotFound(w, "NOT_FOUND", "review not found")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to load review")
		return
	}

	httperrors.Write(w, http.StatusOK, reviewResponse(review))
}

func (h *ReviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "REVIEWS_SERVICE_UNAVAILABLE", "reviews service is unavailable")
		return
	}

	viewerID, viewerRole := viewer(r)
	filter := pgrepo.ReviewFilter{
		Status: r.URL.Query().Get("status"),
		Limit:  queryInt(r, "limit", 20),
		Offset: queryInt(r, "offset", 0),
	}
	if girl := r.URL.Query().Get("girl_id"); girl != "" {
		if id, err := strconv.ParseInt(girl, 10, 64); err == nil {
			filter.GirlID = id
		}
	}
	if customer := r.URL.Query().Get("customer_id"); customer != "" {
		if id, err := strconv.ParseInt(customer, 10, 64); err == nil {
			filter.CustomerID = id
		}
	}

	reviews, total, err := h.service.List(r.Context(), viewerID, viewerRole, filter)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list reviews")
		return
	}

	res := dto.ReviewListResponse{Reviews: make([]dto.ReviewResponse, 0, len(reviews)), Total: total}
	for _, review := range reviews {
		res.Reviews = append(res.Reviews, reviewResponse(review))
	}

	httperrors.Write(w, http.StatusOK, res)
}

func (h *ReviewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "REVIEWS_SERVICE_UNAVAILABLE", "reviews service is unavailable")
		return
	}

	reviewID, okID := idFromURL(r, "reviewID")
	if !okID {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid review id")
		return
	}

	var req dto.UpdateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	review, err := h.service.UpdateOwn(r.Context(), identity.UserID, reviewID, req.Title, req.Body, req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, reviewsvc.ErrInvalidRating):
			writeBadRequest(w, "VALIDATION_ERROR", "rating must be between 1 and 5")
		case errors.Is(err, reviewsvc.ErrNotFound):
			writeNotFound(w, "NOT_FOUND", "review not found")
		case errors.Is(err, reviewsvc.ErrNotOwner):
			writeForbidden(w, "FORBIDDEN", "review belongs to another user")
		case errors.Is(err, reviewsvc.ErrNotEditable):
			writeConflict(w, "ALREADY_MODERATED", "review can no longer be edited")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to update review")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, reviewResponse(review))
}

func (h *ReviewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "REVIEWS_SERVICE_UNAVAILABLE", "reviews service is unavailable")
		return
	}

	reviewID, okID := idFromURL(r, "reviewID")
	if !okID {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid review id")
		return
	}

	role, _ := enums.ParseRole(identity.Role)
	if err := h.service.Delete(r.Context(), identity.UserID, role, reviewID); err != nil {
		switch {
		case errors.Is(err, reviewsvc.ErrNotFound):
			writeNotFound(w, "NOT_FOUND", "review not found")
		case errors.Is(err, reviewsvc.ErrNotOwner):
			writeForbidden(w, "FORBIDDEN", "review belongs to another user")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to delete review")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func reviewResponse(review pgrepo.ReviewRecord) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:             review.ID,
		CustomerID:     review.CustomerID,
		GirlID:         review.GirlID,
		Title:          review.Title,
		Body:           review.Body,
		Rating:         review.Rating,
		Images:         review.Images,
		Status:         review.Status,
		ModerationNote: review.ModerationNote,
		ModeratedAt:    review.ModeratedAt,
		CreatedAt:      review.CreatedAt,
		UpdatedAt:      review.UpdatedAt,
	}
}
