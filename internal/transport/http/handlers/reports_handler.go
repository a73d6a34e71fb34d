package handlers

import (
	"errors"
	"net/http"

	pgrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/postgres"
	authsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/auth"
	reportsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/reports"
	"github.com/vthuan-dev/girl-picks-sub004/internal/transport/http/dto"
	httperrors "github.com/vthuan-dev/girl-picks-sub004/internal/transport/http/errors"
)

type ReportsHandler struct {
	service *reportsvc.Service
}

func NewReportsHandler(service *reportsvc.Service) *ReportsHandler {
	return &ReportsHandler{service: service}
}

func (h *ReportsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "REPORTS_SERVICE_UNAVAILABLE", "reports service is unavailable")
		return
	}

	var req dto.CreateReportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	report, retryAfter, err := h.service.File(r.Context(), reportsvc.FileParams{
		ReporterID:       identity.UserID,
		ReportedUserID:   req.ReportedUserID,
		ReportedPostID:   req.ReportedPostID,
		ReportedReviewID: req.ReportedReviewID,
		Reason:           req.Reason,
		Description:      req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, reportsvc.ErrTargetRequired):
			writeBadRequest(w, "VALIDATION_ERROR", "report needs a user, post or review target")
		case errors.Is(err, reportsvc.ErrInvalidReason):
			writeBadRequest(w, "VALIDATION_ERROR", "unknown report reason")
		case errors.Is(err, reportsvc.ErrSelfReport):
			writeBadRequest(w, "VALIDATION_ERROR", "cannot report yourself")
		case errors.Is(err, reportsvc.ErrTargetNotFound):
			writeNotFound(w, "NOT_FOUND", "report target not found")
		case errors.Is(err, reportsvc.ErrRateLimited):
			httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
				Code:          "RATE_LIMITED",
				Message:       "too many reports, slow down",
				RetryAfterSec: retryAfter,
			})
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to file report")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, reportResponse(report))
}

func (h *ReportsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "REPORTS_SERVICE_UNAVAILABLE", "reports service is unavailable")
		return
	}

	reports, err := h.service.Mine(r.Context(), identity.UserID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list reports")
		return
	}

	res := dto.ReportListResponse{Reports: make([]dto.ReportResponse, 0, len(reports)), Total: int64(len(reports))}
	for _, report := range reports {
		res.Reports = append(res.Reports, reportResponse(report))
	}

	httperrors.Write(w, http.StatusOK, res)
}

func reportResponse(report pgrepo.ReportRecord) dto.ReportResponse {
	return dto.ReportResponse{
		ID:               report.ID,
		ReporterID:       report.ReporterID,
		ReportedUserID:   report.ReportedUserID,
		ReportedPostID:   report.ReportedPostID,
		ReportedReviewID: report.ReportedReviewID,
		Reason:           report.Reason,
		Description:      report.Description,
		Status:           report.Status,
		ResolvedBy:       report.ResolvedBy,
		ResolvedAt:       report.ResolvedAt,
		ResolutionNotes:  report.ResolutionNotes,
		CreatedAt:        report.CreatedAt,
	}
}
