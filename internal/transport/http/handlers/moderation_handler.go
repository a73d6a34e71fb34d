package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	authsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/auth"
	modsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/moderation"
	"github.com/vthuan-dev/girl-picks-sub004/internal/transport/http/dto"
	httperrors "github.com/vthuan-dev/girl-picks-sub004/internal/transport/http/errors"
)

type ModerationHandler struct {
	service *modsvc.Service
}

func NewModerationHandler(service *modsvc.Service) *ModerationHandler {
	return &ModerationHandler{service: service}
}

func (h *ModerationHandler) Pending(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	counts, err := h.service.Pending(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load pending counts")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.PendingCountsResponse{
		Posts:          counts.Posts,
		Reviews:        counts.Reviews,
		CommunityPosts: counts.CommunityPosts,
		Reports:        counts.Reports,
	})
}

func (h *ModerationHandler) Queue(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	kind, ok := contentKindFromURL(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "unknown content kind")
		return
	}

	items, err := h.service.Queue(r.Context(), kind, queryInt(r, "limit", 20))
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load moderation queue")
		return
	}

	res := dto.QueueResponse{Kind: string(kind), Items: make([]dto.QueueItemResponse, 0, len(items))}
	for _, item := range items {
		res.Items = append(res.Items, dto.QueueItemResponse{
			ID:        item.ID,
			AuthorID:  item.AuthorID,
			Title:     item.Title,
			ImageURLs: item.ImageURLs,
			CreatedAt: item.CreatedAt,
		})
	}

	httperrors.Write(w, http.StatusOK, res)
}

func (h *ModerationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	identity, kind, contentID, ok := h.decisionContext(w, r)
	if !ok {
		return
	}

	// The approval note is optional, so an empty body is accepted.
	var req dto.ApproveRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	decision, err := h.service.Approve(r.Context(), kind, contentID, identity.UserID, req.Note)
	if err != nil {
		handleDecisionError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, decisionResponse(decision))
}

func (h *ModerationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	identity, kind, contentID, ok := h.decisionContext(w, r)
	if !ok {
		return
	}

	var req dto.RejectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	decision, err := h.service.Reject(r.Context(), kind, contentID, identity.UserID, req.Reason)
	if err != nil {
		handleDecisionError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, decisionResponse(decision))
}

func (h *ModerationHandler) ApproveAll(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	kind, ok := contentKindFromURL(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "unknown content kind")
		return
	}

	approved, err := h.service.ApproveAllPending(r.Context(), kind)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to approve pending items")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.BulkApproveResponse{Kind: string(kind), Approved: approved})
}

func (h *ModerationHandler) Reports(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	reports, total, err := h.service.Reports(
		r.Context(),
		r.URL.Query().Get("status"),
		queryInt(r, "limit", 20),
		queryInt(r, "offset", 0),
	)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list reports")
		return
	}

	res := dto.ReportListResponse{Reports: make([]dto.ReportResponse, 0, len(reports)), Total: total}
	for _, report := range reports {
		res.Reports = append(res.Reports, reportResponse(report))
	}

	httperrors.Write(w, http.StatusOK, res)
}

func (h *ModerationHandler) Report(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	reportID, okID := idFromURL(r, "reportID")
	if !okID {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid report id")
		return
	}

	report, err := h.service.Report(r.Context(), reportID)
	if err != nil {
		if errors.Is(err, modsvc.ErrReportNotFound) {
			writeNotFound(w, "NOT_FOUND", "report not found")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to load report")
		return
	}

	httperrors.Write(w, http.StatusOK, reportResponse(report))
}

func (h *ModerationHandler) ProcessReport(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	reportID, okID := idFromURL(r, "reportID")
	if !okID {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid report id")
		return
	}

	var req dto.ProcessReportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	outcome, okOutcome := enums.ParseReportStatus(req.Action)
	if !okOutcome || !outcome.Terminal() {
		writeBadRequest(w, "VALIDATION_ERROR", "action must be RESOLVED or DISMISSED")
		return
	}

	report, err := h.service.ProcessReport(r.Context(), reportID, identity.UserID, outcome, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, modsvc.ErrReportNotFound):
			writeNotFound(w, "NOT_FOUND", "report not found")
		case errors.Is(err, modsvc.ErrAlreadyProcessed):
			writeConflict(w, "ALREADY_PROCESSED", "report was already processed")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to process report")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, reportResponse(report))
}

func (h *ModerationHandler) decisionContext(w http.ResponseWriter, r *http.Request) (authsvc.Identity, enums.ContentKind, int64, bool) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return authsvc.Identity{}, "", 0, false
	}
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return authsvc.Identity{}, "", 0, false
	}

	kind, okKind := contentKindFromURL(r)
	if !okKind {
		writeBadRequest(w, "VALIDATION_ERROR", "unknown content kind")
		return authsvc.Identity{}, "", 0, false
	}

	contentID, okID := idFromURL(r, "contentID")
	if !okID {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid content id")
		return authsvc.Identity{}, "", 0, false
	}

	return identity, kind, contentID, true
}

func handleDecisionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, modsvc.ErrReasonRequired):
		writeBadRequest(w, "VALIDATION_ERROR", "a rejection reason is required")
	case errors.Is(err, modsvc.ErrContentNotFound):
		writeNotFound(w, "NOT_FOUND", "content not found")
	case errors.Is(err, modsvc.ErrAlreadyModerated):
		writeConflict(w, "ALREADY_MODERATED", "content was already moderated")
	default:
		writeInternal(w, "INTERNAL_ERROR", "moderation failed")
	}
}

func decisionResponse(decision modsvc.Decision) dto.DecisionResponse {
	return dto.DecisionResponse{
		Kind:        string(decision.Kind),
		ContentID:   decision.ContentID,
		AuthorID:    decision.AuthorID,
		Status:      string(decision.Status),
		ModeratedBy: decision.ModeratedBy,
		ModeratedAt: decision.ModeratedAt,
	}
}

func contentKindFromURL(r *http.Request) (enums.ContentKind, bool) {
	return enums.ParseContentKind(chi.URLParam(r, "kind"))
}
