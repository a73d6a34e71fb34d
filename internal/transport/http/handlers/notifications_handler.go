package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/auth"
	notifysvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/notifications"
	"github.com/vthuan-dev/girl-picks-sub004/internal/transport/http/dto"
	httperrors "github.com/vthuan-dev/girl-picks-sub004/internal/transport/http/errors"
)

type NotificationsHandler struct {
	service *notifysvc.Service
}

func NewNotificationsHandler(service *notifysvc.Service) *NotificationsHandler {
	return &NotificationsHandler{service: service}
}

func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "NOTIFICATIONS_SERVICE_UNAVAILABLE", "notifications service is unavailable")
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	items, err := h.service.List(r.Context(), identity.UserID, unreadOnly, queryInt(r, "limit", 50))
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list notifications")
		return
	}

	res := dto.NotificationListResponse{Notifications: make([]dto.NotificationResponse, 0, len(items))}
	for _, item := range items {
		res.Notifications = append(res.Notifications, dto.NotificationResponse{
			ID:        item.ID,
			Type:      item.Type,
			Message:   item.Message,
			Data:      item.Data,
			IsRead:    item.IsRead,
			CreatedAt: item.CreatedAt,
		})
	}

	httperrors.Write(w, http.StatusOK, res)
}

func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "NOTIFICATIONS_SERVICE_UNAVAILABLE", "notifications service is unavailable")
		return
	}

	notificationID, okID := idFromURL(r, "notificationID")
	if !okID {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid notification id")
		return
	}

	if err := h.service.MarkRead(r.Context(), notificationID, identity.UserID); err != nil {
		if errors.Is(err, notifysvc.ErrNotFound) {
			writeNotFound(w, "NOT_FOUND", "notification not found")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to mark notification read")
		return
	}

	httperrors.Write(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *NotificationsHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "NOTIFICATIONS_SERVICE_UNAVAILABLE", "notifications service is unavailable")
		return
	}

	updated, err := h.service.MarkAllRead(r.Context(), identity.UserID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to mark notifications read")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MarkAllReadResponse{Updated: updated})
}
