package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/auth"
	userssvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/users"
	"github.com/vthuan-dev/girl-picks-sub004/internal/transport/http/dto"
	httperrors "github.com/vthuan-dev/girl-picks-sub004/internal/transport/http/errors"
)

type MeHandler struct {
	users *userssvc.Service
}

func NewMeHandler(users *userssvc.Service) *MeHandler {
	return &MeHandler{users: users}
}

func (h *MeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.users == nil {
		writeInternal(w, "USERS_SERVICE_UNAVAILABLE", "users service is unavailable")
		return
	}

	user, err := h.users.Get(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, userssvc.ErrNotFound) {
			writeUnauthorized(w, "UNAUTHORIZED", "account no longer exists")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to load account")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.AuthMeResponse{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	})
}
