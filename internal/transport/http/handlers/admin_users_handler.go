package handlers

import (
	"errors"
	"net/http"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	pgrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/postgres"
	userssvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/users"
	"github.com/vthuan-dev/girl-picks-sub004/internal/transport/http/dto"
	httperrors "github.com/vthuan-dev/girl-picks-sub004/internal/transport/http/errors"
)

type AdminUsersHandler struct {
	service *userssvc.Service
}

func NewAdminUsersHandler(service *userssvc.Service) *AdminUsersHandler {
	return &AdminUsersHandler{service: service}
}

func (h *AdminUsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "USERS_SERVICE_UNAVAILABLE", "users service is unavailable")
		return
	}

	var req dto.CreateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	role, ok := enums.ParseRole(req.Role)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "unknown role")
		return
	}

	user, err := h.service.CreateAccount(r.Context(), req.Email, req.Password, req.FullName, role)
	if err != nil {
		switch {
		case errors.Is(err, userssvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, userssvc.ErrEmailTaken):
			writeConflict(w, "EMAIL_TAKEN", "email already registered")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to create account")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, userResponse(user))
}

func (h *AdminUsersHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "USERS_SERVICE_UNAVAILABLE", "users service is unavailable")
		return
	}

	users, total, err := h.service.List(
		r.Context(),
		r.URL.Query().Get("role"),
		queryInt(r, "limit", 20),
		queryInt(r, "offset", 0),
	)
	if err != nil {
		if errors.Is(err, userssvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "unknown role filter")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to list users")
		return
	}

	res := dto.UserListResponse{Users: make([]dto.UserResponse, 0, len(users)), Total: total}
	for _, user := range users {
		res.Users = append(res.Users, userResponse(user))
	}

	httperrors.Write(w, http.StatusOK, res)
}

func (h *AdminUsersHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "USERS_SERVICE_UNAVAILABLE", "users service is unavailable")
		return
	}

	userID, ok := idFromURL(r, "userID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	var req dto.SetActiveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.SetActive(r.Context(), userID, req.Active); err != nil {
		if errors.Is(err, userssvc.ErrNotFound) {
			writeNotFound(w, "NOT_FOUND", "user not found")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to update user")
		return
	}

	httperrors.Write(w, http.StatusOK, map[string]any{"ok": true})
}

func userResponse(user pgrepo.UserRecord) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
