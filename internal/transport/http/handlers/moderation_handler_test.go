package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	pgrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/postgres"
	authsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/auth"
	modsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/moderation"
)

type fakeContentStore struct {
	transitionOK bool
	record       pgrepo.DecisionRecord
	state        pgrepo.ContentState
	stateErr     error
}

func (f *fakeContentStore) Transition(_ context.Context, _ enums.ContentKind, _ int64, _ enums.ContentStatus, _ int64, _ string) (pgrepo.DecisionRecord, bool, error) {
	return f.record, f.transitionOK, nil
}

func (f *fakeContentStore) GetState(_ context.Context, _ enums.ContentKind, _ int64) (pgrepo.ContentState, error) {
	return f.state, f.stateErr
}

func (f *fakeContentStore) ApproveAllPending(_ context.Context, _ enums.ContentKind) (int64, error) {
	return 3, nil
}

func (f *fakeContentStore) CountPending(_ context.Context, _ enums.ContentKind) (int64, error) {
	return 0, nil
}

func (f *fakeContentStore) ListPending(_ context.Context, _ enums.ContentKind, _ int) ([]pgrepo.QueueItemRecord, error) {
	return nil, nil
}

func newModerationService(store *fakeContentStore) *modsvc.Service {
	return modsvc.NewService(store, nil, nil, nil, nil)
}

func performDecisionRequest(t *testing.T, h *ModerationHandler, method, kind, contentID string, body any, handlerFn http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, "/admin/moderation/"+kind+"/"+contentID, &buf)
	req = req.WithContext(authsvc.WithIdentity(req.Context(), authsvc.Identity{
		UserID: 1,
		SID:    "sid-1",
		Role:   "ADMIN",
	}))

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("kind", kind)
	routeCtx.URLParams.Add("contentID", contentID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rec := httptest.NewRecorder()
	handlerFn(rec, req)
	return rec
}

func TestApproveHappyPath(t *testing.T) {
	store := &fakeContentStore{
		transitionOK: true,
		record: pgrepo.DecisionRecord{
			ID:          10,
			AuthorID:    42,
			Status:      "APPROVED",
			ModeratedBy: 1,
			ModeratedAt: time.Now(),
		},
	}
	h := NewModerationHandler(newModerationService(store))

	rec := performDecisionRequest(t, h, http.MethodPost, "post", "10", map[string]any{"note": "ok"}, h.Approve)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var payload struct {
		Kind        string `json:"kind"`
		ContentID   int64  `json:"content_id"`
		Status      string `json:"status"`
		ModeratedBy int64  `json:"moderated_by"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status != "APPROVED" || payload.ContentID != 10 || payload.ModeratedBy != 1 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestApproveAcceptsEmptyBody(t *testing.T) {
	store := &fakeContentStore{
		transitionOK: true,
		record:       pgrepo.DecisionRecord{ID: 10, AuthorID: 42, Status: "APPROVED", ModeratedBy: 1, ModeratedAt: time.Now()},
	}
	h := NewModerationHandler(newModerationService(store))

	rec := performDecisionRequest(t, h, http.MethodPost, "post", "10", nil, h.Approve)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestApproveAlreadyModeratedConflict(t *testing.T) {
	store := &fakeContentStore{
		transitionOK: false,
		state:        pgrepo.ContentState{ID: 10, AuthorID: 42, Status: "REJECTED"},
	}
	h := NewModerationHandler(newModerationService(store))

	rec := performDecisionRequest(t, h, http.MethodPost, "post", "10", nil, h.Approve)
	if rec.Code != http.StatusConflict {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusConflict)
	}

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Code != "ALREADY_MODERATED" {
		t.Fatalf("unexpected error code: %q", payload.Code)
	}
}

func TestApproveMissingContentNotFound(t *testing.T) {
	store := &fakeContentStore{
		transitionOK: false,
		stateErr:     pgrepo.ErrContentNotFound,
	}
	h := NewModerationHandler(newModerationService(store))

	rec := performDecisionRequest(t, h, http.MethodPost, "post", "99", nil, h.Approve)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	h := NewModerationHandler(newModerationService(&fakeContentStore{}))

	rec := performDecisionRequest(t, h, http.MethodPost, "review", "10", map[string]any{"reason": ""}, h.Reject)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestDecisionRejectsUnknownKind(t *testing.T) {
	h := NewModerationHandler(newModerationService(&fakeContentStore{}))

	rec := performDecisionRequest(t, h, http.MethodPost, "profile", "10", nil, h.Approve)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestApproveWithoutIdentityUnauthorized(t *testing.T) {
	h := NewModerationHandler(newModerationService(&fakeContentStore{}))

	req := httptest.NewRequest(http.MethodPost, "/admin/moderation/post/10", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("kind", "post")
	routeCtx.URLParams.Add("contentID", "10")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rec := httptest.NewRecorder()
	h.Approve(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestApproveAllReturnsCount(t *testing.T) {
	h := NewModerationHandler(newModerationService(&fakeContentStore{}))

	rec := performDecisionRequest(t, h, http.MethodPost, "community_post", "0", nil, func(w http.ResponseWriter, r *http.Request) {
		h.ApproveAll(w, r)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Kind     string `json:"kind"`
		Approved int64  `json:"approved"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Kind != "community_post" || payload.Approved != 3 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}
