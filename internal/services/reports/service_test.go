package reports

import (
	"context"
	"errors"
	"testing"

	pgrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/postgres"
)

type stubStore struct {
	created *pgrepo.CreateReportParams
}

func (s *stubStore) Create(_ context.Context, params pgrepo.CreateReportParams) (pgrepo.ReportRecord, error) {
	s.created = &params
	return pgrepo.ReportRecord{ID: 1, ReporterID: params.ReporterID, Status: "PENDING"}, nil
}

func (s *stubStore) GetByID(_ context.Context, _ int64) (pgrepo.ReportRecord, error) {
	return pgrepo.ReportRecord{}, pgrepo.ErrReportNotFound
}

func (s *stubStore) ListByReporter(_ context.Context, _ int64) ([]pgrepo.ReportRecord, error) {
	return nil, nil
}

type stubUsers struct{ err error }

func (s *stubUsers) GetByID(_ context.Context, _ int64) (pgrepo.UserRecord, error) {
	return pgrepo.UserRecord{ID: 7, Role: "GIRL"}, s.err
}

type stubPosts struct{ err error }

func (s *stubPosts) GetByID(_ context.Context, _ int64) (pgrepo.PostRecord, error) {
	return pgrepo.PostRecord{ID: 5}, s.err
}

type stubReviews struct{ err error }

func (s *stubReviews) GetByID(_ context.Context, _ int64) (pgrepo.ReviewRecord, error) {
	return pgrepo.ReviewRecord{ID: 6}, s.err
}

type stubLimiter struct {
	retryAfter int64
	allowed    bool
}

func (s *stubLimiter) AllowReport(_ context.Context, _ int64) (int64, bool, error) {
	return s.retryAfter, s.allowed, nil
}

func newTestService(store *stubStore) *Service {
	return NewService(store, &stubUsers{}, &stubPosts{}, &stubReviews{}, &stubLimiter{allowed: true})
}

func ptr(v int64) *int64 { return &v }

func TestFileRequiresTarget(t *testing.T) {
	svc := newTestService(&stubStore{})

	_, _, err := svc.File(context.Background(), FileParams{ReporterID: 3, Reason: "SPAM"})
	if !errors.Is(err, ErrTargetRequired) {
		t.Fatalf("got %v, want ErrTargetRequired", err)
	}
}

func TestFileRejectsUnknownReason(t *testing.T) {
	svc := newTestService(&stubStore{})

	_, _, err := svc.File(context.Background(), FileParams{ReporterID: 3, ReportedUserID: ptr(7), Reason: "BORING"})
	if !errors.Is(err, ErrInvalidReason) {
		t.Fatalf("got %v, want ErrInvalidReason", err)
	}
}

func TestFileRejectsSelfReport(t *testing.T) {
	svc := newTestService(&stubStore{})

	_, _, err := svc.File(context.Background(), FileParams{ReporterID: 3, ReportedUserID: ptr(3), Reason: "SPAM"})
	if !errors.Is(err, ErrSelfReport) {
		t.Fatalf("got %v, want ErrSelfReport", err)
	}
}

func TestFileChecksTargetsExist(t *testing.T) {
	t.Run("missing user", func(t *testing.T) {
		svc := NewService(&stubStore{}, &stubUsers{err: pgrepo.ErrUserNotFound}, &stubPosts{}, &stubReviews{}, &stubLimiter{allowed: true})
		_, _, err := svc.File(context.Background(), FileParams{ReporterID: 3, ReportedUserID: ptr(99), Reason: "FAKE"})
		if !errors.Is(err, ErrTargetNotFound) {
			t.Fatalf("got %v, want ErrTargetNotFound", err)
		}
	})

	t.Run("missing post", func(t *testing.T) {
		svc := NewService(&stubStore{}, &stubUsers{}, &stubPosts{err: pgrepo.ErrPostNotFound}, &stubReviews{}, &stubLimiter{allowed: true})
		_, _, err := svc.File(context.Background(), FileParams{ReporterID: 3, ReportedPostID: ptr(99), Reason: "SPAM"})
		if !errors.Is(err, ErrTargetNotFound) {
			t.Fatalf("got %v, want ErrTargetNotFound", err)
		}
	})

	t.Run("missing review", func(t *testing.T) {
		svc := NewService(&stubStore{}, &stubUsers{}, &stubPosts{}, &stubReviews{err: pgrepo.ErrReviewNotFound}, &stubLimiter{allowed: true})
		_, _, err := svc.File(context.Background(), FileParams{ReporterID: 3, ReportedReviewID: ptr(99), Reason: "SPAM"})
		if !errors.Is(err, ErrTargetNotFound) {
			t.Fatalf("got %v, want ErrTargetNotFound", err)
		}
	})
}

func TestFileRateLimited(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store, &stubUsers{}, &stubPosts{}, &stubReviews{}, &stubLimiter{retryAfter: 42, allowed: false})

	_, retryAfter, err := svc.File(context.Background(), FileParams{ReporterID: 3, ReportedUserID: ptr(7), Reason: "SPAM"})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("got %v, want ErrRateLimited", err)
	}
	if retryAfter != 42 {
		t.Fatalf("got retry_after %d, want 42", retryAfter)
	}
	if store.created != nil {
		t.Fatal("limited report must not be stored")
	}
}

func TestFileNormalizesReason(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store, &stubUsers{}, &stubPosts{}, &stubReviews{}, &stubLimiter{allowed: true})

	report, _, err := svc.File(context.Background(), FileParams{
		ReporterID:     3,
		ReportedUserID: ptr(7),
		Reason:         " spam ",
		Description:    "  repeated ads  ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Status != "PENDING" {
		t.Fatalf("new report must start PENDING, got %s", report.Status)
	}
	if store.created.Reason != "SPAM" {
		t.Fatalf("reason not normalized: %q", store.created.Reason)
	}
	if store.created.Description != "repeated ads" {
		t.Fatalf("description not trimmed: %q", store.created.Description)
	}
}
