package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	pgrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/postgres"
)

type stubContentStore struct {
	transitionRecord pgrepo.DecisionRecord
	transitionOK     bool
	transitionErr    error
	lastTarget       enums.ContentStatus
	lastNote         string

	state    pgrepo.ContentState
	stateErr error

	bulkCount int64
	pending   []pgrepo.QueueItemRecord
}

func (s *stubContentStore) Transition(_ context.Context, _ enums.ContentKind, _ int64, target enums.ContentStatus, _ int64, note string) (pgrepo.DecisionRecord, bool, error) {
	s.lastTarget = target
	s.lastNote = note
	return s.transitionRecord, s.transitionOK, s.transitionErr
}

func (s *stubContentStore) GetState(_ context.Context, _ enums.ContentKind, _ int64) (pgrepo.ContentState, error) {
	return s.state, s.stateErr
}

func (s *stubContentStore) ApproveAllPending(_ context.Context, _ enums.ContentKind) (int64, error) {
	return s.bulkCount, nil
}

func (s *stubContentStore) CountPending(_ context.Context, _ enums.ContentKind) (int64, error) {
	return int64(len(s.pending)), nil
}

func (s *stubContentStore) ListPending(_ context.Context, _ enums.ContentKind, _ int) ([]pgrepo.QueueItemRecord, error) {
	return s.pending, nil
}

type stubReportStore struct {
	processRecord pgrepo.ReportRecord
	processOK     bool
	existing      pgrepo.ReportRecord
	getErr        error
	lastOutcome   enums.ReportStatus
}

func (s *stubReportStore) GetByID(_ context.Context, _ int64) (pgrepo.ReportRecord, error) {
	return s.existing, s.getErr
}

func (s *stubReportStore) Process(_ context.Context, _ int64, outcome enums.ReportStatus, _ int64, _ string) (pgrepo.ReportRecord, bool, error) {
	s.lastOutcome = outcome
	return s.processRecord, s.processOK, nil
}

func (s *stubReportStore) List(_ context.Context, _ string, _, _ int) ([]pgrepo.ReportRecord, int64, error) {
	return nil, 0, nil
}

func (s *stubReportStore) CountPending(_ context.Context) (int64, error) {
	return 0, nil
}

type recordedNotification struct {
	userID  int64
	kind    enums.NotificationType
	message string
	data    map[string]any
}

type stubNotifier struct {
	sent []recordedNotification
	err  error
}

func (s *stubNotifier) Notify(_ context.Context, userID int64, kind enums.NotificationType, message string, data map[string]any) error {
	s.sent = append(s.sent, recordedNotification{userID: userID, kind: kind, message: message, data: data})
	return s.err
}

func approvedRecord() pgrepo.DecisionRecord {
	return pgrepo.DecisionRecord{
		ID:          10,
		AuthorID:    42,
		Status:      "APPROVED",
		ModeratedBy: 1,
		ModeratedAt: time.Now(),
	}
}

func TestApproveNotifiesAuthor(t *testing.T) {
	store := &stubContentStore{transitionRecord: approvedRecord(), transitionOK: true}
	notifier := &stubNotifier{}
	svc := NewService(store, nil, notifier, nil, nil)

	decision, err := svc.Approve(context.Background(), enums.ContentKindPost, 10, 1, "looks good")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Status != enums.ContentStatusApproved {
		t.Fatalf("unexpected status: %s", decision.Status)
	}
	if store.lastTarget != enums.ContentStatusApproved {
		t.Fatalf("store received target %s", store.lastTarget)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.sent))
	}
	sent := notifier.sent[0]
	if sent.userID != 42 || sent.kind != enums.NotificationPostApproved {
		t.Fatalf("unexpected notification: %+v", sent)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	svc := NewService(&stubContentStore{}, nil, nil, nil, nil)

	_, err := svc.Reject(context.Background(), enums.ContentKindReview, 10, 1, "   ")
	if !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}
}

func TestRejectNotificationCarriesReason(t *testing.T) {
	record := approvedRecord()
	record.Status = "REJECTED"
	store := &stubContentStore{transitionRecord: record, transitionOK: true}
	notifier := &stubNotifier{}
	svc := NewService(store, nil, notifier, nil, nil)

	if _, err := svc.Reject(context.Background(), enums.ContentKindReview, 10, 1, "blurry photos"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.sent))
	}
	sent := notifier.sent[0]
	if sent.kind != enums.NotificationReviewRejected {
		t.Fatalf("unexpected kind: %s", sent.kind)
	}
	if sent.data["note"] != "blurry photos" {
		t.Fatalf("reason missing from notification data: %+v", sent.data)
	}
}

func TestApproveMissingContent(t *testing.T) {
	store := &stubContentStore{transitionOK: false, stateErr: pgrepo.ErrContentNotFound}
	svc := NewService(store, nil, nil, nil, nil)

	_, err := svc.Approve(context.Background(), enums.ContentKindPost, 99, 1, "")
	if !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}

func TestApproveAlreadyModerated(t *testing.T) {
	store := &stubContentStore{
		transitionOK: false,
		state:        pgrepo.ContentState{ID: 10, AuthorID: 42, Status: "REJECTED"},
	}
	svc := NewService(store, nil, nil, nil, nil)

	_, err := svc.Approve(context.Background(), enums.ContentKindPost, 10, 1, "")
	if !errors.Is(err, ErrAlreadyModerated) {
		t.Fatalf("expected ErrAlreadyModerated, got %v", err)
	}
}

func TestNotificationFailureDoesNotFailDecision(t *testing.T) {
	store := &stubContentStore{transitionRecord: approvedRecord(), transitionOK: true}
	notifier := &stubNotifier{err: errors.New("smtp down")}
	svc := NewService(store, nil, notifier, nil, nil)

	if _, err := svc.Approve(context.Background(), enums.ContentKindPost, 10, 1, ""); err != nil {
		t.Fatalf("decision must survive notification failure, got %v", err)
	}
}

func TestProcessReportOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		outcome  enums.ReportStatus
		wantKind enums.NotificationType
	}{
		{name: "resolved", outcome: enums.ReportStatusResolved, wantKind: enums.NotificationReportResolved},
		{name: "dismissed", outcome: enums.ReportStatusDismissed, wantKind: enums.NotificationReportDismissed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports := &stubReportStore{
				processRecord: pgrepo.ReportRecord{ID: 5, ReporterID: 7, Status: string(tt.outcome)},
				processOK:     true,
			}
			notifier := &stubNotifier{}
			svc := NewService(nil, reports, notifier, nil, nil)

			report, err := svc.ProcessReport(context.Background(), 5, 1, tt.outcome, "checked")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if report.ID != 5 {
				t.Fatalf("unexpected report: %+v", report)
			}
			if len(notifier.sent) != 1 || notifier.sent[0].kind != tt.wantKind {
				t.Fatalf("unexpected notifications: %+v", notifier.sent)
			}
			if notifier.sent[0].userID != 7 {
				t.Fatalf("notification went to user %d, want reporter 7", notifier.sent[0].userID)
			}
		})
	}
}

func TestProcessReportRejectsNonTerminalOutcome(t *testing.T) {
	svc := NewService(nil, &stubReportStore{}, nil, nil, nil)

	if _, err := svc.ProcessReport(context.Background(), 5, 1, enums.ReportStatusPending, ""); err == nil {
		t.Fatal("expected error for PENDING outcome")
	}
}

func TestProcessReportAlreadyProcessed(t *testing.T) {
	reports := &stubReportStore{
		processOK: false,
		existing:  pgrepo.ReportRecord{ID: 5, Status: "RESOLVED"},
	}
	svc := NewService(nil, reports, nil, nil, nil)

	_, err := svc.ProcessReport(context.Background(), 5, 1, enums.ReportStatusDismissed, "")
	if !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}
}

func TestProcessReportMissing(t *testing.T) {
	reports := &stubReportStore{processOK: false, getErr: pgrepo.ErrReportNotFound}
	svc := NewService(nil, reports, nil, nil, nil)

	_, err := svc.ProcessReport(context.Background(), 99, 1, enums.ReportStatusResolved, "")
	if !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}

func TestApproveAllPendingSkipsNotifications(t *testing.T) {
	store := &stubContentStore{bulkCount: 17}
	notifier := &stubNotifier{}
	svc := NewService(store, nil, notifier, nil, nil)

	count, err := svc.ApproveAllPending(context.Background(), enums.ContentKindCommunityPost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 17 {
		t.Fatalf("expected 17, got %d", count)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("bulk approval must not notify, sent %d", len(notifier.sent))
	}
}

func TestQueueWithoutSigner(t *testing.T) {
	store := &stubContentStore{pending: []pgrepo.QueueItemRecord{
		{ID: 1, AuthorID: 2, Title: "first", Images: []string{"k1", "k2"}},
	}}
	svc := NewService(store, nil, nil, nil, nil)

	items, err := svc.Queue(context.Background(), enums.ContentKindPost, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if len(items[0].ImageURLs) != 0 {
		t.Fatalf("expected no signed urls without storage, got %v", items[0].ImageURLs)
	}
}

type stubSigner struct{}

func (stubSigner) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://cdn.test/" + key, nil
}

func TestQueueSignsImageKeys(t *testing.T) {
	store := &stubContentStore{pending: []pgrepo.QueueItemRecord{
		{ID: 1, AuthorID: 2, Title: "first", Images: []string{"k1", ""}},
	}}
	svc := NewService(store, nil, nil, stubSigner{}, nil)

	items, err := svc.Queue(context.Background(), enums.ContentKindPost, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items[0].ImageURLs) != 1 || items[0].ImageURLs[0] != "https://cdn.test/k1" {
		t.Fatalf("unexpected urls: %v", items[0].ImageURLs)
	}
}
