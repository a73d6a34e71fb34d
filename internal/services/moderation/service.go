package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	pgrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/postgres"
)

const signedURLTTL = 5 * time.Minute

var (
	ErrContentNotFound  = errors.New("content not found")
	ErrAlreadyModerated = errors.New("content was already moderated")
	ErrReportNotFound   = errors.New("report not found")
	ErrAlreadyProcessed = errors.New("report was already processed")
	ErrReasonRequired   = errors.New("a rejection reason is required")
)

type ContentStore interface {
	Transition(ctx context.Context, kind enums.ContentKind, contentID int64, target enums.ContentStatus, moderatorID int64, note string) (pgrepo.DecisionRecord, bool, error)
	GetState(ctx context.Context, kind enums.ContentKind, contentID int64) (pgrepo.ContentState, error)
	ApproveAllPending(ctx context.Context, kind enums.ContentKind) (int64, error)
	CountPending(ctx context.Context, kind enums.ContentKind) (int64, error)
	ListPending(ctx context.Context, kind enums.ContentKind, limit int) ([]pgrepo.QueueItemRecord, error)
}

type ReportStore interface {
	GetByID(ctx context.Context, reportID int64) (pgrepo.ReportRecord, error)
	Process(ctx context.Context, reportID int64, outcome enums.ReportStatus, moderatorID int64, notes string) (pgrepo.ReportRecord, bool, error)
	List(ctx context.Context, status string, limit, offset int) ([]pgrepo.ReportRecord, int64, error)
	CountPending(ctx context.Context) (int64, error)
}

type Notifier interface {
	Notify(ctx context.Context, userID int64, kind enums.NotificationType, message string, data map[string]any) error
}

type URLSigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Service struct {
	contentStore ContentStore
	reportStore  ReportStore
	notifier     Notifier
	signer       URLSigner
	logger       *zap.Logger
}

type Decision struct {
	Kind        enums.ContentKind
	ContentID   int64
	AuthorID    int64
	Status      enums.ContentStatus
	ModeratedBy int64
	ModeratedAt time.Time
}

type QueueItem struct {
	ID        int64
	AuthorID  int64
	Title     string
	ImageURLs []string
	CreatedAt time.Time
}

type PendingCounts struct {
	Posts          int64
	Reviews        int64
	CommunityPosts int64
	Reports        int64
}

func NewService(contentStore ContentStore, reportStore ReportStore, notifier Notifier, signer URLSigner, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		contentStore: contentStore,
		reportStore:  reportStore,
		notifier:     notifier,
		signer:       signer,
		logger:       logger,
	}
}

// Approve moves one PENDING entity to APPROVED. The note is optional.
func (s *Service) Approve(ctx context.Context, kind enums.ContentKind, contentID, moderatorID int64, note string) (Decision, error) {
	return s.decide(ctx, kind, contentID, moderatorID, enums.ContentStatusApproved, note)
}

// Reject moves one PENDING entity to REJECTED. The author is always told
// why, so the reason cannot be empty.
func (s *Service) Reject(ctx context.Context, kind enums.ContentKind, contentID, moderatorID int64, reason string) (Decision, error) {
	if strings.TrimSpace(reason) == "" {
		return Decision{}, ErrReasonRequired
	}
	return s.decide(ctx, kind, contentID, moderatorID, enums.ContentStatusRejected, reason)
}

func (s *Service) decide(ctx context.Context, kind enums.ContentKind, contentID, moderatorID int64, target enums.ContentStatus, note string) (Decision, error) {
	if s.contentStore == nil {
		return Decision{}, fmt.Errorf("moderation service dependencies are not configured")
	}
	if contentID <= 0 || moderatorID <= 0 {
		return Decision{}, fmt.Errorf("invalid moderation payload")
	}

	record, ok, err := s.contentStore.Transition(ctx, kind, contentID, target, moderatorID, note)
	if err != nil {
		return Decision{}, err
	}
	if !ok {
		// Zero rows matched the conditional update: the entity is either
		// gone or no longer PENDING. A second read tells the two apart.
		state, stateErr := s.contentStore.GetState(ctx, kind, contentID)
		if stateErr != nil {
			if errors.Is(stateErr, pgrepo.ErrContentNotFound) {
				return Decision{}, ErrContentNotFound
			}
			return Decision{}, stateErr
		}
		return Decision{}, fmt.Errorf("%w: status is %s", ErrAlreadyModerated, state.Status)
	}

	decision := Decision{
		Kind:        kind,
		ContentID:   record.ID,
		AuthorID:    record.AuthorID,
		Status:      target,
		ModeratedBy: record.ModeratedBy,
		ModeratedAt: record.ModeratedAt,
	}

	s.notifyDecision(ctx, decision, note)

	return decision, nil
}

// notifyDecision is fire-and-forget: the moderation decision is already
// committed, so a notification failure is logged and swallowed.
func (s *Service) notifyDecision(ctx context.Context, decision Decision, note string) {
	if s.notifier == nil {
		return
	}

	kind, message := decisionNotification(decision.Kind, decision.Status, note)
	if kind == "" {
		return
	}

	data := map[string]any{
		"content_kind": string(decision.Kind),
		"content_id":   decision.ContentID,
	}
	if strings.TrimSpace(note) != "" {
		data["note"] = strings.TrimSpace(note)
	}

	if err := s.notifier.Notify(ctx, decision.AuthorID, kind, message, data); err != nil {
		s.logger.Warn("moderation notification failed",
			zap.String("content_kind", string(decision.Kind)),
			zap.Int64("content_id", decision.ContentID),
			zap.Int64("author_id", decision.AuthorID),
			zap.Error(err),
		)
	}
}

func decisionNotification(kind enums.ContentKind, status enums.ContentStatus, note string) (enums.NotificationType, string) {
	approved := status == enums.ContentStatusApproved

	switch kind {
	case enums.ContentKindPost:
		if approved {
			return enums.NotificationPostApproved, "Your post has been approved."
		}
		return enums.NotificationPostRejected, rejectedMessage("post", note)
	case enums.ContentKindReview:
		if approved {
			return enums.NotificationReviewApproved, "Your review has been approved."
		}
		return enums.NotificationReviewRejected, rejectedMessage("review", note)
	case enums.ContentKindCommunityPost:
		if approved {
			return enums.NotificationCommunityPostApproved, "Your community post has been approved."
		}
		return enums.NotificationCommunityPostRejected, rejectedMessage("community post", note)
	default:
		return "", ""
	}
}

func rejectedMessage(noun, reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Sprintf("Your %s has been rejected.", noun)
	}
	return fmt.Sprintf("Your %s has been rejected: %s", noun, reason)
}

// ProcessReport closes a PENDING report as RESOLVED or DISMISSED. The
// reported content is untouched; acting on it is a separate moderation
// call.
func (s *Service) ProcessReport(ctx context.Context, reportID, moderatorID int64, outcome enums.ReportStatus, notes string) (pgrepo.ReportRecord, error) {
	if s.reportStore == nil {
		return pgrepo.ReportRecord{}, fmt.Errorf("moderation service dependencies are not configured")
	}
	if reportID <= 0 || moderatorID <= 0 {
		return pgrepo.ReportRecord{}, fmt.Errorf("invalid report payload")
	}
	if !outcome.Terminal() {
		return pgrepo.ReportRecord{}, fmt.Errorf("report outcome must be RESOLVED or DISMISSED, got %q", outcome)
	}

	report, ok, err := s.reportStore.Process(ctx, reportID, outcome, moderatorID, notes)
	if err != nil {
		return pgrepo.ReportRecord{}, err
	}
	if !ok {
		existing, getErr := s.reportStore.GetByID(ctx, reportID)
		if getErr != nil {
			if errors.Is(getErr, pgrepo.ErrReportNotFound) {
				return pgrepo.ReportRecord{}, ErrReportNotFound
			}
			return pgrepo.ReportRecord{}, getErr
		}
		return pgrepo.ReportRecord{}, fmt.Errorf("%w: status is %s", ErrAlreadyProcessed, existing.Status)
	}

	s.notifyReport(ctx, report, outcome)

	return report, nil
}

func (s *Service) notifyReport(ctx context.Context, report pgrepo.ReportRecord, outcome enums.ReportStatus) {
	if s.notifier == nil {
		return
	}

	kind := enums.NotificationReportResolved
	message := "Your report has been reviewed and resolved."
	if outcome == enums.ReportStatusDismissed {
		kind = enums.NotificationReportDismissed
		message = "Your report has been reviewed and dismissed."
	}

	err := s.notifier.Notify(ctx, report.ReporterID, kind, message, map[string]any{
		"report_id": report.ID,
	})
	if err != nil {
		s.logger.Warn("report notification failed",
			zap.Int64("report_id", report.ID),
			zap.Int64("reporter_id", report.ReporterID),
			zap.Error(err),
		)
	}
}

// ApproveAllPending flips every PENDING entity of the kind to APPROVED in
// one statement and returns how many rows changed. The bulk path skips
// per-author notifications on purpose; it exists for clearing backlogs.
func (s *Service) ApproveAllPending(ctx context.Context, kind enums.ContentKind) (int64, error) {
	if s.contentStore == nil {
		return 0, fmt.Errorf("moderation service dependencies are not configured")
	}
	return s.contentStore.ApproveAllPending(ctx, kind)
}

// Queue returns the oldest PENDING entities of the kind. Image URLs are
// presigned when object storage is configured; otherwise the queue is
// served without them.
func (s *Service) Queue(ctx context.Context, kind enums.ContentKind, limit int) ([]QueueItem, error) {
	if s.contentStore == nil {
		return nil, fmt.Errorf("moderation service dependencies are not configured")
	}

	records, err := s.contentStore.ListPending(ctx, kind, limit)
	if err != nil {
		return nil, err
	}

	items := make([]QueueItem, 0, len(records))
	for _, record := range records {
		item := QueueItem{
			ID:        record.ID,
			AuthorID:  record.AuthorID,
			Title:     record.Title,
			CreatedAt: record.CreatedAt,
		}
		if s.signer != nil {
			for _, key := range record.Images {
				if strings.TrimSpace(key) == "" {
					continue
				}
				url, signErr := s.signer.PresignGet(ctx, key, signedURLTTL)
				if signErr != nil {
					return nil, fmt.Errorf("sign image key: %w", signErr)
				}
				item.ImageURLs = append(item.ImageURLs, url)
			}
		}
		items = append(items, item)
	}

	return items, nil
}

func (s *Service) Reports(ctx context.Context, status string, limit, offset int) ([]pgrepo.ReportRecord, int64, error) {
	if s.reportStore == nil {
		return nil, 0, fmt.Errorf("moderation service dependencies are not configured")
	}
	return s.reportStore.List(ctx, status, limit, offset)
}

func (s *Service) Report(ctx context.Context, reportID int64) (pgrepo.ReportRecord, error) {
	if s.reportStore == nil {
		return pgrepo.ReportRecord{}, fmt.Errorf("moderation service dependencies are not configured")
	}

	report, err := s.reportStore.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrReportNotFound) {
			return pgrepo.ReportRecord{}, ErrReportNotFound
		}
		return pgrepo.ReportRecord{}, fmt.Errorf("get report: %w", err)
	}
	return report, nil
}

// Pending reports the size of every moderation queue for the admin
// dashboard and the bot's /pending command.
func (s *Service) Pending(ctx context.Context) (PendingCounts, error) {
	if s.contentStore == nil || s.reportStore == nil {
		return PendingCounts{}, fmt.Errorf("moderation service dependencies are not configured")
	}

	var counts PendingCounts
	var err error

	if counts.Posts, err = s.contentStore.CountPending(ctx, enums.ContentKindPost); err != nil {
		return PendingCounts{}, err
	}
	if counts.Reviews, err = s.contentStore.CountPending(ctx, enums.ContentKindReview); err != nil {
		return PendingCounts{}, err
	}
	if counts.CommunityPosts, err = s.contentStore.CountPending(ctx, enums.ContentKindCommunityPost); err != nil {
		return PendingCounts{}, err
	}
	if counts.Reports, err = s.reportStore.CountPending(ctx); err != nil {
		return PendingCounts{}, err
	}

	return counts, nil
}
