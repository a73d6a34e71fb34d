package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	pgrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/postgres"
)

var (
	ErrTargetRequired = errors.New("report needs a user, post or review target")
	ErrTargetNotFound = errors.New("report target not found")
	ErrSelfReport     = errors.New("cannot report yourself")
	ErrInvalidReason  = errors.New("unknown report reason")
	ErrRateLimited    = errors.New("too many reports")
)

type Store interface {
	Create(ctx context.Context, params pgrepo.CreateReportParams) (pgrepo.ReportRecord, error)
	GetByID(ctx context.Context, reportID int64) (pgrepo.ReportRecord, error)
	ListByReporter(ctx context.Context, reporterID int64) ([]pgrepo.ReportRecord, error)
}

type UserStore interface {
	GetByID(ctx context.Context, userID int64) (pgrepo.UserRecord, error)
}

type PostStore interface {
	GetByID(ctx context.Context, postID int64) (pgrepo.PostRecord, error)
}

type ReviewStore interface {
	GetByID(ctx context.Context, reviewID int64) (pgrepo.ReviewRecord, error)
}

type Limiter interface {
	AllowReport(ctx context.Context, userID int64) (int64, bool, error)
}

type Service struct {
	store   Store
	users   UserStore
	posts   PostStore
	reviews ReviewStore
	limiter Limiter
}

type FileParams struct {
	ReporterID       int64
	ReportedUserID   *int64
	ReportedPostID   *int64
	ReportedReviewID *int64
	Reason           string
	Description      string
}

func NewService(store Store, users UserStore, posts PostStore, reviews ReviewStore, limiter Limiter) *Service {
	return &Service{
		store:   store,
		users:   users,
		posts:   posts,
		reviews: reviews,
		limiter: limiter,
	}
}

// File creates a PENDING report. Every referenced target must exist, and
// the limiter caps how fast one account can file. When the limiter
// triggers, the retry-after seconds ride along with ErrRateLimited.
func (s *Service) File(ctx context.Context, params FileParams) (pgrepo.ReportRecord, int64, error) {
	if s.store == nil {
		return pgrepo.ReportRecord{}, 0, fmt.Errorf("reports service store is nil")
	}
	if params.ReporterID <= 0 {
		return pgrepo.ReportRecord{}, 0, fmt.Errorf("invalid reporter id")
	}
	if params.ReportedUserID == nil && params.ReportedPostID == nil && params.ReportedReviewID == nil {
		return pgrepo.ReportRecord{}, 0, ErrTargetRequired
	}

	reason, ok := enums.ParseReportReason(params.Reason)
	if !ok {
		return pgrepo.ReportRecord{}, 0, ErrInvalidReason
	}

	if err := s.checkTargets(ctx, params); err != nil {
		return pgrepo.ReportRecord{}, 0, err
	}

	if s.limiter != nil {
		retryAfter, allowed, err := s.limiter.AllowReport(ctx, params.ReporterID)
		if err != nil {
			return pgrepo.ReportRecord{}, 0, err
		}
		if !allowed {
			return pgrepo.ReportRecord{}, retryAfter, ErrRateLimited
		}
	}

	report, err := s.store.Create(ctx, pgrepo.CreateReportParams{
		ReporterID:       params.ReporterID,
		ReportedUserID:   params.ReportedUserID,
		ReportedPostID:   params.ReportedPostID,
		ReportedReviewID: params.ReportedReviewID,
		Reason:           reason,
		Description:      strings.TrimSpace(params.Description),
	})
	if err != nil {
		return pgrepo.ReportRecord{}, 0, err
	}

	return report, 0, nil
}

func (s *Service) checkTargets(ctx context.Context, params FileParams) error {
	if params.ReportedUserID != nil {
		if *params.ReportedUserID == params.ReporterID {
			return ErrSelfReport
		}
		if s.users == nil {
			return fmt.Errorf("reports service user store is nil")
		}
		if _, err := s.users.GetByID(ctx, *params.ReportedUserID); err != nil {
			if errors.Is(err, pgrepo.ErrUserNotFound) {
				return ErrTargetNotFound
			}
			return err
		}
	}

	if params.ReportedPostID != nil {
		if s.posts == nil {
			return fmt.Errorf("reports service post store is nil")
		}
		if _, err := s.posts.GetByID(ctx, *params.ReportedPostID); err != nil {
			if errors.Is(err, pgrepo.ErrPostNotFound) {
				return ErrTargetNotFound
			}
			return err
		}
	}

	if params.ReportedReviewID != nil {
		if s.reviews == nil {
			return fmt.Errorf("reports service review store is nil")
		}
		if _, err := s.reviews.GetByID(ctx, *params.ReportedReviewID); err != nil {
			if errors.Is(err, pgrepo.ErrReviewNotFound) {
				return ErrTargetNotFound
			}
			return err
		}
	}

	return nil
}

// Mine lists the caller's own reports, newest first.
func (s *Service) Mine(ctx context.Context, reporterID int64) ([]pgrepo.ReportRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("reports service store is nil")
	}
	if reporterID <= 0 {
		return nil, fmt.Errorf("invalid reporter id")
	}
	return s.store.ListByReporter(ctx, reporterID)
}
