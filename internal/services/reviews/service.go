package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	pgrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/postgres"
)

var (
	ErrNotFound      = errors.New("review not found")
	ErrNotEditable   = errors.New("review can no longer be edited")
	ErrNotOwner      = errors.New("review belongs to another user")
	ErrGirlNotFound  = errors.New("reviewed girl not found")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

type Store interface {
	Create(ctx context.Context, customerID, girlID int64, title, body string, rating int, images []string) (pgrepo.ReviewRecord, error)
	GetByID(ctx context.Context, reviewID int64) (pgrepo.ReviewRecord, error)
	List(ctx context.Context, filter pgrepo.ReviewFilter) ([]pgrepo.ReviewRecord, int64, error)
	UpdateOwnPending(ctx context.Context, reviewID, customerID int64, title, body string, rating int) (pgrepo.ReviewRecord, bool, error)
	Delete(ctx context.Context, reviewID int64) error
}

type UserStore interface {
	GetByID(ctx context.Context, userID int64) (pgrepo.UserRecord, error)
}

type Service struct {
	store Store
	users UserStore
}

func NewService(store Store, users UserStore) *Service {
	return &Service{store: store, users: users}
}

// Create files a review against a girl profile. The target must exist, hold
// the GIRL role and still be active; reviews against anyone else are
// rejected up front.
func (s *Service) Create(ctx context.Context, customerID, girlID int64, title, body string, rating int, images []string) (pgrepo.ReviewRecord, error) {
	if s.store == nil || s.users == nil {
		return pgrepo.ReviewRecord{}, fmt.Errorf("reviews service dependencies are not configured")
	}
	if rating < 1 || rating > 5 {
		return pgrepo.ReviewRecord{}, ErrInvalidRating
	}
	if strings.TrimSpace(title) == "" {
		return pgrepo.ReviewRecord{}, fmt.Errorf("title is required")
	}

	girl, err := s.users.GetByID(ctx, girlID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return pgrepo.ReviewRecord{}, ErrGirlNotFound
		}
		return pgrepo.ReviewRecord{}, err
	}
	if girl.Role != string(enums.RoleGirl) || !girl.IsActive {
		return pgrepo.ReviewRecord{}, ErrGirlNotFound
	}

	return s.store.Create(ctx, customerID, girlID, title, body, rating, images)
}

func (s *Service) Get(ctx context.Context, viewerID int64, viewerRole enums.Role, reviewID int64) (pgrepo.ReviewRecord, error) {
	if s.store == nil {
		return pgrepo.ReviewRecord{}, fmt.Errorf("reviews service store is nil")
	}

	review, err := s.store.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrReviewNotFound) {
			return pgrepo.ReviewRecord{}, ErrNotFound
		}
		return pgrepo.ReviewRecord{}, err
	}

	if !visible(review, viewerID, viewerRole) {
		return pgrepo.ReviewRecord{}, ErrNotFound
	}

	return review, nil
}

func (s *Service) List(ctx context.Context, viewerID int64, viewerRole enums.Role, filter pgrepo.ReviewFilter) ([]pgrepo.ReviewRecord, int64, error) {
	if s.store == nil {
		return nil, 0, fmt.Errorf("reviews service store is nil")
	}

	if viewerRole != enums.RoleAdmin {
		if filter.CustomerID > 0 && filter.CustomerID == viewerID {
			// own reviews, any status
		} else {
			filter.Status = string(enums.ContentStatusApproved)
		}
	}

	return s.store.List(ctx, filter)
}

func (s *Service) UpdateOwn(ctx context.Context, customerID, reviewID int64, title, body string, rating int) (pgrepo.ReviewRecord, error) {
	if s.store == nil {
		return pgrepo.ReviewRecord{}, fmt.Errorf("reviews service store is nil")
	}
	if rating < 1 || rating > 5 {
		return pgrepo.ReviewRecord{}, ErrInvalidRating
	}

	review, ok, err := s.store.UpdateOwnPending(ctx, reviewID, customerID, title, body, rating)
	if err != nil {
		return pgrepo.ReviewRecord{}, err
	}
	if !ok {
		existing, getErr := s.store.GetByID(ctx, reviewID)
		if getErr != nil {
			if errors.Is(getErr, pgrepo.ErrReviewNotFound) {
				return pgrepo.ReviewRecord{}, ErrNotFound
			}
			return pgrepo.ReviewRecord{}, getErr
		}
		if existing.CustomerID != customerID {
			return pgrepo.ReviewRecord{}, ErrNotOwner
		}
		return pgrepo.ReviewRecord{}, ErrNotEditable
	}

	return review, nil
}

func (s *Service) Delete(ctx context.Context, viewerID int64, viewerRole enums.Role, reviewID int64) error {
	if s.store == nil {
		return fmt.Errorf("reviews service store is nil")
	}

	review, err := s.store.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrReviewNotFound) {
			return ErrNotFound
		}
		return err
	}

	if review.CustomerID != viewerID && viewerRole != enums.RoleAdmin {
		return ErrNotOwner
	}

	return s.store.Delete(ctx, reviewID)
}

func visible(review pgrepo.ReviewRecord, viewerID int64, viewerRole enums.Role) bool {
	if review.Status == string(enums.ContentStatusApproved) {
		return true
	}
	if viewerRole == enums.RoleAdmin {
		return true
	}
	return viewerID > 0 && review.CustomerID == viewerID
}
