package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	pgrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/postgres"
)

var (
	ErrNotFound    = errors.New("post not found")
	ErrNotEditable = errors.New("post can no longer be edited")
	ErrNotOwner    = errors.New("post belongs to another user")
)

type Store interface {
	Create(ctx context.Context, authorID int64, title, body string, images []string) (pgrepo.PostRecord, error)
	GetByID(ctx context.Context, postID int64) (pgrepo.PostRecord, error)
	List(ctx context.Context, filter pgrepo.PostFilter) ([]pgrepo.PostRecord, int64, error)
	UpdateOwnPending(ctx context.Context, postID, authorID int64, title, body string, images []string) (pgrepo.PostRecord, bool, error)
	Delete(ctx context.Context, postID int64) error
}

// Service owns post visibility: anyone sees APPROVED posts, authors see
// their own in any status, admins see everything. Hidden posts read as
// missing rather than forbidden.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, authorID int64, title, body string, images []string) (pgrepo.PostRecord, error) {
	if s.store == nil {
		return pgrepo.PostRecord{}, fmt.Errorf("posts service store is nil")
	}
	if strings.TrimSpace(title) == "" {
		return pgrepo.PostRecord{}, fmt.Errorf("title is required")
	}
	return s.store.Create(ctx, authorID, title, body, images)
}

func (s *Service) Get(ctx context.Context, viewerID int64, viewerRole enums.Role, postID int64) (pgrepo.PostRecord, error) {
	if s.store == nil {
		return pgrepo.PostRecord{}, fmt.Errorf("posts service store is nil")
	}

	post, err := s.store.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrPostNotFound) {
			return pgrepo.PostRecord{}, ErrNotFound
		}
		return pgrepo.PostRecord{}, err
	}

	if !visible(post, viewerID, viewerRole) {
		return pgrepo.PostRecord{}, ErrNotFound
	}

	return post, nil
}

func (s *Service) List(ctx context.Context, viewerID int64, viewerRole enums.Role, filter pgrepo.PostFilter) ([]pgrepo.PostRecord, int64, error) {
	if s.store == nil {
		return nil, 0, fmt.Errorf("posts service store is nil")
	}

	// Only admins may list arbitrary statuses. Everyone else gets the
	// approved feed, except when listing their own posts.
	if viewerRole != enums.RoleAdmin {
		if filter.AuthorID > 0 && filter.AuthorID == viewerID {
			// own posts, any status requested is fine
		} else {
			filter.Status = string(enums.ContentStatusApproved)
		}
	}

	return s.store.List(ctx, filter)
}

func (s *Service) UpdateOwn(ctx context.Context, authorID, postID int64, title, body string, images []string) (pgrepo.PostRecord, error) {
	if s.store == nil {
		return pgrepo.PostRecord{}, fmt.Errorf("posts service store is nil")
	}

	post, ok, err := s.store.UpdateOwnPending(ctx, postID, authorID, title, body, images)
	if err != nil {
		return pgrepo.PostRecord{}, err
	}
	if !ok {
		existing, getErr := s.store.GetByID(ctx, postID)
		if getErr != nil {
			if errors.Is(getErr, pgrepo.ErrPostNotFound) {
				return pgrepo.PostRecord{}, ErrNotFound
			}
			return pgrepo.PostRecord{}, getErr
		}
		if existing.AuthorID != authorID {
			return pgrepo.PostRecord{}, ErrNotOwner
		}
		return pgrepo.PostRecord{}, ErrNotEditable
	}

	return post, nil
}

func (s *Service) Delete(ctx context.Context, viewerID int64, viewerRole enums.Role, postID int64) error {
	if s.store == nil {
		return fmt.Errorf("posts service store is nil")
	}

	post, err := s.store.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrPostNotFound) {
			return ErrNotFound
		}
		return err
	}

	if post.AuthorID != viewerID && viewerRole != enums.RoleAdmin {
		return ErrNotOwner
	}

	return s.store.Delete(ctx, postID)
}

func visible(post pgrepo.PostRecord, viewerID int64, viewerRole enums.Role) bool {
	if post.Status == string(enums.ContentStatusApproved) {
		return true
	}
	if viewerRole == enums.RoleAdmin {
		return true
	}
	return viewerID > 0 && post.AuthorID == viewerID
}
