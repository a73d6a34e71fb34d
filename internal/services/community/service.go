package community

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	pgrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/postgres"
)

var (
	ErrNotFound    = errors.New("community post not found")
	ErrNotEditable = errors.New("community post can no longer be edited")
	ErrNotOwner    = errors.New("community post belongs to another user")
)

type Store interface {
	Create(ctx context.Context, authorID int64, title, body string, images []string) (pgrepo.CommunityPostRecord, error)
	GetByID(ctx context.Context, postID int64) (pgrepo.CommunityPostRecord, error)
	List(ctx context.Context, status string, authorID int64, limit, offset int) ([]pgrepo.CommunityPostRecord, int64, error)
	UpdateOwnPending(ctx context.Context, postID, authorID int64, title, body string) (pgrepo.CommunityPostRecord, bool, error)
	Delete(ctx context.Context, postID int64) error
}

// Service mirrors the posts service for the community board, which both
// customers and girls write to.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, authorID int64, title, body string, images []string) (pgrepo.CommunityPostRecord, error) {
	if s.store == nil {
		return pgrepo.CommunityPostRecord{}, fmt.Errorf("community service store is nil")
	}
	if strings.TrimSpace(title) == "" {
		return pgrepo.CommunityPostRecord{}, fmt.Errorf("title is required")
	}
	return s.store.Create(ctx, authorID, title, body, images)
}

func (s *Service) Get(ctx context.Context, viewerID int64, viewerRole enums.Role, postID int64) (pgrepo.CommunityPostRecord, error) {
	if s.store == nil {
		return pgrepo.CommunityPostRecord{}, fmt.Errorf("community service store is nil")
	}

	post, err := s.store.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrCommunityPostNotFound) {
			return pgrepo.CommunityPostRecord{}, ErrNotFound
		}
		return pgrepo.CommunityPostRecord{}, err
	}

	if !visible(post, viewerID, viewerRole) {
		return pgrepo.CommunityPostRecord{}, ErrNotFound
	}

	return post, nil
}

func (s *Service) List(ctx context.Context, viewerID int64, viewerRole enums.Role, status string, authorID int64, limit, offset int) ([]pgrepo.CommunityPostRecord, int64, error) {
	if s.store == nil {
		return nil, 0, fmt.Errorf("community service store is nil")
	}

	if viewerRole != enums.RoleAdmin && !(authorID > 0 && authorID == viewerID) {
		status = string(enums.ContentStatusApproved)
	}

	return s.store.List(ctx, status, authorID, limit, offset)
}

func (s *Service) UpdateOwn(ctx context.Context, authorID, postID int64, title, body string) (pgrepo.CommunityPostRecord, error) {
	if s.store == nil {
		return pgrepo.CommunityPostRecord{}, fmt.Errorf("community service store is nil")
	}

	post, ok, err := s.store.UpdateOwnPending(ctx, postID, authorID, title, body)
	if err != nil {
		return pgrepo.CommunityPostRecord{}, err
	}
	if !ok {
		existing, getErr := s.store.GetByID(ctx, postID)
		if getErr != nil {
			if errors.Is(getErr, pgrepo.ErrCommunityPostNotFound) {
				return pgrepo.CommunityPostRecord{}, ErrNotFound
			}
			return pgrepo.CommunityPostRecord{}, getErr
		}
		if existing.AuthorID != authorID {
			return pgrepo.CommunityPostRecord{}, ErrNotOwner
		}
		return pgrepo.CommunityPostRecord{}, ErrNotEditable
	}

	return post, nil
}

func (s *Service) Delete(ctx context.Context, viewerID int64, viewerRole enums.Role, postID int64) error {
	if s.store == nil {
		return fmt.Errorf("community service store is nil")
	}

	post, err := s.store.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrCommunityPostNotFound) {
			return ErrNotFound
		}
		return err
	}

	if post.AuthorID != viewerID && viewerRole != enums.RoleAdmin {
		return ErrNotOwner
	}

	return s.store.Delete(ctx, postID)
}

func visible(post pgrepo.CommunityPostRecord, viewerID int64, viewerRole enums.Role) bool {
	if post.Status == string(enums.ContentStatusApproved) {
		return true
	}
	if viewerRole == enums.RoleAdmin {
		return true
	}
	return viewerID > 0 && post.AuthorID == viewerID
}
