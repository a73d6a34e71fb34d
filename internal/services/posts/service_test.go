package posts

import (
	"context"
	"errors"
	"testing"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	pgrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/postgres"
)

type stubStore struct {
	post       pgrepo.PostRecord
	getErr     error
	updateOK   bool
	lastFilter pgrepo.PostFilter
	deleted    []int64
}

func (s *stubStore) Create(_ context.Context, authorID int64, title, body string, images []string) (pgrepo.PostRecord, error) {
	return pgrepo.PostRecord{ID: 1, AuthorID: authorID, Title: title, Body: body, Images: images, Status: "PENDING"}, nil
}

func (s *stubStore) GetByID(_ context.Context, _ int64) (pgrepo.PostRecord, error) {
	return s.post, s.getErr
}

func (s *stubStore) List(_ context.Context, filter pgrepo.PostFilter) ([]pgrepo.PostRecord, int64, error) {
	s.lastFilter = filter
	return nil, 0, nil
}

func (s *stubStore) UpdateOwnPending(_ context.Context, _, _ int64, title, body string, images []string) (pgrepo.PostRecord, bool, error) {
	if !s.updateOK {
		return pgrepo.PostRecord{}, false, nil
	}
	updated := s.post
	updated.Title = title
	updated.Body = body
	updated.Images = images
	return updated, true, nil
}

func (s *stubStore) Delete(_ context.Context, postID int64) error {
	s.deleted = append(s.deleted, postID)
	return nil
}

func TestGetVisibility(t *testing.T) {
	pending := pgrepo.PostRecord{ID: 5, AuthorID: 9, Status: "PENDING"}

	tests := []struct {
		name       string
		viewerID   int64
		viewerRole enums.Role
		wantErr    error
	}{
		{name: "anonymous cannot see pending", viewerID: 0, viewerRole: "", wantErr: ErrNotFound},
		{name: "other customer cannot see pending", viewerID: 3, viewerRole: enums.RoleCustomer, wantErr: ErrNotFound},
		{name: "author sees own pending", viewerID: 9, viewerRole: enums.RoleGirl},
		{name: "admin sees pending", viewerID: 1, viewerRole: enums.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&stubStore{post: pending})
			_, err := svc.Get(context.Background(), tt.viewerID, tt.viewerRole, 5)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}

	svc := NewService(&stubStore{post: pgrepo.PostRecord{ID: 5, AuthorID: 9, Status: "APPROVED"}})
	if _, err := svc.Get(context.Background(), 0, "", 5); err != nil {
		t.Fatalf("approved post must be public, got %v", err)
	}
}

func TestListForcesApprovedForNonAdmins(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store)

	if _, _, err := svc.List(context.Background(), 3, enums.RoleCustomer, pgrepo.PostFilter{Status: "PENDING"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastFilter.Status != "APPROVED" {
		t.Fatalf("expected forced APPROVED filter, got %q", store.lastFilter.Status)
	}

	if _, _, err := svc.List(context.Background(), 9, enums.RoleGirl, pgrepo.PostFilter{Status: "PENDING", AuthorID: 9}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastFilter.Status != "PENDING" {
		t.Fatalf("author listing own posts must keep status filter, got %q", store.lastFilter.Status)
	}

	if _, _, err := svc.List(context.Background(), 1, enums.RoleAdmin, pgrepo.PostFilter{Status: "REJECTED"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastFilter.Status != "REJECTED" {
		t.Fatalf("admin filter must pass through, got %q", store.lastFilter.Status)
	}
}

func TestUpdateOwnDistinguishesFailures(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		store := &stubStore{getErr: pgrepo.ErrPostNotFound}
		svc := NewService(store)
		_, err := svc.UpdateOwn(context.Background(), 9, 5, "t", "b", nil)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("wrong owner", func(t *testing.T) {
		store := &stubStore{post: pgrepo.PostRecord{ID: 5, AuthorID: 2, Status: "PENDING"}}
		svc := NewService(store)
		_, err := svc.UpdateOwn(context.Background(), 9, 5, "t", "b", nil)
		if !errors.Is(err, ErrNotOwner) {
			t.Fatalf("got %v, want ErrNotOwner", err)
		}
	})

	t.Run("already moderated", func(t *testing.T) {
		store := &stubStore{post: pgrepo.PostRecord{ID: 5, AuthorID: 9, Status: "APPROVED"}}
		svc := NewService(store)
		_, err := svc.UpdateOwn(context.Background(), 9, 5, "t", "b", nil)
		if !errors.Is(err, ErrNotEditable) {
			t.Fatalf("got %v, want ErrNotEditable", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		store := &stubStore{post: pgrepo.PostRecord{ID: 5, AuthorID: 9, Status: "PENDING"}, updateOK: true}
		svc := NewService(store)
		post, err := svc.UpdateOwn(context.Background(), 9, 5, "new title", "b", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if post.Title != "new title" {
			t.Fatalf("unexpected post: %+v", post)
		}
	})
}

func TestDeleteRequiresOwnerOrAdmin(t *testing.T) {
	store := &stubStore{post: pgrepo.PostRecord{ID: 5, AuthorID: 9, Status: "APPROVED"}}
	svc := NewService(store)

	if err := svc.Delete(context.Background(), 3, enums.RoleCustomer, 5); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("got %v, want ErrNotOwner", err)
	}
	if err := svc.Delete(context.Background(), 9, enums.RoleGirl, 5); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), 1, enums.RoleAdmin, 5); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if len(store.deleted) != 2 {
		t.Fatalf("expected 2 deletes, got %d", len(store.deleted))
	}
}
