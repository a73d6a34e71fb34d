package users

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	pgrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/postgres"
)

type stubStore struct {
	createErr error
	lastEmail string
	lastHash  string
	lastRole  string
	setActive map[int64]bool
	setErr    error
	lastList  string
}

func (s *stubStore) Create(_ context.Context, email, passwordHash, fullName, role string) (pgrepo.UserRecord, error) {
	if s.createErr != nil {
		return pgrepo.UserRecord{}, s.createErr
	}
	s.lastEmail = email
	s.lastHash = passwordHash
	s.lastRole = role
	return pgrepo.UserRecord{ID: 1, Email: email, FullName: fullName, Role: role, IsActive: true}, nil
}

func (s *stubStore) GetByID(_ context.Context, _ int64) (pgrepo.UserRecord, error) {
	return pgrepo.UserRecord{}, pgrepo.ErrUserNotFound
}

func (s *stubStore) List(_ context.Context, role string, _, _ int) ([]pgrepo.UserRecord, int64, error) {
	s.lastList = role
	return nil, 0, nil
}

func (s *stubStore) SetActive(_ context.Context, userID int64, active bool) error {
	if s.setErr != nil {
		return s.setErr
	}
	if s.setActive == nil {
		s.setActive = map[int64]bool{}
	}
	s.setActive[userID] = active
	return nil
}

func TestCreateAccountRestrictsRoles(t *testing.T) {
	svc := NewService(&stubStore{})

	for _, role := range []enums.Role{enums.RoleAdmin, enums.RoleCustomer} {
		_, err := svc.CreateAccount(context.Background(), "a@b.test", "supersecret", "Name", role)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("role %s: got %v, want ErrValidation", role, err)
		}
	}
}

func TestCreateAccountHashesAndLowercases(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store)

	user, err := svc.CreateAccount(context.Background(), " Staff@Example.Test ", "supersecret", "Staff One", enums.RoleStaffUpload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "staff@example.test" {
		t.Fatalf("email not lowercased: %q", user.Email)
	}
	if store.lastRole != "STAFF_UPLOAD" {
		t.Fatalf("unexpected role: %q", store.lastRole)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(store.lastHash), []byte("supersecret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestCreateAccountValidation(t *testing.T) {
	svc := NewService(&stubStore{})

	if _, err := svc.CreateAccount(context.Background(), "not-an-email", "supersecret", "N", enums.RoleGirl); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad email: got %v", err)
	}
	if _, err := svc.CreateAccount(context.Background(), "a@b.test", "short", "N", enums.RoleGirl); !errors.Is(err, ErrValidation) {
		t.Fatalf("short password: got %v", err)
	}
	if _, err := svc.CreateAccount(context.Background(), "a@b.test", "supersecret", "  ", enums.RoleGirl); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty name: got %v", err)
	}
}

func TestCreateAccountEmailTaken(t *testing.T) {
	svc := NewService(&stubStore{createErr: pgrepo.ErrEmailTaken})

	_, err := svc.CreateAccount(context.Background(), "a@b.test", "supersecret", "Name", enums.RoleGirl)
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}
}

func TestListNormalizesRoleFilter(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store)

	if _, _, err := svc.List(context.Background(), "girl", 20, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastList != "GIRL" {
		t.Fatalf("role filter not normalized: %q", store.lastList)
	}

	if _, _, err := svc.List(context.Background(), "wizard", 20, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown role: got %v", err)
	}
}

func TestSetActiveMissingUser(t *testing.T) {
	svc := NewService(&stubStore{setErr: pgrepo.ErrUserNotFound})

	if err := svc.SetActive(context.Background(), 99, false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
