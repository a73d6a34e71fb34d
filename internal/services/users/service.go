package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	pgrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/postgres"
)

const minPasswordLen = 8

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Store interface {
	Create(ctx context.Context, email, passwordHash, fullName, role string) (pgrepo.UserRecord, error)
	GetByID(ctx context.Context, userID int64) (pgrepo.UserRecord, error)
	List(ctx context.Context, role string, limit, offset int) ([]pgrepo.UserRecord, int64, error)
	SetActive(ctx context.Context, userID int64, active bool) error
}

// Service is the admin side of account management. Self-service signup
// lives in the auth service; this one creates the staff-side accounts.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateAccount provisions a GIRL or STAFF_UPLOAD account. Other roles are
// refused: admins come from ops tooling and customers from signup.
func (s *Service) CreateAccount(ctx context.Context, email, password, fullName string, role enums.Role) (pgrepo.UserRecord, error) {
	if s.store == nil {
		return pgrepo.UserRecord{}, fmt.Errorf("users service store is nil")
	}
	if role != enums.RoleGirl && role != enums.RoleStaffUpload {
		return pgrepo.UserRecord{}, fmt.Errorf("%w: role must be GIRL or STAFF_UPLOAD", ErrValidation)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return pgrepo.UserRecord{}, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(password) < minPasswordLen {
		return pgrepo.UserRecord{}, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}
	if strings.TrimSpace(fullName) == "" {
		return pgrepo.UserRecord{}, fmt.Errorf("%w: full name is required", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return pgrepo.UserRecord{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.Create(ctx, email, string(hash), strings.TrimSpace(fullName), string(role))
	if err != nil {
		if errors.Is(err, pgrepo.ErrEmailTaken) {
			return pgrepo.UserRecord{}, ErrEmailTaken
		}
		return pgrepo.UserRecord{}, err
	}

	return user, nil
}

func (s *Service) Get(ctx context.Context, userID int64) (pgrepo.UserRecord, error) {
	if s.store == nil {
		return pgrepo.UserRecord{}, fmt.Errorf("users service store is nil")
	}

	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return pgrepo.UserRecord{}, ErrNotFound
		}
		return pgrepo.UserRecord{}, err
	}

	return user, nil
}

func (s *Service) List(ctx context.Context, role string, limit, offset int) ([]pgrepo.UserRecord, int64, error) {
	if s.store == nil {
		return nil, 0, fmt.Errorf("users service store is nil")
	}
	if strings.TrimSpace(role) != "" {
		parsed, ok := enums.ParseRole(role)
		if !ok {
			return nil, 0, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
		}
		role = string(parsed)
	}
	return s.store.List(ctx, role, limit, offset)
}

func (s *Service) SetActive(ctx context.Context, userID int64, active bool) error {
	if s.store == nil {
		return fmt.Errorf("users service store is nil")
	}
	if err := s.store.SetActive(ctx, userID, active); err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
