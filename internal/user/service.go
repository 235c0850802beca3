package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"social-service/internal/shared/apperr"
)

type Service interface {
	Signup(ctx context.Context, req SignupReq) (*UserResponse, error)
	// Authenticate returns nil, nil for an unknown email and for a wrong
	// password alike; callers must not be able to tell which.
	Authenticate(ctx context.Context, email, password string) (*User, error)
	// GetByID returns nil, nil when absent.
	GetByID(ctx context.Context, userID string) (*User, error)
	// GetProfile returns nil, nil when absent.
	GetProfile(ctx context.Context, userID string) (*UserResponse, error)
	Search(ctx context.Context, query string, limit int) ([]UserResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Signup(ctx context.Context, req SignupReq) (*UserResponse, error) {
	emailTaken, usernameTaken, err := s.repo.EmailOrUsernameTaken(ctx, req.Email, req.Username)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, apperr.Conflict("email already registered")
	}
	if usernameTaken {
		return nil, apperr.Conflict("username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		Username:     req.Username,
		FullName:     req.FullName,
		Bio:          req.Bio,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	// The store's unique constraints close the race the fast-path check
	// leaves open; a concurrent duplicate surfaces here as a conflict.
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return &UserResponse{
		UserID:    u.UserID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return u, nil
}

func (s *service) GetByID(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *service) GetProfile(ctx context.Context, userID string) (*UserResponse, error) {
	return s.repo.GetProfile(ctx, userID)
}

func (s *service) Search(ctx context.Context, query string, limit int) ([]UserResponse, error) {
	return s.repo.Search(ctx, query, limit)
}
