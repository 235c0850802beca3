package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"social-service/internal/shared/apperr"
)

type fakeRepo struct {
	Repository

	emailTaken    bool
	usernameTaken bool
	createErr     error
	created       *User

	byEmail map[string]*User
	byID    map[string]*User
}

func (f *fakeRepo) EmailOrUsernameTaken(_ context.Context, _, _ string) (bool, bool, error) {
	return f.emailTaken, f.usernameTaken, nil
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = u
	return nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	return f.byEmail[email], nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	return f.byID[id], nil
}

func signupReq() SignupReq {
	return SignupReq{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "password123",
		FullName: "Alice A",
		Bio:      "hi",
	}
}

func TestSignup(t *testing.T) {
	t.Run("new profile starts with zero counts", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo)

		resp, err := svc.Signup(context.Background(), signupReq())
		require.NoError(t, err)
		require.NotEmpty(t, resp.UserID)
		require.Equal(t, "alice", resp.Username)
		require.Zero(t, resp.FollowerCount)
		require.Zero(t, resp.FollowingCount)
		require.False(t, resp.CreatedAt.IsZero())

		require.NotNil(t, repo.created)
		require.NotEqual(t, "password123", repo.created.PasswordHash)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("password123")))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc := NewService(&fakeRepo{emailTaken: true})
		_, err := svc.Signup(context.Background(), signupReq())
		require.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		svc := NewService(&fakeRepo{usernameTaken: true})
		_, err := svc.Signup(context.Background(), signupReq())
		require.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("constraint race surfaces as conflict", func(t *testing.T) {
		// Both concurrent signups can pass the fast-path check; the
		// loser gets the store constraint error.
		svc := NewService(&fakeRepo{createErr: apperr.Conflict("email or username already taken")})
		_, err := svc.Signup(context.Background(), signupReq())
		require.ErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &fakeRepo{byEmail: map[string]*User{
		"bob@example.com": {UserID: "u-bob", Email: "bob@example.com", Username: "bob", PasswordHash: string(hash)},
	}}
	svc := NewService(repo)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := svc.Authenticate(context.Background(), "bob@example.com", "correct-horse")
		require.NoError(t, err)
		require.NotNil(t, u)
		require.Equal(t, "u-bob", u.UserID)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		noUser, err := svc.Authenticate(context.Background(), "ghost@example.com", "whatever")
		require.NoError(t, err)
		badPass, err2 := svc.Authenticate(context.Background(), "bob@example.com", "wrong")
		require.NoError(t, err2)
		require.Nil(t, noUser)
		require.Nil(t, badPass)
	})
}
