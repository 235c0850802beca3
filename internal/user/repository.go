package user

import (
	"context"
	"errors"

	"social-service/internal/graph"
	"social-service/internal/shared/apperr"
)

var errNoRowOnCreate = errors.New("create returned no row")

type Repository interface {
	// Create persists a new user. The unique constraints on email and
	// username are the authoritative guard; EmailOrUsernameTaken is only
	// a fast path for a friendlier error.
	Create(ctx context.Context, u *User) error
	EmailOrUsernameTaken(ctx context.Context, email, username string) (emailTaken, usernameTaken bool, err error)
	// GetByEmail returns nil, nil when no user has that email.
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByID returns nil, nil when absent.
	GetByID(ctx context.Context, userID string) (*User, error)
	// GetProfile returns the profile with live follower/following counts,
	// or nil, nil when absent.
	GetProfile(ctx context.Context, userID string) (*UserResponse, error)
	// Search matches the substring case-insensitively against username or
	// full name, ranked by follower count descending.
	Search(ctx context.Context, query string, limit int) ([]UserResponse, error)
}

type repository struct {
	runner graph.Runner
}

func NewRepository(runner graph.Runner) Repository {
	return &repository{runner: runner}
}

const createQuery = `
CREATE (u:User {
    user_id: $user_id,
    email: $email,
    username: $username,
    full_name: $full_name,
    bio: $bio,
    password_hash: $password_hash,
    created_at: $created_at
})
RETURN u`

func (r *repository) Create(ctx context.Context, u *User) error {
	result, err := r.runner.Run(ctx, createQuery, map[string]any{
		"user_id":       u.UserID,
		"email":         u.Email,
		"username":      u.Username,
		"full_name":     u.FullName,
		"bio":           u.Bio,
		"password_hash": u.PasswordHash,
		"created_at":    u.CreatedAt,
	})
	if err != nil {
		if graph.IsConstraintViolation(err) {
			return apperr.Conflict("email or username already taken")
		}
		return err
	}
	if _, ok := graph.Single(result); !ok {
		return apperr.Store(errNoRowOnCreate)
	}
	return nil
}

const takenQuery = `
OPTIONAL MATCH (byEmail:User {email: $email})
OPTIONAL MATCH (byUsername:User {username: $username})
RETURN byEmail IS NOT NULL AS email_taken, byUsername IS NOT NULL AS username_taken`

func (r *repository) EmailOrUsernameTaken(ctx context.Context, email, username string) (bool, bool, error) {
	result, err := r.runner.Run(ctx, takenQuery, map[string]any{
		"email":    email,
		"username": username,
	})
	if err != nil {
		return false, false, err
	}
	rec, ok := graph.Single(result)
	if !ok {
		return false, false, nil
	}
	emailTaken, err := graph.RecordBool(rec, "email_taken")
	if err != nil {
		return false, false, err
	}
	usernameTaken, err := graph.RecordBool(rec, "username_taken")
	if err != nil {
		return false, false, err
	}
	return emailTaken, usernameTaken, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, `MATCH (u:User {email: $value}) RETURN u`, email)
}

func (r *repository) GetByID(ctx context.Context, userID string) (*User, error) {
	return r.getOne(ctx, `MATCH (u:User {user_id: $value}) RETURN u`, userID)
}

func (r *repository) getOne(ctx context.Context, query, value string) (*User, error) {
	result, err := r.runner.Run(ctx, query, map[string]any{"value": value})
	if err != nil {
		return nil, err
	}
	rec, ok := graph.Single(result)
	if !ok {
		return nil, nil
	}
	n, err := graph.RecordNode(rec, "u")
	if err != nil {
		return nil, err
	}
	return recordFromNode(n)
}

const profileQuery = `
MATCH (u:User {user_id: $user_id})
OPTIONAL MATCH (follower:User)-[:FOLLOWS]->(u)
WITH u, COUNT(DISTINCT follower) AS follower_count
OPTIONAL MATCH (u)-[:FOLLOWS]->(following:User)
WITH u, follower_count, COUNT(DISTINCT following) AS following_count
RETURN u, follower_count, following_count`

func (r *repository) GetProfile(ctx context.Context, userID string) (*UserResponse, error) {
	result, err := r.runner.Run(ctx, profileQuery, map[string]any{"user_id": userID})
	if err != nil {
		return nil, err
	}
	rec, ok := graph.Single(result)
	if !ok {
		return nil, nil
	}
	return ResponseFromRecord(rec, "u")
}

const searchQuery = `
MATCH (u:User)
WHERE toLower(u.username) CONTAINS toLower($query)
   OR toLower(coalesce(u.full_name, '')) CONTAINS toLower($query)
OPTIONAL MATCH (follower:User)-[:FOLLOWS]->(u)
WITH u, COUNT(DISTINCT follower) AS follower_count
OPTIONAL MATCH (u)-[:FOLLOWS]->(following:User)
WITH u, follower_count, COUNT(DISTINCT following) AS following_count
RETURN u, follower_count, following_count
ORDER BY follower_count DESC, u.username ASC
LIMIT $limit`

func (r *repository) Search(ctx context.Context, query string, limit int) ([]UserResponse, error) {
	result, err := r.runner.Run(ctx, searchQuery, map[string]any{
		"query": query,
		"limit": limit,
	})
	if err != nil {
		return nil, err
	}
	users := make([]UserResponse, 0, len(result.Records))
	for _, rec := range result.Records {
		resp, err := ResponseFromRecord(rec, "u")
		if err != nil {
			return nil, err
		}
		users = append(users, *resp)
	}
	return users, nil
}
