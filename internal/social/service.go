package social

import (
	"context"
	"time"

	"social-service/internal/events"
	"social-service/internal/post"
	"social-service/internal/shared/apperr"
	"social-service/internal/user"
)

type Service interface {
	// Follow is idempotent; followed is false only when either user is
	// absent. Self-follow is an invalid operation.
	Follow(ctx context.Context, followerID, targetID string) (followed bool, err error)
	// Unfollow reports whether an edge existed; false is not an error.
	Unfollow(ctx context.Context, followerID, targetID string) (unfollowed bool, err error)
	Followers(ctx context.Context, userID string, limit int) ([]user.UserResponse, error)
	Following(ctx context.Context, userID string, limit int) ([]user.UserResponse, error)
	MutualFollowers(ctx context.Context, userA, userB string) ([]user.UserResponse, error)
	Feed(ctx context.Context, userID string, limit int) ([]post.PostResponse, error)
	Suggestions(ctx context.Context, userID string, limit int) ([]Suggestion, error)
}

type service struct {
	repo   Repository
	events events.Publisher
}

func NewService(repo Repository, pub events.Publisher) Service {
	return &service{repo: repo, events: pub}
}

func (s *service) Follow(ctx context.Context, followerID, targetID string) (bool, error) {
	if followerID == targetID {
		return false, apperr.InvalidOperation("cannot follow yourself")
	}
	followed, err := s.repo.Follow(ctx, followerID, targetID, time.Now().UTC())
	if err != nil {
		return false, err
	}
	if followed {
		_ = s.events.Publish(ctx, events.Event{Type: events.UserFollowed, ActorID: followerID, SubjectID: targetID})
	}
	return followed, nil
}

func (s *service) Unfollow(ctx context.Context, followerID, targetID string) (bool, error) {
	if followerID == targetID {
		return false, apperr.InvalidOperation("cannot unfollow yourself")
	}
	unfollowed, err := s.repo.Unfollow(ctx, followerID, targetID)
	if err != nil {
		return false, err
	}
	if unfollowed {
		_ = s.events.Publish(ctx, events.Event{Type: events.UserUnfollowed, ActorID: followerID, SubjectID: targetID})
	}
	return unfollowed, nil
}

func (s *service) Followers(ctx context.Context, userID string, limit int) ([]user.UserResponse, error) {
	return s.repo.Followers(ctx, userID, limit)
}

func (s *service) Following(ctx context.Context, userID string, limit int) ([]user.UserResponse, error) {
	return s.repo.Following(ctx, userID, limit)
}

func (s *service) MutualFollowers(ctx context.Context, userA, userB string) ([]user.UserResponse, error) {
	return s.repo.MutualFollowers(ctx, userA, userB)
}

func (s *service) Feed(ctx context.Context, userID string, limit int) ([]post.PostResponse, error) {
	return s.repo.Feed(ctx, userID, limit)
}

func (s *service) Suggestions(ctx context.Context, userID string, limit int) ([]Suggestion, error) {
	return s.repo.Suggestions(ctx, userID, limit)
}
