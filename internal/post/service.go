package post

import (
	"context"
	"time"

	"github.com/google/uuid"

	"social-service/internal/events"
	"social-service/internal/shared/apperr"
)

type Service interface {
	Create(ctx context.Context, authorID string, req CreatePostReq) (*PostResponse, error)
	// Get returns nil, nil when absent.
	Get(ctx context.Context, postID, viewerID string) (*PostResponse, error)
	// Like is idempotent; liked is false only when the post (or user) is
	// absent.
	Like(ctx context.Context, userID, postID string) (liked bool, err error)
	// Unlike reports whether a like existed; false is not an error.
	Unlike(ctx context.Context, userID, postID string) (unliked bool, err error)
	Comment(ctx context.Context, authorID, postID string, req CreateCommentReq) (*CommentResponse, error)
	ListComments(ctx context.Context, postID string, limit int) ([]CommentResponse, error)
	// Delete fails with an authorization error when the post exists but
	// belongs to someone else, and a not-found error when it is absent.
	Delete(ctx context.Context, authorID, postID string) error
}

type service struct {
	repo   Repository
	events events.Publisher
}

func NewService(repo Repository, pub events.Publisher) Service {
	return &service{repo: repo, events: pub}
}

func (s *service) Create(ctx context.Context, authorID string, req CreatePostReq) (*PostResponse, error) {
	created, err := s.repo.Create(ctx, uuid.NewString(), authorID, req.Content, req.ImageURL, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, apperr.NotFound("author not found")
	}
	_ = s.events.Publish(ctx, events.Event{Type: events.PostCreated, ActorID: authorID, SubjectID: created.PostID})
	return created, nil
}

func (s *service) Get(ctx context.Context, postID, viewerID string) (*PostResponse, error) {
	return s.repo.Get(ctx, postID, viewerID)
}

func (s *service) Like(ctx context.Context, userID, postID string) (bool, error) {
	liked, err := s.repo.Like(ctx, userID, postID, time.Now().UTC())
	if err != nil {
		return false, err
	}
	if liked {
		_ = s.events.Publish(ctx, events.Event{Type: events.PostLiked, ActorID: userID, SubjectID: postID})
	}
	return liked, nil
}

func (s *service) Unlike(ctx context.Context, userID, postID string) (bool, error) {
	return s.repo.Unlike(ctx, userID, postID)
}

func (s *service) Comment(ctx context.Context, authorID, postID string, req CreateCommentReq) (*CommentResponse, error) {
	created, err := s.repo.CreateComment(ctx, uuid.NewString(), authorID, postID, req.Content, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, apperr.NotFound("post not found")
	}
	_ = s.events.Publish(ctx, events.Event{Type: events.PostCommented, ActorID: authorID, SubjectID: postID})
	return created, nil
}

func (s *service) ListComments(ctx context.Context, postID string, limit int) ([]CommentResponse, error) {
	return s.repo.ListComments(ctx, postID, limit)
}

func (s *service) Delete(ctx context.Context, authorID, postID string) error {
	deleted, err := s.repo.Delete(ctx, authorID, postID)
	if err != nil {
		return err
	}
	if deleted {
		return nil
	}
	present, err := s.repo.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if present {
		return apperr.Authorization("post belongs to another user")
	}
	return apperr.NotFound("post not found")
}
