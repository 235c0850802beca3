package post

import (
	"context"
	"time"

	"social-service/internal/graph"
)

type Repository interface {
	// Create returns nil, nil when the author does not exist.
	Create(ctx context.Context, postID, authorID, content, imageURL string, createdAt time.Time) (*PostResponse, error)
	// Get returns nil, nil when absent. viewerID may be empty; is_liked is
	// then always false.
	Get(ctx context.Context, postID, viewerID string) (*PostResponse, error)
	// Like merge-creates the edge; re-liking is a no-op. Returns false
	// when the user or post does not exist.
	Like(ctx context.Context, userID, postID string, createdAt time.Time) (bool, error)
	// Unlike reports whether an edge existed and was removed.
	Unlike(ctx context.Context, userID, postID string) (bool, error)
	// CreateComment returns nil, nil when the author or post is absent.
	CreateComment(ctx context.Context, commentID, authorID, postID, content string, createdAt time.Time) (*CommentResponse, error)
	ListComments(ctx context.Context, postID string, limit int) ([]CommentResponse, error)
	// Delete removes the post owned by authorID together with its edges
	// and comments; false when no such owned post exists.
	Delete(ctx context.Context, authorID, postID string) (bool, error)
	// Exists reports whether any post has this id, regardless of owner.
	Exists(ctx context.Context, postID string) (bool, error)
}

type repository struct {
	runner graph.Runner
}

func NewRepository(runner graph.Runner) Repository {
	return &repository{runner: runner}
}

const createPostQuery = `
MATCH (u:User {user_id: $author_id})
CREATE (p:Post {
    post_id: $post_id,
    content: $content,
    image_url: $image_url,
    author_id: $author_id,
    author_username: u.username,
    created_at: $created_at
})
CREATE (u)-[:POSTED {created_at: $created_at}]->(p)
RETURN p, u.user_id AS author_id, u.username AS author_username,
       0 AS likes_count, 0 AS comments_count, false AS is_liked`

func (r *repository) Create(ctx context.Context, postID, authorID, content, imageURL string, createdAt time.Time) (*PostResponse, error) {
	result, err := r.runner.Run(ctx, createPostQuery, map[string]any{
		"post_id":    postID,
		"author_id":  authorID,
		"content":    content,
		"image_url":  imageURL,
		"created_at": createdAt,
	})
	if err != nil {
		return nil, err
	}
	rec, ok := graph.Single(result)
	if !ok {
		return nil, nil
	}
	return ResponseFromRecord(rec)
}

const getPostQuery = `
MATCH (u:User)-[:POSTED]->(p:Post {post_id: $post_id})
OPTIONAL MATCH (liker:User)-[:LIKES]->(p)
WITH p, u, COUNT(DISTINCT liker) AS likes_count
OPTIONAL MATCH (p)<-[:COMMENTED_ON]-(c:Comment)
WITH p, u, likes_count, COUNT(DISTINCT c) AS comments_count
OPTIONAL MATCH (:User {user_id: $viewer_id})-[like:LIKES]->(p)
RETURN p, u.user_id AS author_id, u.username AS author_username,
       likes_count, comments_count, like IS NOT NULL AS is_liked`

func (r *repository) Get(ctx context.Context, postID, viewerID string) (*PostResponse, error) {
	result, err := r.runner.Run(ctx, getPostQuery, map[string]any{
		"post_id":   postID,
		"viewer_id": viewerID,
	})
	if err != nil {
		return nil, err
	}
	rec, ok := graph.Single(result)
	if !ok {
		return nil, nil
	}
	return ResponseFromRecord(rec)
}

const likeQuery = `
MATCH (u:User {user_id: $user_id})
MATCH (p:Post {post_id: $post_id})
MERGE (u)-[r:LIKES]->(p)
ON CREATE SET r.created_at = $created_at
RETURN r`

func (r *repository) Like(ctx context.Context, userID, postID string, createdAt time.Time) (bool, error) {
	result, err := r.runner.Run(ctx, likeQuery, map[string]any{
		"user_id":    userID,
		"post_id":    postID,
		"created_at": createdAt,
	})
	if err != nil {
		return false, err
	}
	_, ok := graph.Single(result)
	return ok, nil
}

const unlikeQuery = `
MATCH (:User {user_id: $user_id})-[r:LIKES]->(:Post {post_id: $post_id})
DELETE r
RETURN count(r) AS deleted_count`

func (r *repository) Unlike(ctx context.Context, userID, postID string) (bool, error) {
	result, err := r.runner.Run(ctx, unlikeQuery, map[string]any{
		"user_id": userID,
		"post_id": postID,
	})
	if err != nil {
		return false, err
	}
	rec, ok := graph.Single(result)
	if !ok {
		return false, nil
	}
	deleted, err := graph.RecordInt(rec, "deleted_count")
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

const createCommentQuery = `
MATCH (u:User {user_id: $author_id})
MATCH (p:Post {post_id: $post_id})
CREATE (c:Comment {
    comment_id: $comment_id,
    content: $content,
    author_id: $author_id,
    author_username: u.username,
    created_at: $created_at
})
CREATE (u)-[:COMMENTED]->(c)
CREATE (c)-[:COMMENTED_ON]->(p)
RETURN c, u.user_id AS author_id, u.username AS author_username`

func (r *repository) CreateComment(ctx context.Context, commentID, authorID, postID, content string, createdAt time.Time) (*CommentResponse, error) {
	result, err := r.runner.Run(ctx, createCommentQuery, map[string]any{
		"comment_id": commentID,
		"author_id":  authorID,
		"post_id":    postID,
		"content":    content,
		"created_at": createdAt,
	})
	if err != nil {
		return nil, err
	}
	rec, ok := graph.Single(result)
	if !ok {
		return nil, nil
	}
	return commentFromRecord(rec)
}

const listCommentsQuery = `
MATCH (:Post {post_id: $post_id})<-[:COMMENTED_ON]-(c:Comment)
MATCH (u:User)-[:COMMENTED]->(c)
RETURN c, u.user_id AS author_id, u.username AS author_username
ORDER BY c.created_at DESC
LIMIT $limit`

func (r *repository) ListComments(ctx context.Context, postID string, limit int) ([]CommentResponse, error) {
	result, err := r.runner.Run(ctx, listCommentsQuery, map[string]any{
		"post_id": postID,
		"limit":   limit,
	})
	if err != nil {
		return nil, err
	}
	comments := make([]CommentResponse, 0, len(result.Records))
	for _, rec := range result.Records {
		c, err := commentFromRecord(rec)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *c)
	}
	return comments, nil
}

const deletePostQuery = `
MATCH (:User {user_id: $author_id})-[:POSTED]->(p:Post {post_id: $post_id})
OPTIONAL MATCH (p)<-[:COMMENTED_ON]-(c:Comment)
DETACH DELETE p, c
RETURN count(p) AS deleted_count`

func (r *repository) Delete(ctx context.Context, authorID, postID string) (bool, error) {
	result, err := r.runner.Run(ctx, deletePostQuery, map[string]any{
		"author_id": authorID,
		"post_id":   postID,
	})
	if err != nil {
		return false, err
	}
	rec, ok := graph.Single(result)
	if !ok {
		return false, nil
	}
	deleted, err := graph.RecordInt(rec, "deleted_count")
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

const postExistsQuery = `
OPTIONAL MATCH (p:Post {post_id: $post_id})
RETURN p IS NOT NULL AS present`

func (r *repository) Exists(ctx context.Context, postID string) (bool, error) {
	result, err := r.runner.Run(ctx, postExistsQuery, map[string]any{"post_id": postID})
	if err != nil {
		return false, err
	}
	rec, ok := graph.Single(result)
	if !ok {
		return false, nil
	}
	return graph.RecordBool(rec, "present")
}
