package social

import (
	"context"
	"time"

	"social-service/internal/graph"
	"social-service/internal/post"
	"social-service/internal/user"
)

// Repository is the social graph query layer. Every operation is a single
// parameterized Cypher round trip; counting and ranking happen in the
// store.
type Repository interface {
	// Follow merge-creates the edge; an existing edge keeps its original
	// created_at. Returns false when either endpoint is absent.
	Follow(ctx context.Context, followerID, targetID string, createdAt time.Time) (bool, error)
	// Unfollow reports whether an edge existed and was removed.
	Unfollow(ctx context.Context, followerID, targetID string) (bool, error)
	Followers(ctx context.Context, userID string, limit int) ([]user.UserResponse, error)
	Following(ctx context.Context, userID string, limit int) ([]user.UserResponse, error)
	MutualFollowers(ctx context.Context, userA, userB string) ([]user.UserResponse, error)
	Feed(ctx context.Context, userID string, limit int) ([]post.PostResponse, error)
	Suggestions(ctx context.Context, userID string, limit int) ([]Suggestion, error)
}

type repository struct {
	runner graph.Runner
}

func NewRepository(runner graph.Runner) Repository {
	return &repository{runner: runner}
}

const followQuery = `
MATCH (follower:User {user_id: $follower_id})
MATCH (target:User {user_id: $target_id})
MERGE (follower)-[r:FOLLOWS]->(target)
ON CREATE SET r.created_at = $created_at
RETURN r`

func (r *repository) Follow(ctx context.Context, followerID, targetID string, createdAt time.Time) (bool, error) {
	result, err := r.runner.Run(ctx, followQuery, map[string]any{
		"follower_id": followerID,
		"target_id":   targetID,
		"created_at":  createdAt,
	})
	if err != nil {
		return false, err
	}
	_, ok := graph.Single(result)
	return ok, nil
}

const unfollowQuery = `
MATCH (:User {user_id: $follower_id})-[r:FOLLOWS]->(:User {user_id: $target_id})
DELETE r
RETURN count(r) AS deleted_count`

func (r *repository) Unfollow(ctx context.Context, followerID, targetID string) (bool, error) {
	result, err := r.runner.Run(ctx, unfollowQuery, map[string]any{
		"follower_id": followerID,
		"target_id":   targetID,
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

// Listings annotate every returned user with its own counts, so the rows
// share the (u, follower_count, following_count) profile shape.

const followersQuery = `
MATCH (candidate:User)-[:FOLLOWS]->(:User {user_id: $user_id})
WITH DISTINCT candidate
OPTIONAL MATCH (candidate)-[:FOLLOWS]->(following:User)
WITH candidate, COUNT(DISTINCT following) AS following_count
OPTIONAL MATCH (follower:User)-[:FOLLOWS]->(candidate)
WITH candidate, following_count, COUNT(DISTINCT follower) AS follower_count
RETURN candidate AS u, follower_count, following_count
ORDER BY u.username ASC
LIMIT $limit`

func (r *repository) Followers(ctx context.Context, userID string, limit int) ([]user.UserResponse, error) {
	return r.listUsers(ctx, followersQuery, map[string]any{"user_id": userID, "limit": limit})
}

const followingQuery = `
MATCH (:User {user_id: $user_id})-[:FOLLOWS]->(candidate:User)
WITH DISTINCT candidate
OPTIONAL MATCH (candidate)-[:FOLLOWS]->(following:User)
WITH candidate, COUNT(DISTINCT following) AS following_count
OPTIONAL MATCH (follower:User)-[:FOLLOWS]->(candidate)
WITH candidate, following_count, COUNT(DISTINCT follower) AS follower_count
RETURN candidate AS u, follower_count, following_count
ORDER BY u.username ASC
LIMIT $limit`

func (r *repository) Following(ctx context.Context, userID string, limit int) ([]user.UserResponse, error) {
	return r.listUsers(ctx, followingQuery, map[string]any{"user_id": userID, "limit": limit})
}

const mutualFollowersQuery = `
MATCH (candidate:User)-[:FOLLOWS]->(a:User {user_id: $user_a})
MATCH (candidate)-[:FOLLOWS]->(b:User {user_id: $user_b})
WHERE a <> b
WITH DISTINCT candidate
OPTIONAL MATCH (candidate)-[:FOLLOWS]->(following:User)
WITH candidate, COUNT(DISTINCT following) AS following_count
OPTIONAL MATCH (follower:User)-[:FOLLOWS]->(candidate)
WITH candidate, following_count, COUNT(DISTINCT follower) AS follower_count
RETURN candidate AS u, follower_count, following_count
ORDER BY u.username ASC`

func (r *repository) MutualFollowers(ctx context.Context, userA, userB string) ([]user.UserResponse, error) {
	return r.listUsers(ctx, mutualFollowersQuery, map[string]any{"user_a": userA, "user_b": userB})
}

func (r *repository) listUsers(ctx context.Context, query string, params map[string]any) ([]user.UserResponse, error) {
	result, err := r.runner.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}
	users := make([]user.UserResponse, 0, len(result.Records))
	for _, rec := range result.Records {
		resp, err := user.ResponseFromRecord(rec, "u")
		if err != nil {
			return nil, err
		}
		users = append(users, *resp)
	}
	return users, nil
}

// Feed is fan-out-on-read: posts are unioned across all followed authors
// at query time. Fine at this scale; a precomputed feed is the known next
// step if follow counts grow.
const feedQuery = `
MATCH (me:User {user_id: $user_id})
MATCH (author:User)-[:POSTED]->(p:Post)
WHERE author = me OR (me)-[:FOLLOWS]->(author)
OPTIONAL MATCH (liker:User)-[:LIKES]->(p)
WITH me, p, author, COUNT(DISTINCT liker) AS likes_count
OPTIONAL MATCH (p)<-[:COMMENTED_ON]-(c:Comment)
WITH me, p, author, likes_count, COUNT(DISTINCT c) AS comments_count
OPTIONAL MATCH (me)-[like:LIKES]->(p)
RETURN p, author.user_id AS author_id, author.username AS author_username,
       likes_count, comments_count, like IS NOT NULL AS is_liked
ORDER BY p.created_at DESC
LIMIT $limit`

func (r *repository) Feed(ctx context.Context, userID string, limit int) ([]post.PostResponse, error) {
	result, err := r.runner.Run(ctx, feedQuery, map[string]any{
		"user_id": userID,
		"limit":   limit,
	})
	if err != nil {
		return nil, err
	}
	posts := make([]post.PostResponse, 0, len(result.Records))
	for _, rec := range result.Records {
		p, err := post.ResponseFromRecord(rec)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, nil
}

// Suggestions are friends-of-friends ranked by how many of the viewer's
// direct follows also follow the candidate, then by the candidate's own
// follower count, then username for a deterministic order.
const suggestionsQuery = `
MATCH (me:User {user_id: $user_id})-[:FOLLOWS]->(friend:User)
MATCH (friend)-[:FOLLOWS]->(candidate:User)
WHERE candidate <> me AND NOT (me)-[:FOLLOWS]->(candidate)
WITH me, candidate, COUNT(DISTINCT friend) AS common_connections_count
OPTIONAL MATCH (follower:User)-[:FOLLOWS]->(candidate)
WITH candidate, common_connections_count, COUNT(DISTINCT follower) AS follower_count
OPTIONAL MATCH (candidate)-[:FOLLOWS]->(following:User)
WITH candidate, common_connections_count, follower_count, COUNT(DISTINCT following) AS following_count
RETURN candidate AS u, common_connections_count, follower_count, following_count
ORDER BY common_connections_count DESC, follower_count DESC, u.username ASC
LIMIT $limit`

func (r *repository) Suggestions(ctx context.Context, userID string, limit int) ([]Suggestion, error) {
	result, err := r.runner.Run(ctx, suggestionsQuery, map[string]any{
		"user_id": userID,
		"limit":   limit,
	})
	if err != nil {
		return nil, err
	}
	suggestions := make([]Suggestion, 0, len(result.Records))
	for _, rec := range result.Records {
		resp, err := user.ResponseFromRecord(rec, "u")
		if err != nil {
			return nil, err
		}
		common, err := graph.RecordInt(rec, "common_connections_count")
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, Suggestion{UserResponse: *resp, CommonConnections: common})
	}
	return suggestions, nil
}
