package user

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"social-service/internal/graph"
)

// recordFromNode maps a User node into the stored record.
func recordFromNode(n dbtype.Node) (*User, error) {
	uid, err := graph.PropString(n, "user_id")
	if err != nil {
		return nil, err
	}
	email, err := graph.PropString(n, "email")
	if err != nil {
		return nil, err
	}
	username, err := graph.PropString(n, "username")
	if err != nil {
		return nil, err
	}
	hash, err := graph.PropString(n, "password_hash")
	if err != nil {
		return nil, err
	}
	createdAt, err := graph.PropTime(n, "created_at")
	if err != nil {
		return nil, err
	}
	return &User{
		UserID:       uid,
		Email:        email,
		Username:     username,
		FullName:     graph.PropOptString(n, "full_name"),
		Bio:          graph.PropOptString(n, "bio"),
		PasswordHash: hash,
		CreatedAt:    createdAt,
	}, nil
}

// ResponseFromRecord projects a row of shape (u, follower_count,
// following_count) into a profile response. Shared with the social graph
// listings, which return the same shape.
func ResponseFromRecord(rec *db.Record, nodeKey string) (*UserResponse, error) {
	n, err := graph.RecordNode(rec, nodeKey)
	if err != nil {
		return nil, err
	}
	followers, err := graph.RecordInt(rec, "follower_count")
	if err != nil {
		return nil, err
	}
	following, err := graph.RecordInt(rec, "following_count")
	if err != nil {
		return nil, err
	}
	resp, err := ResponseFromNode(n)
	if err != nil {
		return nil, err
	}
	resp.FollowerCount = followers
	resp.FollowingCount = following
	return resp, nil
}

// ResponseFromNode projects a bare User node; counts stay zero.
func ResponseFromNode(n dbtype.Node) (*UserResponse, error) {
	uid, err := graph.PropString(n, "user_id")
	if err != nil {
		return nil, err
	}
	email, err := graph.PropString(n, "email")
	if err != nil {
		return nil, err
	}
	username, err := graph.PropString(n, "username")
	if err != nil {
		return nil, err
	}
	createdAt, err := graph.PropTime(n, "created_at")
	if err != nil {
		return nil, err
	}
	return &UserResponse{
		UserID:    uid,
		Email:     email,
		Username:  username,
		FullName:  graph.PropOptString(n, "full_name"),
		Bio:       graph.PropOptString(n, "bio"),
		CreatedAt: createdAt,
	}, nil
}
