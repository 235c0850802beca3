package post

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"

	"social-service/internal/graph"
)

// ResponseFromRecord projects a row of shape (p, author_id,
// author_username, likes_count, comments_count, is_liked). The feed query
// in the social package returns the same shape.
func ResponseFromRecord(rec *db.Record) (*PostResponse, error) {
	n, err := graph.RecordNode(rec, "p")
	if err != nil {
		return nil, err
	}
	postID, err := graph.PropString(n, "post_id")
	if err != nil {
		return nil, err
	}
	content, err := graph.PropString(n, "content")
	if err != nil {
		return nil, err
	}
	createdAt, err := graph.PropTime(n, "created_at")
	if err != nil {
		return nil, err
	}
	authorID, err := graph.RecordString(rec, "author_id")
	if err != nil {
		return nil, err
	}
	authorUsername, err := graph.RecordString(rec, "author_username")
	if err != nil {
		return nil, err
	}
	likes, err := graph.RecordInt(rec, "likes_count")
	if err != nil {
		return nil, err
	}
	comments, err := graph.RecordInt(rec, "comments_count")
	if err != nil {
		return nil, err
	}
	isLiked, err := graph.RecordBool(rec, "is_liked")
	if err != nil {
		return nil, err
	}
	return &PostResponse{
		PostID:         postID,
		Content:        content,
		ImageURL:       graph.PropOptString(n, "image_url"),
		AuthorID:       authorID,
		AuthorUsername: authorUsername,
		CreatedAt:      createdAt,
		LikesCount:     likes,
		CommentsCount:  comments,
		IsLiked:        isLiked,
	}, nil
}

func commentFromRecord(rec *db.Record) (*CommentResponse, error) {
	n, err := graph.RecordNode(rec, "c")
	if err != nil {
		return nil, err
	}
	commentID, err := graph.PropString(n, "comment_id")
	if err != nil {
		return nil, err
	}
	content, err := graph.PropString(n, "content")
	if err != nil {
		return nil, err
	}
	createdAt, err := graph.PropTime(n, "created_at")
	if err != nil {
		return nil, err
	}
	authorID, err := graph.RecordString(rec, "author_id")
	if err != nil {
		return nil, err
	}
	authorUsername, err := graph.RecordString(rec, "author_username")
	if err != nil {
		return nil, err
	}
	return &CommentResponse{
		CommentID:      commentID,
		Content:        content,
		AuthorID:       authorID,
		AuthorUsername: authorUsername,
		CreatedAt:      createdAt,
	}, nil
}
