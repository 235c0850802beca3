package post

import "time"

// PostResponse carries the post plus counts computed live at read time.
// The author username is denormalized onto the post at creation; later
// username changes intentionally do not rewrite old posts.
type PostResponse struct {
	PostID         string    `json:"post_id"`
	Content        string    `json:"content"`
	ImageURL       string    `json:"image_url,omitempty"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	CreatedAt      time.Time `json:"created_at"`
	LikesCount     int64     `json:"likes_count"`
	CommentsCount  int64     `json:"comments_count"`
	IsLiked        bool      `json:"is_liked"`
}

type CommentResponse struct {
	CommentID      string    `json:"comment_id"`
	Content        string    `json:"content"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreatePostReq struct {
	Content  string `json:"content" validate:"required,min=1,max=2000"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

type CreateCommentReq struct {
	Content string `json:"content" validate:"required,min=1,max=200"`
}
