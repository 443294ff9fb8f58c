package model

import "time"

type Post struct {
	ID           string    `json:"id"`
	Community    string    `json:"community"`
	UserID       string    `json:"userId"`
	User         string    `json:"user"`
	Avatar       string    `json:"avatar,omitempty"`
	Title        string    `json:"title"`
	Content      string    `json:"content,omitempty"`
	Image        string    `json:"image,omitempty"`
	Video        string    `json:"video,omitempty"`
	Upvotes      int       `json:"upvotes"`
	Downvotes    int       `json:"downvotes"`
	Comments     int       `json:"comments"`
	CommentsList []Comment `json:"commentsList"`
	UserVote     int       `json:"userVote"`
	PostedAt     time.Time `json:"postedAt"`
}

type GetPostsRequest struct {
	Community string `json:"community"`
}

type GetPostsResponse struct {
	Posts []Post `json:"posts"`
}

type CreatePostRequest struct {
	CommunityID string `json:"communityId"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Image       string `json:"image"`
	Video       string `json:"video"`
}

type CreatePostResponse struct {
	Post
}

type UpdatePostRequest struct {
	ID      string  `json:"id"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Image   *string `json:"image"`
	Video   *string `json:"video"`
}

type UpdatePostResponse struct {
	Post
}

type DeletePostRequest struct {
	ID string `json:"id"`
}

type DeletePostResponse struct {
	Success bool `json:"success"`
}

type AddCommentRequest struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type AddCommentResponse struct {
	Comment
}

type VotePostRequest struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

type VotePostResponse struct {
	Post
}
