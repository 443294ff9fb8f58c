package model

import "time"

type Comment struct {
	ID             string    `json:"id"`
	PostID         string    `json:"postId"`
	UserID         string    `json:"userId"`
	User           string    `json:"user"`
	Avatar         string    `json:"avatar,omitempty"`
	Text           string    `json:"text"`
	DisplayedScore int       `json:"displayedScore"`
	UserVote       int       `json:"userVote"`
	PostedAt       time.Time `json:"postedAt"`
}

type UpdateCommentRequest struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type UpdateCommentResponse struct {
	Comment
}

type DeleteCommentRequest struct {
	ID string `json:"id"`
}

type DeleteCommentResponse struct {
	Success bool `json:"success"`
}

type VoteCommentRequest struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

type VoteCommentResponse struct {
	Comment
}
