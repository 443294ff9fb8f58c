package entity

type Comment struct {
	SnowFlakeBase
	PostID string `gorm:"index"`
	UserID string `gorm:"index"`
	Author string
	Avatar string

	Text string `gorm:"type:text"`

	// DisplayedScore is the denormalized net score shown next to the
	// comment. Vote switches move it by two.
	DisplayedScore int
}

type CommentVote struct {
	Base
	CommentID int64  `gorm:"index;uniqueIndex:idx_comment_votes_comment_user"`
	UserID    string `gorm:"uniqueIndex:idx_comment_votes_comment_user"`
	Value     int
}
