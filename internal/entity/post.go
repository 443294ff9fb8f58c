package entity

type Post struct {
	Base
	CommunityID string `gorm:"index"`

	// UserID may be empty or "legacy" for rows imported before accounts
	// were linked to the identity provider.
	UserID string `gorm:"index"`
	Author string
	Avatar string

	Title     string
	Content   string `gorm:"type:text"`
	Image     string
	Video     string
	Upvotes   int
	Downvotes int
}

type PostVote struct {
	Base
	PostID string `gorm:"index;uniqueIndex:idx_post_votes_post_user"`
	UserID string `gorm:"uniqueIndex:idx_post_votes_post_user"`

	// Value is 1 for an upvote, -1 for a downvote.
	Value int
}
