package entity

// Community uses its slug as primary key, so the id embedded in customer
// tags addresses the row directly.
type Community struct {
	Base
	Name        string
	Description string `gorm:"type:text"`
	HeaderImage string
	Icon        string
	IsPublic    bool          `gorm:"default:true"`
	Tags        Array[string] `gorm:"type:text"`
	Members     int
	Online      int

	Moderators []Moderator `gorm:"foreignKey:CommunityID"`
}

type Moderator struct {
	Base
	CommunityID string `gorm:"index"`
	Username    string
	Avatar      string
}
