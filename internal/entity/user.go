package entity

type User struct {
	Base
	ShopifyCustomerID string `gorm:"unique"`
	Email             string
	FirstName         string
	LastName          string
	Username          string
	ProfileImage      string
	AvatarColor       string
	CommunityID       string `gorm:"index"`
}
