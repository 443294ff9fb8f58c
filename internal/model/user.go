package model

import "time"

type User struct {
	ID                string    `json:"id"`
	ShopifyCustomerID string    `json:"shopifyCustomerId"`
	Email             string    `json:"email"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	Username          string    `json:"username"`
	ProfileImage      string    `json:"profileImage,omitempty"`
	AvatarColor       string    `json:"avatarColor"`
	CommunityID       string    `json:"communityId"`
	CreatedAt         time.Time `json:"createdAt"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}

type GetMyCommunityRequest struct{}

type GetMyCommunityResponse struct {
	Community Community `json:"community"`
}
