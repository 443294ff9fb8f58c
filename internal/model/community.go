package model

type Moderator struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

type Community struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	HeaderImage string      `json:"headerImage,omitempty"`
	Icon        string      `json:"icon,omitempty"`
	IsPublic    bool        `json:"isPublic"`
	Tags        []string    `json:"tags"`
	Members     int         `json:"members"`
	Online      int         `json:"online"`
	Moderators  []Moderator `json:"moderators"`
}

type GetCommunitiesRequest struct{}

type GetCommunitiesResponse struct {
	Communities []Community `json:"communities"`
}

type GetCommunityRequest struct {
	ID string `json:"id"`
}

type GetCommunityResponse struct {
	Community
	Posts []Post `json:"posts"`
}

type CreateCommunityRequest struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	HeaderImage string      `json:"headerImage"`
	Icon        string      `json:"icon"`
	IsPublic    *bool       `json:"isPublic"`
	Tags        []string    `json:"tags"`
	Moderators  []Moderator `json:"moderators"`
}

type CreateCommunityResponse struct {
	Community
}
