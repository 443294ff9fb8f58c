package model

import (
	"strconv"

	"github.com/thready-lab/backend/internal/entity"
	"github.com/thready-lab/backend/pkg/idutil"
)

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:                user.ID,
		ShopifyCustomerID: user.ShopifyCustomerID,
		Email:             user.Email,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		Username:          user.Username,
		ProfileImage:      user.ProfileImage,
		AvatarColor:       user.AvatarColor,
		CommunityID:       user.CommunityID,
		CreatedAt:         user.CreatedAt,
	}
}

func ConvertCommunity(community *entity.Community) Community {
	if community == nil {
		return Community{}
	}

	moderators := []Moderator{}
	for _, m := range community.Moderators {
		moderators = append(moderators, Moderator{Username: m.Username, Avatar: m.Avatar})
	}

	tags := []string{}
	if community.Tags != nil {
		tags = community.Tags
	}

	return Community{
		ID:          community.ID,
		Name:        community.Name,
		Description: community.Description,
		HeaderImage: community.HeaderImage,
		Icon:        community.Icon,
		IsPublic:    community.IsPublic,
		Tags:        tags,
		Members:     community.Members,
		Online:      community.Online,
		Moderators:  moderators,
	}
}

func ConvertPost(post *entity.Post, comments []Comment, userVote int) Post {
	if post == nil {
		return Post{}
	}

	if comments == nil {
		comments = []Comment{}
	}

	return Post{
		ID:           post.ID,
		Community:    post.CommunityID,
		UserID:       post.UserID,
		User:         post.Author,
		Avatar:       post.Avatar,
		Title:        post.Title,
		Content:      post.Content,
		Image:        post.Image,
		Video:        post.Video,
		Upvotes:      post.Upvotes,
		Downvotes:    post.Downvotes,
		Comments:     len(comments),
		CommentsList: comments,
		UserVote:     userVote,
		PostedAt:     post.CreatedAt,
	}
}

func ConvertComment(comment *entity.Comment, userVote int) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:             strconv.FormatInt(comment.ID, 10),
		PostID:         comment.PostID,
		UserID:         comment.UserID,
		User:           comment.Author,
		Avatar:         comment.Avatar,
		Text:           comment.Text,
		DisplayedScore: comment.DisplayedScore,
		UserVote:       userVote,
		PostedAt:       idutil.TimeOf(comment.ID),
	}
}
