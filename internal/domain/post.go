package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/thready-lab/backend/internal/common"
	"github.com/thready-lab/backend/internal/entity"
	"github.com/thready-lab/backend/internal/model"
	"github.com/thready-lab/backend/internal/repository"
	"github.com/thready-lab/backend/pkg/errorx"
	"github.com/thready-lab/backend/pkg/idutil"
	"github.com/thready-lab/backend/pkg/pubsub"
	"github.com/thready-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PostDomain interface {
	GetList(ctx context.Context, req *model.GetPostsRequest) (*model.GetPostsResponse, error)
	Create(ctx context.Context, req *model.CreatePostRequest) (*model.CreatePostResponse, error)
	Update(ctx context.Context, req *model.UpdatePostRequest) (*model.UpdatePostResponse, error)
	Delete(ctx context.Context, req *model.DeletePostRequest) (*model.DeletePostResponse, error)
	AddComment(ctx context.Context, req *model.AddCommentRequest) (*model.AddCommentResponse, error)
	Vote(ctx context.Context, req *model.VotePostRequest) (*model.VotePostResponse, error)
}

type postDomain struct {
	postRepo      repository.PostRepository
	commentRepo   repository.CommentRepository
	communityRepo repository.CommunityRepository
	userRepo      repository.UserRepository
	guard         *common.OwnershipGuard
}

func NewPostDomain(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	communityRepo repository.CommunityRepository,
	userRepo repository.UserRepository,
	publisher pubsub.Publisher,
) PostDomain {
	return &postDomain{
		postRepo:      postRepo,
		commentRepo:   commentRepo,
		communityRepo: communityRepo,
		userRepo:      userRepo,
		guard:         common.NewOwnershipGuard(publisher),
	}
}

func (d *postDomain) GetList(
	ctx context.Context, req *model.GetPostsRequest,
) (*model.GetPostsResponse, error) {
	posts, err := d.postRepo.GetList(ctx, req.Community)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the list of posts: %v", err)
		return nil, errorx.Unknown
	}

	converted, err := convertPosts(ctx, d.postRepo, d.commentRepo, posts)
	if err != nil {
		return nil, err
	}

	return &model.GetPostsResponse{Posts: converted}, nil
}

func (d *postDomain) Create(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.CreatePostResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title")
	}

	if req.CommunityID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a community")
	}

	_, err := d.communityRepo.GetByID(ctx, req.CommunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the community: %v", err)
		return nil, errorx.Unknown
	}

	// The author identity always comes from the caller's record, never from
	// the request body.
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	post := &entity.Post{
		Base:        entity.Base{ID: uuid.NewString()},
		CommunityID: req.CommunityID,
		UserID:      user.ID,
		Author:      common.DisplayName(user.FirstName, user.LastName, user.Username),
		Avatar:      avatarOf(user),
		Title:       req.Title,
		Content:     req.Content,
		Image:       req.Image,
		Video:       req.Video,
	}

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreatePostResponse{Post: model.ConvertPost(post, nil, 0)}, nil
}

func (d *postDomain) Update(
	ctx context.Context, req *model.UpdatePostRequest,
) (*model.UpdatePostResponse, error) {
	post, err := d.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the post: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.guard.CheckPost(ctx, post.UserID, post.ID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Video != nil {
		updates["video"] = *req.Video
	}

	if err := d.postRepo.UpdateByID(ctx, post.ID, updates); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update the post: %v", err)
		return nil, errorx.Unknown
	}

	post, err = d.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the updated post: %v", err)
		return nil, errorx.Unknown
	}

	converted, err := convertPosts(ctx, d.postRepo, d.commentRepo, []entity.Post{*post})
	if err != nil {
		return nil, err
	}

	return &model.UpdatePostResponse{Post: converted[0]}, nil
}

func (d *postDomain) Delete(
	ctx context.Context, req *model.DeletePostRequest,
) (*model.DeletePostResponse, error) {
	post, err := d.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the post: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.guard.CheckPost(ctx, post.UserID, post.ID); err != nil {
		return nil, err
	}

	if err := d.postRepo.DeleteByID(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeletePostResponse{Success: true}, nil
}

func (d *postDomain) AddComment(
	ctx context.Context, req *model.AddCommentRequest,
) (*model.AddCommentResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty comment")
	}

	post, err := d.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the post: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	comment := &entity.Comment{
		SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NextID()},
		PostID:        post.ID,
		UserID:        user.ID,
		Author:        common.DisplayName(user.FirstName, user.LastName, user.Username),
		Avatar:        avatarOf(user),
		Text:          text,
	}

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.AddCommentResponse{Comment: model.ConvertComment(comment, 0)}, nil
}

func (d *postDomain) Vote(
	ctx context.Context, req *model.VotePostRequest,
) (*model.VotePostResponse, error) {
	if req.Value != 1 && req.Value != -1 {
		return nil, errorx.New(errorx.BadRequest, "Vote value must be 1 or -1")
	}

	if _, err := d.postRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the post: %v", err)
		return nil, errorx.Unknown
	}

	post, err := d.postRepo.Vote(ctx, req.ID, xcontext.RequestUserID(ctx), req.Value)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot vote for the post: %v", err)
		return nil, errorx.Unknown
	}

	converted, err := convertPosts(ctx, d.postRepo, d.commentRepo, []entity.Post{*post})
	if err != nil {
		return nil, err
	}

	return &model.VotePostResponse{Post: converted[0]}, nil
}

// convertPosts attaches comments and the caller's votes to every post. An
// anonymous caller gets zero votes everywhere.
func convertPosts(
	ctx context.Context,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	posts []entity.Post,
) ([]model.Post, error) {
	postIDs := []string{}
	for i := range posts {
		postIDs = append(postIDs, posts[i].ID)
	}

	comments, err := commentRepo.GetByPostIDs(ctx, postIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments of posts: %v", err)
		return nil, errorx.Unknown
	}

	viewerID := xcontext.RequestUserID(ctx)
	postVotes, err := postRepo.GetVotesOfUser(ctx, viewerID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get post votes of user: %v", err)
		return nil, errorx.Unknown
	}

	commentVotes, err := commentRepo.GetVotesOfUser(ctx, viewerID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comment votes of user: %v", err)
		return nil, errorx.Unknown
	}

	commentsByPost := map[string][]model.Comment{}
	for i := range comments {
		comment := &comments[i]
		commentsByPost[comment.PostID] = append(
			commentsByPost[comment.PostID],
			model.ConvertComment(comment, commentVotes[comment.ID]))
	}

	converted := []model.Post{}
	for i := range posts {
		post := &posts[i]
		converted = append(converted,
			model.ConvertPost(post, commentsByPost[post.ID], postVotes[post.ID]))
	}

	return converted, nil
}

// avatarOf prefers the uploaded profile image over the generated color.
func avatarOf(user *entity.User) string {
	if user.ProfileImage != "" {
		return user.ProfileImage
	}

	return user.AvatarColor
}
