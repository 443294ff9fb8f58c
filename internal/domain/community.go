package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/thready-lab/backend/internal/entity"
	"github.com/thready-lab/backend/internal/model"
	"github.com/thready-lab/backend/internal/repository"
	"github.com/thready-lab/backend/pkg/errorx"
	"github.com/thready-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CommunityDomain interface {
	GetList(ctx context.Context, req *model.GetCommunitiesRequest) (*model.GetCommunitiesResponse, error)
	Get(ctx context.Context, req *model.GetCommunityRequest) (*model.GetCommunityResponse, error)
	Create(ctx context.Context, req *model.CreateCommunityRequest) (*model.CreateCommunityResponse, error)
}

type communityDomain struct {
	communityRepo repository.CommunityRepository
	postRepo      repository.PostRepository
	commentRepo   repository.CommentRepository
}

func NewCommunityDomain(
	communityRepo repository.CommunityRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) CommunityDomain {
	return &communityDomain{
		communityRepo: communityRepo,
		postRepo:      postRepo,
		commentRepo:   commentRepo,
	}
}

func (d *communityDomain) GetList(
	ctx context.Context, req *model.GetCommunitiesRequest,
) (*model.GetCommunitiesResponse, error) {
	communities, err := d.communityRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the list of communities: %v", err)
		return nil, errorx.Unknown
	}

	converted := []model.Community{}
	for i := range communities {
		converted = append(converted, model.ConvertCommunity(&communities[i]))
	}

	return &model.GetCommunitiesResponse{Communities: converted}, nil
}

func (d *communityDomain) Get(
	ctx context.Context, req *model.GetCommunityRequest,
) (*model.GetCommunityResponse, error) {
	community, err := d.communityRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the community: %v", err)
		return nil, errorx.Unknown
	}

	posts, err := d.postRepo.GetList(ctx, community.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts of the community: %v", err)
		return nil, errorx.Unknown
	}

	converted, err := convertPosts(ctx, d.postRepo, d.commentRepo, posts)
	if err != nil {
		return nil, err
	}

	return &model.GetCommunityResponse{
		Community: model.ConvertCommunity(community),
		Posts:     converted,
	}, nil
}

func (d *communityDomain) Create(
	ctx context.Context, req *model.CreateCommunityRequest,
) (*model.CreateCommunityResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty community name")
	}

	id := req.ID
	if id == "" {
		id = slugify(req.Name)
	}

	_, err := d.communityRepo.GetByID(ctx, id)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "The community already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check the existing community: %v", err)
		return nil, errorx.Unknown
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	tags := entity.Array[string]{}
	if req.Tags != nil {
		tags = req.Tags
	}

	moderators := []entity.Moderator{}
	for _, m := range req.Moderators {
		moderators = append(moderators, entity.Moderator{
			Base:        entity.Base{ID: uuid.NewString()},
			CommunityID: id,
			Username:    m.Username,
			Avatar:      m.Avatar,
		})
	}

	community := &entity.Community{
		Base:        entity.Base{ID: id},
		Name:        req.Name,
		Description: req.Description,
		HeaderImage: req.HeaderImage,
		Icon:        req.Icon,
		IsPublic:    isPublic,
		Tags:        tags,
		Moderators:  moderators,
	}

	if err := d.communityRepo.Create(ctx, community); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the community: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCommunityResponse{Community: model.ConvertCommunity(community)}, nil
}

// slugify turns a display name into an id like "The Bar Wardrobe" ->
// "the_bar_wardrobe".
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "_")

	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return -1
	}, slug)
}
