package domain

import (
	"context"

	"github.com/thready-lab/backend/internal/model"
	"github.com/thready-lab/backend/internal/repository"
	"github.com/thready-lab/backend/pkg/errorx"
	"github.com/thready-lab/backend/pkg/xcontext"
)

type UserDomain interface {
	GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error)
	GetMyCommunity(ctx context.Context, req *model.GetMyCommunityRequest) (*model.GetMyCommunityResponse, error)
}

type userDomain struct {
	userRepo      repository.UserRepository
	communityRepo repository.CommunityRepository
}

func NewUserDomain(
	userRepo repository.UserRepository,
	communityRepo repository.CommunityRepository,
) UserDomain {
	return &userDomain{userRepo: userRepo, communityRepo: communityRepo}
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{User: model.ConvertUser(user)}, nil
}

func (d *userDomain) GetMyCommunity(
	ctx context.Context, req *model.GetMyCommunityRequest,
) (*model.GetMyCommunityResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	community, err := d.communityRepo.GetByID(ctx, user.CommunityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the community of user: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found your community")
	}

	return &model.GetMyCommunityResponse{Community: model.ConvertCommunity(community)}, nil
}
