package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thready-lab/backend/internal/entity"
	"github.com/thready-lab/backend/internal/model"
	"github.com/thready-lab/backend/internal/repository"
	"github.com/thready-lab/backend/pkg/errorx"
	"github.com/thready-lab/backend/pkg/testutil"
)

func newCommunityDomain() CommunityDomain {
	return NewCommunityDomain(
		repository.NewCommunityRepository(),
		repository.NewPostRepository(),
		repository.NewCommentRepository())
}

func TestCreateCommunity(t *testing.T) {
	ctx := testutil.MockContext()
	communityDomain := newCommunityDomain()

	resp, err := communityDomain.Create(ctx, &model.CreateCommunityRequest{
		Name:       "The Bar Wardrobe",
		Moderators: []model.Moderator{{Username: "alice"}},
	})
	require.NoError(t, err)
	require.Equal(t, "the_bar_wardrobe", resp.ID)
	require.True(t, resp.IsPublic)
	require.Len(t, resp.Moderators, 1)
	require.Equal(t, "alice", resp.Moderators[0].Username)

	_, err = communityDomain.Create(ctx, &model.CreateCommunityRequest{
		Name: "The Bar Wardrobe",
	})
	requireErrorCode(t, err, errorx.AlreadyExists)

	_, err = communityDomain.Create(ctx, &model.CreateCommunityRequest{Name: "   "})
	requireErrorCode(t, err, errorx.BadRequest)

	isPublic := false
	resp, err = communityDomain.Create(ctx, &model.CreateCommunityRequest{
		ID:       "private_club",
		Name:     "Private Club",
		IsPublic: &isPublic,
	})
	require.NoError(t, err)
	require.Equal(t, "private_club", resp.ID)
	require.False(t, resp.IsPublic)
}

func TestGetCommunity(t *testing.T) {
	ctx := testutil.MockContext()
	communityDomain := newCommunityDomain()

	community, err := testutil.SampleCommunity(ctx, nil)
	require.NoError(t, err)

	post, err := testutil.SamplePost(ctx, &entity.Post{CommunityID: community.ID})
	require.NoError(t, err)
	_, err = testutil.SampleComment(ctx, &entity.Comment{PostID: post.ID})
	require.NoError(t, err)
	_, err = testutil.SamplePost(ctx, &entity.Post{CommunityID: "elsewhere"})
	require.NoError(t, err)

	resp, err := communityDomain.Get(ctx, &model.GetCommunityRequest{ID: community.ID})
	require.NoError(t, err)
	require.Equal(t, community.ID, resp.Community.ID)
	require.Len(t, resp.Posts, 1)
	require.Equal(t, post.ID, resp.Posts[0].ID)
	require.Equal(t, 1, resp.Posts[0].Comments)

	_, err = communityDomain.Get(ctx, &model.GetCommunityRequest{ID: "unknown"})
	requireErrorCode(t, err, errorx.NotFound)
}

func TestGetCommunities(t *testing.T) {
	ctx := testutil.MockContext()
	communityDomain := newCommunityDomain()

	_, err := testutil.SampleCommunity(ctx, nil)
	require.NoError(t, err)
	_, err = testutil.SampleCommunity(ctx, nil)
	require.NoError(t, err)

	resp, err := communityDomain.GetList(ctx, &model.GetCommunitiesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Communities, 2)
}

func TestSlugify(t *testing.T) {
	require.Equal(t, "the_bar_wardrobe", slugify("The Bar Wardrobe"))
	require.Equal(t, "caff_corner", slugify("  Caffè  Corner "))
	require.Equal(t, "gaming", slugify("Gaming!"))
}
