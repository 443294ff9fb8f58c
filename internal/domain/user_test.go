package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thready-lab/backend/internal/entity"
	"github.com/thready-lab/backend/internal/model"
	"github.com/thready-lab/backend/internal/repository"
	"github.com/thready-lab/backend/pkg/errorx"
	"github.com/thready-lab/backend/pkg/testutil"
	"github.com/thready-lab/backend/pkg/xcontext"
)

func TestGetMe(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	xcontext.SetRequestUserID(ctx, user.ID)

	userDomain := NewUserDomain(repository.NewUserRepository(), repository.NewCommunityRepository())
	resp, err := userDomain.GetMe(ctx, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, user.ID, resp.User.ID)
	require.Equal(t, user.Username, resp.User.Username)
}

func TestGetMyCommunity(t *testing.T) {
	ctx := testutil.MockContext()
	community, err := testutil.SampleCommunity(ctx, nil)
	require.NoError(t, err)

	user, err := testutil.SampleUser(ctx, &entity.User{CommunityID: community.ID})
	require.NoError(t, err)
	xcontext.SetRequestUserID(ctx, user.ID)

	userDomain := NewUserDomain(repository.NewUserRepository(), repository.NewCommunityRepository())
	resp, err := userDomain.GetMyCommunity(ctx, &model.GetMyCommunityRequest{})
	require.NoError(t, err)
	require.Equal(t, community.ID, resp.Community.ID)

	orphan, err := testutil.SampleUser(ctx, &entity.User{CommunityID: "missing"})
	require.NoError(t, err)
	xcontext.SetRequestUserID(ctx, orphan.ID)

	_, err = userDomain.GetMyCommunity(ctx, &model.GetMyCommunityRequest{})
	requireErrorCode(t, err, errorx.NotFound)
}
