package repository_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thready-lab/backend/internal/entity"
	"github.com/thready-lab/backend/internal/repository"
	"github.com/thready-lab/backend/pkg/testutil"
	"github.com/thready-lab/backend/pkg/xcontext"
)

func TestUserUpsert(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository()

	first, err := userRepo.Upsert(ctx, &entity.User{
		Base:              entity.Base{ID: "user-1"},
		ShopifyCustomerID: "7001234567",
		Email:             "jane@example.com",
		Username:          "jane_34567",
		AvatarColor:       "hsl(10, 60%, 45%)",
		CommunityID:       "gaming",
	})
	require.NoError(t, err)
	require.Equal(t, "user-1", first.ID)

	second, err := userRepo.Upsert(ctx, &entity.User{
		Base:              entity.Base{ID: "user-2"},
		ShopifyCustomerID: "7001234567",
		Email:             "jane.renamed@example.com",
		Username:          "janerenamed_34567",
		AvatarColor:       "hsl(10, 60%, 45%)",
		CommunityID:       "gaming",
	})
	require.NoError(t, err)

	// The conflicting insert must converge on the original row.
	require.Equal(t, "user-1", second.ID)
	require.Equal(t, "jane.renamed@example.com", second.Email)
	require.Equal(t, "janerenamed_34567", second.Username)
}

func TestUserUpsertKeepsProfileImage(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository()

	user, err := userRepo.Upsert(ctx, &entity.User{
		Base:              entity.Base{ID: "user-1"},
		ShopifyCustomerID: "7001234567",
		Email:             "jane@example.com",
		Username:          "jane_34567",
	})
	require.NoError(t, err)

	err = xcontext.DB(ctx).Model(user).
		Update("profile_image", "https://cdn.example.com/jane.png").Error
	require.NoError(t, err)

	// A relogin upserts without an image. The stored one must not be wiped.
	relogged, err := userRepo.Upsert(ctx, &entity.User{
		Base:              entity.Base{ID: "user-2"},
		ShopifyCustomerID: "7001234567",
		Email:             "jane@example.com",
		Username:          "jane_34567",
	})
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/jane.png", relogged.ProfileImage)
}
