package testutil

import (
	"context"
	"reflect"

	"github.com/google/uuid"
	"github.com/thready-lab/backend/internal/entity"
	"github.com/thready-lab/backend/internal/repository"
	"github.com/thready-lab/backend/pkg/idutil"
)

// SampleUser creates a user with randomized fields, overwritten by any
// non-zero field of init.
func SampleUser(ctx context.Context, init *entity.User) (entity.User, error) {
	id := uuid.NewString()
	sample := &entity.User{
		Base:              entity.Base{ID: id},
		ShopifyCustomerID: uuid.NewString(),
		Email:             id + "@example.com",
		Username:          "user_" + id[:5],
		AvatarColor:       "hsl(120, 70%, 50%)",
		CommunityID:       "the_bar_wardrobe",
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	_, err := repository.NewUserRepository().Upsert(ctx, sample)
	if err != nil {
		return *sample, err
	}

	return *sample, nil
}

func SampleCommunity(ctx context.Context, init *entity.Community) (entity.Community, error) {
	sample := &entity.Community{
		Base:     entity.Base{ID: uuid.NewString()},
		Name:     uuid.NewString(),
		IsPublic: true,
		Tags:     entity.Array[string]{},
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewCommunityRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

func SamplePost(ctx context.Context, init *entity.Post) (entity.Post, error) {
	sample := &entity.Post{
		Base:        entity.Base{ID: uuid.NewString()},
		CommunityID: "the_bar_wardrobe",
		UserID:      uuid.NewString(),
		Author:      "Sample Author",
		Title:       uuid.NewString(),
		Content:     "sample content",
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewPostRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

func SampleComment(ctx context.Context, init *entity.Comment) (entity.Comment, error) {
	sample := &entity.Comment{
		SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NextID()},
		PostID:        uuid.NewString(),
		UserID:        uuid.NewString(),
		Author:        "Sample Author",
		Text:          "sample comment",
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewCommentRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if overwriteField.Interface() != reflect.Zero(overwriteField.Type()).Interface() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
