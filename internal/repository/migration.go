package repository

import (
	"context"

	"github.com/thready-lab/backend/internal/entity"
	"github.com/thready-lab/backend/pkg/xcontext"
)

func Migrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Community{},
		&entity.Moderator{},
		&entity.Post{},
		&entity.PostVote{},
		&entity.Comment{},
		&entity.CommentVote{},
	)
}
