package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/thready-lab/backend/internal/entity"
	"github.com/thready-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, data *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetList(ctx context.Context, communityID string) ([]entity.Post, error)
	UpdateByID(ctx context.Context, id string, updates map[string]any) error
	DeleteByID(ctx context.Context, id string) error
	Vote(ctx context.Context, postID, userID string, value int) (*entity.Post, error)
	GetVotesOfUser(ctx context.Context, userID string) (map[string]int, error)
}

type postRepository struct {
}

func NewPostRepository() PostRepository {
	return &postRepository{}
}

func (r *postRepository) Create(ctx context.Context, data *entity.Post) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var record entity.Post
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *postRepository) GetList(ctx context.Context, communityID string) ([]entity.Post, error) {
	db := xcontext.DB(ctx).Order("created_at DESC")
	if communityID != "" {
		db = db.Where("community_id=?", communityID)
	}

	var records []entity.Post
	if err := db.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *postRepository) UpdateByID(ctx context.Context, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Model(&entity.Post{}).Where("id=?", id).Updates(updates).Error
}

func (r *postRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Post{}).Error
}

// Vote applies the toggle semantics in one transaction. Voting the same
// direction twice removes the vote, voting the other direction flips it, and
// the denormalized counters on the post follow.
func (r *postRepository) Vote(
	ctx context.Context, postID, userID string, value int,
) (*entity.Post, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	var existing entity.PostVote
	err := xcontext.DB(ctx).
		Where("post_id=? AND user_id=?", postID, userID).
		Take(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var upvoteChange, downvoteChange int
	switch {
	case err == nil && existing.Value == value:
		if err := xcontext.DB(ctx).Unscoped().Delete(&existing).Error; err != nil {
			return nil, err
		}

		if value == 1 {
			upvoteChange = -1
		} else {
			downvoteChange = -1
		}

	case err == nil:
		err := xcontext.DB(ctx).Model(&existing).Update("value", value).Error
		if err != nil {
			return nil, err
		}

		if value == 1 {
			upvoteChange, downvoteChange = 1, -1
		} else {
			upvoteChange, downvoteChange = -1, 1
		}

	default:
		vote := &entity.PostVote{PostID: postID, UserID: userID, Value: value}
		vote.ID = uuid.NewString()
		if err := xcontext.DB(ctx).Create(vote).Error; err != nil {
			return nil, err
		}

		if value == 1 {
			upvoteChange = 1
		} else {
			downvoteChange = 1
		}
	}

	err = xcontext.DB(ctx).Model(&entity.Post{}).Where("id=?", postID).
		Updates(map[string]any{
			"upvotes":   gorm.Expr("upvotes + ?", upvoteChange),
			"downvotes": gorm.Expr("downvotes + ?", downvoteChange),
		}).Error
	if err != nil {
		return nil, err
	}

	var record entity.Post
	if err := xcontext.DB(ctx).Where("id=?", postID).Take(&record).Error; err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &record, nil
}

func (r *postRepository) GetVotesOfUser(
	ctx context.Context, userID string,
) (map[string]int, error) {
	if userID == "" {
		return map[string]int{}, nil
	}

	var votes []entity.PostVote
	err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&votes).Error
	if err != nil {
		return nil, err
	}

	result := map[string]int{}
	for _, vote := range votes {
		result[vote.PostID] = vote.Value
	}

	return result, nil
}
