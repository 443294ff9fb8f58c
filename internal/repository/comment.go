package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/thready-lab/backend/internal/entity"
	"github.com/thready-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, data *entity.Comment) error
	GetByID(ctx context.Context, id int64) (*entity.Comment, error)
	GetByPostIDs(ctx context.Context, postIDs []string) ([]entity.Comment, error)
	UpdateTextByID(ctx context.Context, id int64, text string) error
	DeleteByID(ctx context.Context, id int64) error
	Vote(ctx context.Context, commentID int64, userID string, value int) (*entity.Comment, error)
	GetVotesOfUser(ctx context.Context, userID string) (map[int64]int, error)
}

type commentRepository struct {
}

func NewCommentRepository() CommentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, data *entity.Comment) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*entity.Comment, error) {
	var record entity.Comment
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *commentRepository) GetByPostIDs(
	ctx context.Context, postIDs []string,
) ([]entity.Comment, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	var records []entity.Comment
	err := xcontext.DB(ctx).
		Where("post_id IN (?)", postIDs).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *commentRepository) UpdateTextByID(ctx context.Context, id int64, text string) error {
	return xcontext.DB(ctx).Model(&entity.Comment{}).Where("id=?", id).
		Update("text", text).Error
}

func (r *commentRepository) DeleteByID(ctx context.Context, id int64) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Comment{}).Error
}

// Vote mirrors the post toggle but tracks a single displayed score, so a
// switched vote moves it by two.
func (r *commentRepository) Vote(
	ctx context.Context, commentID int64, userID string, value int,
) (*entity.Comment, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	var existing entity.CommentVote
	err := xcontext.DB(ctx).
		Where("comment_id=? AND user_id=?", commentID, userID).
		Take(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var scoreChange int
	switch {
	case err == nil && existing.Value == value:
		if err := xcontext.DB(ctx).Unscoped().Delete(&existing).Error; err != nil {
			return nil, err
		}
		scoreChange = -value

	case err == nil:
		err := xcontext.DB(ctx).Model(&existing).Update("value", value).Error
		if err != nil {
			return nil, err
		}
		scoreChange = 2 * value

	default:
		vote := &entity.CommentVote{CommentID: commentID, UserID: userID, Value: value}
		vote.ID = uuid.NewString()
		if err := xcontext.DB(ctx).Create(vote).Error; err != nil {
			return nil, err
		}
		scoreChange = value
	}

	err = xcontext.DB(ctx).Model(&entity.Comment{}).Where("id=?", commentID).
		Update("displayed_score", gorm.Expr("displayed_score + ?", scoreChange)).Error
	if err != nil {
		return nil, err
	}

	var record entity.Comment
	if err := xcontext.DB(ctx).Where("id=?", commentID).Take(&record).Error; err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &record, nil
}

func (r *commentRepository) GetVotesOfUser(
	ctx context.Context, userID string,
) (map[int64]int, error) {
	if userID == "" {
		return map[int64]int{}, nil
	}

	var votes []entity.CommentVote
	err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&votes).Error
	if err != nil {
		return nil, err
	}

	result := map[int64]int{}
	for _, vote := range votes {
		result[vote.CommentID] = vote.Value
	}

	return result, nil
}
