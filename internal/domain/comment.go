package domain

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/thready-lab/backend/internal/common"
	"github.com/thready-lab/backend/internal/entity"
	"github.com/thready-lab/backend/internal/model"
	"github.com/thready-lab/backend/internal/repository"
	"github.com/thready-lab/backend/pkg/errorx"
	"github.com/thready-lab/backend/pkg/pubsub"
	"github.com/thready-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CommentDomain interface {
	Update(ctx context.Context, req *model.UpdateCommentRequest) (*model.UpdateCommentResponse, error)
	Delete(ctx context.Context, req *model.DeleteCommentRequest) (*model.DeleteCommentResponse, error)
	Vote(ctx context.Context, req *model.VoteCommentRequest) (*model.VoteCommentResponse, error)
}

type commentDomain struct {
	commentRepo repository.CommentRepository
	guard       *common.OwnershipGuard
}

func NewCommentDomain(
	commentRepo repository.CommentRepository,
	publisher pubsub.Publisher,
) CommentDomain {
	return &commentDomain{
		commentRepo: commentRepo,
		guard:       common.NewOwnershipGuard(publisher),
	}
}

func (d *commentDomain) Update(
	ctx context.Context, req *model.UpdateCommentRequest,
) (*model.UpdateCommentResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty comment")
	}

	comment, err := d.getComment(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.guard.CheckComment(ctx, comment.UserID, req.ID); err != nil {
		return nil, err
	}

	if err := d.commentRepo.UpdateTextByID(ctx, comment.ID, text); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update the comment: %v", err)
		return nil, errorx.Unknown
	}

	comment, err = d.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the updated comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateCommentResponse{
		Comment: model.ConvertComment(comment, d.voteOf(ctx, comment.ID)),
	}, nil
}

func (d *commentDomain) Delete(
	ctx context.Context, req *model.DeleteCommentRequest,
) (*model.DeleteCommentResponse, error) {
	comment, err := d.getComment(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.guard.CheckComment(ctx, comment.UserID, req.ID); err != nil {
		return nil, err
	}

	if err := d.commentRepo.DeleteByID(ctx, comment.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteCommentResponse{Success: true}, nil
}

func (d *commentDomain) Vote(
	ctx context.Context, req *model.VoteCommentRequest,
) (*model.VoteCommentResponse, error) {
	if req.Value != 1 && req.Value != -1 {
		return nil, errorx.New(errorx.BadRequest, "Vote value must be 1 or -1")
	}

	comment, err := d.getComment(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	comment, err = d.commentRepo.Vote(ctx, comment.ID, xcontext.RequestUserID(ctx), req.Value)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot vote for the comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.VoteCommentResponse{
		Comment: model.ConvertComment(comment, d.voteOf(ctx, comment.ID)),
	}, nil
}

func (d *commentDomain) getComment(ctx context.Context, id string) (*entity.Comment, error) {
	commentID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid comment id")
	}

	comment, err := d.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the comment: %v", err)
		return nil, errorx.Unknown
	}

	return comment, nil
}

func (d *commentDomain) voteOf(ctx context.Context, commentID int64) int {
	votes, err := d.commentRepo.GetVotesOfUser(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get comment votes of user: %v", err)
		return 0
	}

	return votes[commentID]
}
