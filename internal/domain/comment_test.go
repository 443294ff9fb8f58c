package domain

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thready-lab/backend/internal/entity"
	"github.com/thready-lab/backend/internal/model"
	"github.com/thready-lab/backend/internal/repository"
	"github.com/thready-lab/backend/pkg/errorx"
	"github.com/thready-lab/backend/pkg/pubsub"
	"github.com/thready-lab/backend/pkg/testutil"
)

func TestUpdateComment(t *testing.T) {
	ctx := testutil.MockContextWithUserID("caller")
	commentDomain := NewCommentDomain(repository.NewCommentRepository(), nil)

	owned, err := testutil.SampleComment(ctx, &entity.Comment{UserID: "caller"})
	require.NoError(t, err)

	id := strconv.FormatInt(owned.ID, 10)
	resp, err := commentDomain.Update(ctx, &model.UpdateCommentRequest{ID: id, Text: "edited"})
	require.NoError(t, err)
	require.Equal(t, "edited", resp.Text)
	require.Equal(t, id, resp.Comment.ID)

	_, err = commentDomain.Update(ctx, &model.UpdateCommentRequest{ID: id, Text: "   "})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = commentDomain.Update(ctx, &model.UpdateCommentRequest{ID: "not-a-number", Text: "x"})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = commentDomain.Update(ctx, &model.UpdateCommentRequest{ID: "12345", Text: "x"})
	requireErrorCode(t, err, errorx.NotFound)
}

func TestCommentStrictOwnership(t *testing.T) {
	ctx := testutil.MockContextWithUserID("caller")
	commentDomain := NewCommentDomain(repository.NewCommentRepository(), nil)

	// Unlike posts, comments without a verifiable owner are immutable.
	for _, owner := range []string{"legacy", "null", "   "} {
		comment, err := testutil.SampleComment(ctx, &entity.Comment{UserID: owner})
		require.NoError(t, err)

		id := strconv.FormatInt(comment.ID, 10)
		_, err = commentDomain.Update(ctx, &model.UpdateCommentRequest{ID: id, Text: "x"})
		requireErrorCode(t, err, errorx.PermissionDenied)

		_, err = commentDomain.Delete(ctx, &model.DeleteCommentRequest{ID: id})
		requireErrorCode(t, err, errorx.PermissionDenied)
	}

	foreign, err := testutil.SampleComment(ctx, &entity.Comment{UserID: "someone-else"})
	require.NoError(t, err)
	_, err = commentDomain.Delete(ctx,
		&model.DeleteCommentRequest{ID: strconv.FormatInt(foreign.ID, 10)})
	requireErrorCode(t, err, errorx.PermissionDenied)

	owned, err := testutil.SampleComment(ctx, &entity.Comment{UserID: "caller"})
	require.NoError(t, err)
	resp, err := commentDomain.Delete(ctx,
		&model.DeleteCommentRequest{ID: strconv.FormatInt(owned.ID, 10)})
	require.NoError(t, err)
	require.True(t, resp.Success)
}

func TestCommentDenialPublishesEvent(t *testing.T) {
	ctx := testutil.MockContextWithUserID("caller")

	var events []map[string]any
	publisher := &testutil.MockPublisher{
		PublishFunc: func(ctx context.Context, topic string, pack *pubsub.Pack) error {
			require.Equal(t, "security-events", topic)

			var event map[string]any
			require.NoError(t, json.Unmarshal(pack.Msg, &event))
			events = append(events, event)
			return nil
		},
	}

	commentDomain := NewCommentDomain(repository.NewCommentRepository(), publisher)

	foreign, err := testutil.SampleComment(ctx, &entity.Comment{UserID: "someone-else"})
	require.NoError(t, err)

	_, err = commentDomain.Delete(ctx,
		&model.DeleteCommentRequest{ID: strconv.FormatInt(foreign.ID, 10)})
	requireErrorCode(t, err, errorx.PermissionDenied)

	require.Len(t, events, 1)
	require.Equal(t, "unauthorized_access_attempt", events[0]["type"])
	require.Equal(t, "comment", events[0]["resourceType"])
	require.Equal(t, "someone-else", events[0]["resourceUserId"])
	require.Equal(t, "caller", events[0]["authenticatedUserId"])
}

func TestVoteComment(t *testing.T) {
	ctx := testutil.MockContextWithUserID("viewer")
	commentDomain := NewCommentDomain(repository.NewCommentRepository(), nil)

	comment, err := testutil.SampleComment(ctx, nil)
	require.NoError(t, err)
	id := strconv.FormatInt(comment.ID, 10)

	resp, err := commentDomain.Vote(ctx, &model.VoteCommentRequest{ID: id, Value: 1})
	require.NoError(t, err)
	require.Equal(t, 1, resp.DisplayedScore)
	require.Equal(t, 1, resp.UserVote)

	// Switching direction moves the displayed score by two.
	resp, err = commentDomain.Vote(ctx, &model.VoteCommentRequest{ID: id, Value: -1})
	require.NoError(t, err)
	require.Equal(t, -1, resp.DisplayedScore)
	require.Equal(t, -1, resp.UserVote)

	// Voting the same direction again toggles the vote off.
	resp, err = commentDomain.Vote(ctx, &model.VoteCommentRequest{ID: id, Value: -1})
	require.NoError(t, err)
	require.Equal(t, 0, resp.DisplayedScore)
	require.Equal(t, 0, resp.UserVote)

	_, err = commentDomain.Vote(ctx, &model.VoteCommentRequest{ID: id, Value: 2})
	requireErrorCode(t, err, errorx.BadRequest)
}
