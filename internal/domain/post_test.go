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

func newPostDomain() PostDomain {
	return NewPostDomain(
		repository.NewPostRepository(),
		repository.NewCommentRepository(),
		repository.NewCommunityRepository(),
		repository.NewUserRepository(),
		nil)
}

func TestCreatePost(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	xcontext.SetRequestUserID(ctx, user.ID)

	community, err := testutil.SampleCommunity(ctx, nil)
	require.NoError(t, err)

	postDomain := newPostDomain()
	resp, err := postDomain.Create(ctx, &model.CreatePostRequest{
		CommunityID: community.ID,
		Title:       "First post",
		Content:     "Hello",
	})
	require.NoError(t, err)
	require.Equal(t, community.ID, resp.Community)
	require.Equal(t, user.ID, resp.UserID)
	require.Equal(t, user.Username, resp.User)
	require.Equal(t, user.AvatarColor, resp.Avatar)
	require.Equal(t, 0, resp.Comments)

	_, err = postDomain.Create(ctx, &model.CreatePostRequest{
		CommunityID: community.ID,
		Title:       "   ",
	})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = postDomain.Create(ctx, &model.CreatePostRequest{
		CommunityID: "unknown",
		Title:       "A title",
	})
	requireErrorCode(t, err, errorx.NotFound)
}

func TestGetPosts(t *testing.T) {
	ctx := testutil.MockContext()

	first, err := testutil.SamplePost(ctx, &entity.Post{CommunityID: "gaming"})
	require.NoError(t, err)
	_, err = testutil.SamplePost(ctx, &entity.Post{CommunityID: "books"})
	require.NoError(t, err)

	_, err = testutil.SampleComment(ctx, &entity.Comment{PostID: first.ID})
	require.NoError(t, err)

	postDomain := newPostDomain()
	resp, err := postDomain.GetList(ctx, &model.GetPostsRequest{Community: "gaming"})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	require.Equal(t, first.ID, resp.Posts[0].ID)
	require.Equal(t, 1, resp.Posts[0].Comments)
	require.Len(t, resp.Posts[0].CommentsList, 1)
	require.Equal(t, 0, resp.Posts[0].UserVote)

	all, err := postDomain.GetList(ctx, &model.GetPostsRequest{})
	require.NoError(t, err)
	require.Len(t, all.Posts, 2)
}

func TestVotePost(t *testing.T) {
	ctx := testutil.MockContextWithUserID("viewer")
	post, err := testutil.SamplePost(ctx, nil)
	require.NoError(t, err)

	postDomain := newPostDomain()

	resp, err := postDomain.Vote(ctx, &model.VotePostRequest{ID: post.ID, Value: 1})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Upvotes)
	require.Equal(t, 0, resp.Downvotes)
	require.Equal(t, 1, resp.UserVote)

	// Same direction again toggles the vote off.
	resp, err = postDomain.Vote(ctx, &model.VotePostRequest{ID: post.ID, Value: 1})
	require.NoError(t, err)
	require.Equal(t, 0, resp.Upvotes)
	require.Equal(t, 0, resp.UserVote)

	// Up then down flips both counters.
	_, err = postDomain.Vote(ctx, &model.VotePostRequest{ID: post.ID, Value: 1})
	require.NoError(t, err)
	resp, err = postDomain.Vote(ctx, &model.VotePostRequest{ID: post.ID, Value: -1})
	require.NoError(t, err)
	require.Equal(t, 0, resp.Upvotes)
	require.Equal(t, 1, resp.Downvotes)
	require.Equal(t, -1, resp.UserVote)

	_, err = postDomain.Vote(ctx, &model.VotePostRequest{ID: post.ID, Value: 0})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = postDomain.Vote(ctx, &model.VotePostRequest{ID: "unknown", Value: 1})
	requireErrorCode(t, err, errorx.NotFound)
}

func TestUpdatePostOwnership(t *testing.T) {
	ctx := testutil.MockContextWithUserID("caller")
	postDomain := newPostDomain()

	newTitle := "Renamed"

	// The caller owns this post.
	owned, err := testutil.SamplePost(ctx, &entity.Post{UserID: "caller"})
	require.NoError(t, err)
	resp, err := postDomain.Update(ctx, &model.UpdatePostRequest{ID: owned.ID, Title: &newTitle})
	require.NoError(t, err)
	require.Equal(t, "Renamed", resp.Title)
	require.Equal(t, owned.Content, resp.Content)

	// Legacy rows without a real owner are open to any authenticated user.
	legacy, err := testutil.SamplePost(ctx, &entity.Post{UserID: "legacy"})
	require.NoError(t, err)
	_, err = postDomain.Update(ctx, &model.UpdatePostRequest{ID: legacy.ID, Title: &newTitle})
	require.NoError(t, err)

	unowned := &entity.Post{Base: entity.Base{ID: "unowned"}, Title: "t"}
	require.NoError(t, repository.NewPostRepository().Create(ctx, unowned))
	_, err = postDomain.Update(ctx, &model.UpdatePostRequest{ID: unowned.ID, Title: &newTitle})
	require.NoError(t, err)

	// Posts of another user stay protected.
	foreign, err := testutil.SamplePost(ctx, &entity.Post{UserID: "someone-else"})
	require.NoError(t, err)
	_, err = postDomain.Update(ctx, &model.UpdatePostRequest{ID: foreign.ID, Title: &newTitle})
	requireErrorCode(t, err, errorx.PermissionDenied)
}

func TestDeletePostOwnership(t *testing.T) {
	ctx := testutil.MockContextWithUserID("caller")
	postDomain := newPostDomain()

	legacy, err := testutil.SamplePost(ctx, &entity.Post{UserID: "legacy"})
	require.NoError(t, err)
	resp, err := postDomain.Delete(ctx, &model.DeletePostRequest{ID: legacy.ID})
	require.NoError(t, err)
	require.True(t, resp.Success)

	foreign, err := testutil.SamplePost(ctx, &entity.Post{UserID: "someone-else"})
	require.NoError(t, err)
	_, err = postDomain.Delete(ctx, &model.DeletePostRequest{ID: foreign.ID})
	requireErrorCode(t, err, errorx.PermissionDenied)

	_, err = postDomain.Delete(ctx, &model.DeletePostRequest{ID: "unknown"})
	requireErrorCode(t, err, errorx.NotFound)
}

func TestAddComment(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	xcontext.SetRequestUserID(ctx, user.ID)

	post, err := testutil.SamplePost(ctx, nil)
	require.NoError(t, err)

	postDomain := newPostDomain()
	resp, err := postDomain.AddComment(ctx, &model.AddCommentRequest{
		ID:   post.ID,
		Text: "  nice post  ",
	})
	require.NoError(t, err)
	require.Equal(t, post.ID, resp.PostID)
	require.Equal(t, user.ID, resp.UserID)
	require.Equal(t, "nice post", resp.Text)
	require.Equal(t, 0, resp.DisplayedScore)
	require.NotEmpty(t, resp.ID)

	_, err = postDomain.AddComment(ctx, &model.AddCommentRequest{ID: post.ID, Text: "   "})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = postDomain.AddComment(ctx, &model.AddCommentRequest{ID: "unknown", Text: "hi"})
	requireErrorCode(t, err, errorx.NotFound)
}

func requireErrorCode(t *testing.T, err error, code errorx.Code) {
	t.Helper()
	require.Error(t, err)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, code, errx.Code)
}
