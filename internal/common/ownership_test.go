package common

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thready-lab/backend/pkg/errorx"
	"github.com/thready-lab/backend/pkg/xcontext"
)

func callerContext(userID string) context.Context {
	ctx := xcontext.WithRequestScope(context.Background())
	xcontext.SetRequestUserID(ctx, userID)
	return ctx
}

func TestCheckPostLenient(t *testing.T) {
	guard := NewOwnershipGuard(nil)
	ctx := callerContext("user-1")

	require.NoError(t, guard.CheckPost(ctx, "user-1", "post-1"))
	require.NoError(t, guard.CheckPost(ctx, "", "post-1"))
	require.NoError(t, guard.CheckPost(ctx, "legacy", "post-1"))

	err := guard.CheckPost(ctx, "user-2", "post-1")
	require.Error(t, err)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}

func TestCheckCommentStrict(t *testing.T) {
	guard := NewOwnershipGuard(nil)
	ctx := callerContext("user-1")

	require.NoError(t, guard.CheckComment(ctx, "user-1", "1"))

	// Unverifiable owners are immutable even for the caller itself.
	require.Error(t, guard.CheckComment(ctx, "", "1"))
	require.Error(t, guard.CheckComment(ctx, "legacy", "1"))
	require.Error(t, guard.CheckComment(ctx, "null", "1"))
	require.Error(t, guard.CheckComment(ctx, "  ", "1"))

	err := guard.CheckComment(ctx, "user-2", "1")
	require.Error(t, err)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}

func TestValidateOwnerFields(t *testing.T) {
	require.NoError(t, ValidateOwnerFields(map[string]any{"title": "hello"}))
	require.NoError(t, ValidateOwnerFields(map[string]any{"userId": nil}))

	for _, field := range []string{"userId", "user_id", "user", "authorId", "author_id"} {
		err := ValidateOwnerFields(map[string]any{field: "user-2"})
		require.Error(t, err, field)

		var errx errorx.Error
		require.ErrorAs(t, err, &errx)
		require.Equal(t, errorx.BadRequest, errx.Code)
	}
}

func TestSanitizeOwnerFields(t *testing.T) {
	body := map[string]any{
		"title":     "hello",
		"userId":    "user-2",
		"user_id":   "user-2",
		"authorId":  "user-2",
		"author_id": "user-2",
		"user":      "Display Name",
	}

	SanitizeOwnerFields(body)

	require.Equal(t, "hello", body["title"])
	require.NotContains(t, body, "userId")
	require.NotContains(t, body, "user_id")
	require.NotContains(t, body, "authorId")
	require.NotContains(t, body, "author_id")

	// The display name key is left in place.
	require.Contains(t, body, "user")
}
