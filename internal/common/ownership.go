package common

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/thready-lab/backend/pkg/errorx"
	"github.com/thready-lab/backend/pkg/pubsub"
	"github.com/thready-lab/backend/pkg/xcontext"
)

const securityEventsTopic = "security-events"

// ownerFields are the body fields a client could use to spoof authorship.
// Identity always comes from the token, never from the body.
var ownerFields = []string{"userId", "user_id", "user", "authorId", "author_id"}

// sanitizedFields excludes "user" because some clients still send the
// display name under that key; validation already rejected it as an owner
// override where it matters.
var sanitizedFields = []string{"userId", "user_id", "authorId", "author_id"}

type OwnershipGuard struct {
	publisher pubsub.Publisher
}

// NewOwnershipGuard creates a guard. The publisher may be nil, in which case
// denials are only logged.
func NewOwnershipGuard(publisher pubsub.Publisher) *OwnershipGuard {
	return &OwnershipGuard{publisher: publisher}
}

// CheckPost applies the lenient policy: rows imported without an owner
// (empty or "legacy") are modifiable by any authenticated user, everything
// else is owner-only.
func (g *OwnershipGuard) CheckPost(ctx context.Context, ownerID, postID string) error {
	owner := strings.TrimSpace(ownerID)
	if owner == "" || owner == "legacy" {
		return nil
	}

	callerID := xcontext.RequestUserID(ctx)
	if owner != callerID {
		g.reportDenial(ctx, "post", postID, owner, callerID)
		return errorx.New(errorx.PermissionDenied, "You can only modify your own posts")
	}

	return nil
}

// CheckComment applies the strict policy: comments without a verifiable
// owner are immutable for everyone.
func (g *OwnershipGuard) CheckComment(ctx context.Context, ownerID, commentID string) error {
	owner := strings.TrimSpace(ownerID)
	callerID := xcontext.RequestUserID(ctx)

	if owner == "" || owner == "legacy" || owner == "null" {
		g.reportDenial(ctx, "comment", commentID, owner, callerID)
		return errorx.New(errorx.PermissionDenied, "Comment ownership cannot be verified")
	}

	if owner != callerID {
		g.reportDenial(ctx, "comment", commentID, owner, callerID)
		return errorx.New(errorx.PermissionDenied, "You can only modify your own comments")
	}

	return nil
}

func (g *OwnershipGuard) reportDenial(
	ctx context.Context, resourceType, resourceID, ownerID, callerID string,
) {
	xcontext.Logger(ctx).Warnf(
		"unauthorized_access_attempt | type=%s id=%s owner=%s caller=%s",
		resourceType, resourceID, ownerID, callerID)

	if g.publisher == nil {
		return
	}

	event, err := json.Marshal(map[string]any{
		"type":                "unauthorized_access_attempt",
		"resourceType":        resourceType,
		"resourceId":          resourceID,
		"resourceUserId":      ownerID,
		"authenticatedUserId": callerID,
		"timestamp":           time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}

	err = g.publisher.Publish(ctx, securityEventsTopic, &pubsub.Pack{
		Key: []byte(callerID),
		Msg: event,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish the security event: %v", err)
	}
}

// ValidateOwnerFields rejects bodies that try to set an identity field.
func ValidateOwnerFields(body map[string]any) error {
	for _, field := range ownerFields {
		if value, ok := body[field]; ok && value != nil {
			return errorx.New(errorx.BadRequest,
				"User ID cannot be specified in request body (field: %s)", field)
		}
	}

	return nil
}

// SanitizeOwnerFields drops identity fields from the body as a second line
// of defense behind validation.
func SanitizeOwnerFields(body map[string]any) {
	for _, field := range sanitizedFields {
		delete(body, field)
	}
}
