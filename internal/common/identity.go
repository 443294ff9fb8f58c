package common

import (
	"fmt"
	"strings"
)

const (
	// CommunityTagPrefix marks the provider tag carrying the community
	// assignment, e.g. "community:gaming".
	CommunityTagPrefix = "community:"

	// FallbackCommunityID is the seeded community every customer without
	// an explicit tag lands in.
	FallbackCommunityID = "the_bar_wardrobe"

	customerGIDPrefix = "gid://shopify/Customer/"
)

// NormalizeCustomerID strips the graphql gid prefix so the stored provider
// id is the bare customer number.
func NormalizeCustomerID(id string) string {
	return strings.TrimPrefix(id, customerGIDPrefix)
}

// Username derives a stable handle from the email local part plus the last
// five characters of the customer id. Customers without an email become
// "customer<id>_<suffix>".
func Username(email, customerID string) string {
	base := ""
	if at := strings.Index(email, "@"); at > 0 {
		base = email[:at]
	} else if email != "" {
		base = email
	}

	if base == "" {
		base = "customer" + customerID
	}

	base = strings.ToLower(base)
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return -1
	}, base)

	if base == "" {
		base = "customer" + customerID
	}

	suffix := customerID
	if len(suffix) > 5 {
		suffix = suffix[len(suffix)-5:]
	}

	return base + "_" + suffix
}

// AvatarColor maps a string to a deterministic hsl() color. The rolling hash
// is evaluated in 32-bit arithmetic so colors assigned by earlier versions
// of the product stay stable.
func AvatarColor(s string) string {
	var hash int32
	for _, r := range s {
		hash = int32(r) + (hash << 5) - hash
	}

	abs := int64(hash)
	if abs < 0 {
		abs = -abs
	}

	hue := abs % 360
	saturation := 60 + abs%20
	lightness := 45 + abs%15

	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hue, saturation, lightness)
}

// CommunityFromTags picks the community from the first prefixed tag, falling
// back to the default community.
func CommunityFromTags(tags []string) string {
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if strings.HasPrefix(tag, CommunityTagPrefix) {
			return strings.TrimPrefix(tag, CommunityTagPrefix)
		}
	}

	return FallbackCommunityID
}

// DisplayName prefers the customer's real name, falling back to the handle.
func DisplayName(firstName, lastName, username string) string {
	name := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if name != "" {
		return name
	}

	return username
}
