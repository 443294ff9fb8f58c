package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUsername(t *testing.T) {
	testcases := []struct {
		name       string
		email      string
		customerID string
		expected   string
	}{
		{
			name:       "simple email",
			email:      "jane@example.com",
			customerID: "7890012345",
			expected:   "jane_12345",
		},
		{
			name:       "email with dots and case",
			email:      "Jane.Doe+shop@example.com",
			customerID: "7890012345",
			expected:   "janedoeshop_12345",
		},
		{
			name:       "no email",
			email:      "",
			customerID: "42",
			expected:   "customer42_42",
		},
		{
			name:       "email local part filters to nothing",
			email:      "----@example.com",
			customerID: "7890012345",
			expected:   "customer7890012345_12345",
		},
		{
			name:       "underscores survive",
			email:      "jane_doe@example.com",
			customerID: "98765",
			expected:   "jane_doe_98765",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, Username(tc.email, tc.customerID))
		})
	}
}

func TestNormalizeCustomerID(t *testing.T) {
	require.Equal(t, "7890012345", NormalizeCustomerID("gid://shopify/Customer/7890012345"))
	require.Equal(t, "7890012345", NormalizeCustomerID("7890012345"))
}

func TestAvatarColorDeterministic(t *testing.T) {
	first := AvatarColor("7890012345")
	second := AvatarColor("7890012345")
	require.Equal(t, first, second)

	require.NotEqual(t, AvatarColor("7890012345"), AvatarColor("7890012346"))
}

func TestAvatarColorFormat(t *testing.T) {
	require.Regexp(t, `^hsl\(\d+, \d+%, \d+%\)$`, AvatarColor("7890012345"))

	// Known value pinned so the hash arithmetic never drifts. "a" hashes
	// to 97, so hue=97, saturation=60+97%20=77, lightness=45+97%15=52.
	require.Equal(t, "hsl(97, 77%, 52%)", AvatarColor("a"))
}

func TestCommunityFromTags(t *testing.T) {
	require.Equal(t, "gaming", CommunityFromTags([]string{"vip", "community:gaming"}))
	require.Equal(t, "gaming", CommunityFromTags([]string{" community:gaming ", "community:other"}))
	require.Equal(t, FallbackCommunityID, CommunityFromTags([]string{"vip"}))
	require.Equal(t, FallbackCommunityID, CommunityFromTags(nil))
}

func TestDisplayName(t *testing.T) {
	require.Equal(t, "Jane Doe", DisplayName("Jane", "Doe", "jane_12345"))
	require.Equal(t, "Jane", DisplayName("Jane", "", "jane_12345"))
	require.Equal(t, "jane_12345", DisplayName("", "", "jane_12345"))
}
