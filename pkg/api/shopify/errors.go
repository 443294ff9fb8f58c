package shopify

import "fmt"

// TokenExchangeError keeps the provider's raw error body so the caller can
// log it. It must never reach the client.
type TokenExchangeError struct {
	StatusCode int
	Body       string
}

func (e *TokenExchangeError) Error() string {
	return fmt.Sprintf("token exchange failed: %d - %s", e.StatusCode, e.Body)
}

type ProfileFetchError struct {
	Reason     string
	StatusCode int
	Body       string
}

func (e *ProfileFetchError) Error() string {
	return fmt.Sprintf("cannot fetch customer profile (%s): %d - %s", e.Reason, e.StatusCode, e.Body)
}
