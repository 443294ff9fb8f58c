package model

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/thready-lab/backend/pkg/xcontext"
	"golang.org/x/net/publicsuffix"
)

// AppToken is the bearer token returned to the frontend after a successful
// login. It authorizes API calls.
type AppToken struct {
	ID                string `json:"id"`
	ShopifyCustomerID string `json:"shopify_customer_id"`
}

// SessionToken lives in the session cookie and keeps the provider identity
// without a database hit.
type SessionToken struct {
	CustomerID    string `json:"customer_id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	DisplayName   string `json:"display_name"`
	ProviderToken string `json:"provider_token"`
	IssuedAt      int64  `json:"issued_at"`
}

// Login
type LoginRequest struct {
	ReturnTo string `json:"returnTo"`
}

type LoginResponse struct {
	RedirectURL string `json:"-"`
}

func (r LoginResponse) RedirectInfo() (int, string) {
	return http.StatusTemporaryRedirect, r.RedirectURL
}

// Callback
type CallbackRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
	Error string `json:"error"`
}

type CallbackResponse struct {
	RedirectURL  string `json:"-"`
	SessionToken string `json:"-"`
}

func (r CallbackResponse) RedirectInfo() (int, string) {
	return http.StatusTemporaryRedirect, r.RedirectURL
}

func (r CallbackResponse) CookieInfo(ctx context.Context) []http.Cookie {
	if r.SessionToken == "" {
		return nil
	}

	expires := time.Now().Add(xcontext.Configs(ctx).Auth.SessionToken.Expiration.Std())
	return []http.Cookie{sessionCookie(ctx, r.SessionToken, expires)}
}

// Me
type MeRequest struct{}

type MeResponse struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`

	ClearSession bool `json:"-"`
}

func (r MeResponse) CookieInfo(ctx context.Context) []http.Cookie {
	if !r.ClearSession {
		return nil
	}

	return []http.Cookie{ClearedSessionCookie(ctx)}
}

// Refresh
type RefreshRequest struct{}

type RefreshResponse struct {
	ExpiresIn int `json:"expires_in"`

	SessionToken string `json:"-"`
}

func (r RefreshResponse) CookieInfo(ctx context.Context) []http.Cookie {
	if r.SessionToken == "" {
		return nil
	}

	expires := time.Now().Add(xcontext.Configs(ctx).Auth.SessionToken.Expiration.Std())
	return []http.Cookie{sessionCookie(ctx, r.SessionToken, expires)}
}

// Logout
type LogoutRequest struct{}

type LogoutResponse struct {
	Success bool `json:"success"`
}

func (r LogoutResponse) CookieInfo(ctx context.Context) []http.Cookie {
	return []http.Cookie{ClearedSessionCookie(ctx)}
}

func sessionCookie(ctx context.Context, value string, expires time.Time) http.Cookie {
	cfg := xcontext.Configs(ctx)
	return http.Cookie{
		Name:     cfg.Session.Name,
		Value:    value,
		Path:     "/",
		Domain:   rootDomain(cfg.Frontend.URL),
		Expires:  expires,
		Secure:   cfg.Session.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearedSessionCookie expires the session cookie immediately.
func ClearedSessionCookie(ctx context.Context) http.Cookie {
	cookie := sessionCookie(ctx, "", time.Unix(0, 0))
	cookie.MaxAge = -1
	return cookie
}

// rootDomain widens the cookie to the registrable domain so the api and
// frontend subdomains share the session. Localhost and raw IPs get no
// explicit domain.
func rootDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	host := u.Hostname()
	if host == "" || host == "localhost" || net.ParseIP(host) != nil {
		return ""
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}

	return "." + etld1
}
