package shopify

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/thready-lab/backend/config"
	"github.com/thready-lab/backend/pkg/api"
)

const defaultDomain = "https://shopify.com"

// TokenResponse is the provider's answer to a code exchange.
type TokenResponse struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	TokenType    string
	Scope        string
}

// Customer is the profile of the logged-in customer. Tags carry the
// community assignment, parsed from the "tags" metafield.
type Customer struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Tags      []string
}

type IEndpoint interface {
	AuthURL(state, nonce string) string
	ExchangeCode(ctx context.Context, code string) (TokenResponse, error)
	GetCustomer(ctx context.Context, accessToken string) (Customer, error)
}

type endpoint struct {
	cfg           config.ShopifyConfigs
	authGenerator api.Generator
	apiGenerator  api.Generator
}

func New(cfg config.ShopifyConfigs) *endpoint {
	authDomain := cfg.AuthDomain
	if authDomain == "" {
		authDomain = defaultDomain
	}

	apiDomain := cfg.APIDomain
	if apiDomain == "" {
		apiDomain = defaultDomain
	}

	return &endpoint{
		cfg:           cfg,
		authGenerator: api.NewGenerator(authDomain),
		apiGenerator:  api.NewGenerator(apiDomain),
	}
}

// AuthURL builds the customer account login URL. The redirect_uri must match
// the app settings at the provider exactly.
func (e *endpoint) AuthURL(state, nonce string) string {
	authDomain := e.cfg.AuthDomain
	if authDomain == "" {
		authDomain = defaultDomain
	}

	params := url.Values{}
	params.Set("client_id", e.cfg.ClientID)
	params.Set("redirect_uri", e.cfg.RedirectURI)
	params.Set("scope", "openid email customer-account-api:full")
	params.Set("response_type", "code")
	params.Set("state", state)
	params.Set("nonce", nonce)

	return fmt.Sprintf("%s/authentication/%s/login?%s", authDomain, e.cfg.ShopID, params.Encode())
}

func (e *endpoint) ExchangeCode(ctx context.Context, code string) (TokenResponse, error) {
	resp, err := e.authGenerator.New("/authentication/oauth/token").
		Body(api.Parameter{
			"grant_type":    "authorization_code",
			"client_id":     e.cfg.ClientID,
			"client_secret": e.cfg.ClientSecret,
			"code":          code,
			"redirect_uri":  e.cfg.RedirectURI,
		}).
		POST(ctx)
	if err != nil {
		return TokenResponse{}, err
	}

	if resp.Code != 200 {
		return TokenResponse{}, &TokenExchangeError{StatusCode: resp.Code, Body: string(resp.RawBody)}
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return TokenResponse{}, &TokenExchangeError{StatusCode: resp.Code, Body: string(resp.RawBody)}
	}

	accessToken, err := body.GetString("access_token")
	if err != nil || accessToken == "" {
		return TokenResponse{}, &TokenExchangeError{StatusCode: resp.Code, Body: string(resp.RawBody)}
	}

	token := TokenResponse{AccessToken: accessToken}
	token.RefreshToken, _ = body.GetString("refresh_token")
	token.ExpiresIn, _ = body.GetInt("expires_in")
	token.TokenType, _ = body.GetString("token_type")
	token.Scope, _ = body.GetString("scope")

	return token, nil
}

const customerQuery = `
query {
  customer {
    id
    emailAddress {
      emailAddress
    }
    firstName
    lastName
    metafields(first: 10) {
      nodes {
        key
        namespace
        value
        type
      }
    }
  }
}`

func (e *endpoint) GetCustomer(ctx context.Context, accessToken string) (Customer, error) {
	resp, err := e.apiGenerator.New("/%s/account/customer/api/2024-01/graphql", e.cfg.ShopDomain).
		Body(api.JSON{"query": customerQuery}).
		POST(ctx, api.OAuth2("Bearer", accessToken))
	if err != nil {
		return Customer{}, err
	}

	if resp.Code != 200 {
		return Customer{}, &ProfileFetchError{
			Reason:     "unexpected status",
			StatusCode: resp.Code,
			Body:       string(resp.RawBody),
		}
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return Customer{}, &ProfileFetchError{
			Reason:     "non-object response",
			StatusCode: resp.Code,
			Body:       string(resp.RawBody),
		}
	}

	if _, ok := body["errors"]; ok {
		return Customer{}, &ProfileFetchError{
			Reason:     "graphql errors",
			StatusCode: resp.Code,
			Body:       string(resp.RawBody),
		}
	}

	profile, err := body.GetJSON("data.customer")
	if err != nil || profile == nil {
		return Customer{}, &ProfileFetchError{
			Reason:     "missing customer",
			StatusCode: resp.Code,
			Body:       string(resp.RawBody),
		}
	}

	id, err := profile.GetString("id")
	if err != nil || id == "" {
		return Customer{}, &ProfileFetchError{
			Reason:     "missing customer id",
			StatusCode: resp.Code,
			Body:       string(resp.RawBody),
		}
	}

	customer := Customer{ID: id}
	customer.Email, _ = profile.GetString("emailAddress.emailAddress")
	customer.FirstName, _ = profile.GetString("firstName")
	customer.LastName, _ = profile.GetString("lastName")
	customer.Tags = parseMetafieldTags(profile)

	return customer, nil
}

// parseMetafieldTags collects tags from the "tags" metafield, a comma
// separated string mirrored from the admin customer record.
func parseMetafieldTags(profile api.JSON) []string {
	nodes, err := profile.GetArray("metafields.nodes")
	if err != nil {
		return nil
	}

	var tags []string
	for _, node := range nodes {
		m, ok := node.(map[string]any)
		if !ok {
			continue
		}

		if key, _ := api.JSON(m).GetString("key"); key != "tags" {
			continue
		}

		value, _ := api.JSON(m).GetString("value")
		for _, tag := range strings.Split(value, ",") {
			if tag := strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	return tags
}
