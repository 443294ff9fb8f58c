package domain

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thready-lab/backend/internal/common"
	"github.com/thready-lab/backend/internal/entity"
	"github.com/thready-lab/backend/internal/model"
	"github.com/thready-lab/backend/internal/repository"
	"github.com/thready-lab/backend/pkg/api/shopify"
	"github.com/thready-lab/backend/pkg/authenticator"
	"github.com/thready-lab/backend/pkg/crypto"
	"github.com/thready-lab/backend/pkg/errorx"
	"github.com/thready-lab/backend/pkg/statestore"
	"github.com/thready-lab/backend/pkg/xcontext"

	"github.com/google/uuid"
)

type AuthDomain interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Callback(ctx context.Context, req *model.CallbackRequest) (*model.CallbackResponse, error)
	Me(ctx context.Context, req *model.MeRequest) (*model.MeResponse, error)
	Refresh(ctx context.Context, req *model.RefreshRequest) (*model.RefreshResponse, error)
	Logout(ctx context.Context, req *model.LogoutRequest) (*model.LogoutResponse, error)
}

type authDomain struct {
	userRepo        repository.UserRepository
	stateStore      statestore.Store
	shopifyEndpoint shopify.IEndpoint
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	stateStore statestore.Store,
	shopifyEndpoint shopify.IEndpoint,
) AuthDomain {
	return &authDomain{
		userRepo:        userRepo,
		stateStore:      stateStore,
		shopifyEndpoint: shopifyEndpoint,
	}
}

// Login parks the return path under a fresh state token and redirects the
// client to the provider's login page.
func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	returnTo := req.ReturnTo
	if returnTo == "" || !strings.HasPrefix(returnTo, "/") {
		returnTo = "/"
	}

	state, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate the state token: %v", err)
		return nil, errorx.Unknown
	}

	nonce, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate the nonce: %v", err)
		return nil, errorx.Unknown
	}

	data := statestore.Data{Nonce: nonce, ReturnTo: returnTo, CreatedAt: time.Now()}
	if err := d.stateStore.Put(ctx, state, data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot store the login state: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{RedirectURL: d.shopifyEndpoint.AuthURL(state, nonce)}, nil
}

// Callback finishes the oauth dance. Every failure redirects back to the
// frontend with an error query instead of rendering an api error, because the
// browser is the caller here.
func (d *authDomain) Callback(
	ctx context.Context, req *model.CallbackRequest,
) (*model.CallbackResponse, error) {
	if req.Error != "" {
		xcontext.Logger(ctx).Warnf("The provider denied the login: %s", req.Error)
		return d.failureRedirect(ctx, "provider_denied"), nil
	}

	if req.Code == "" || req.State == "" {
		return d.failureRedirect(ctx, "missing_code"), nil
	}

	data, ok, err := d.stateStore.Get(ctx, req.State)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load the login state: %v", err)
		return d.failureRedirect(ctx, "auth_failed"), nil
	}

	if !ok {
		return d.failureRedirect(ctx, "invalid_state"), nil
	}

	// The state is single use, drop it before talking to the provider.
	if err := d.stateStore.Delete(ctx, req.State); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the login state: %v", err)
		return d.failureRedirect(ctx, "auth_failed"), nil
	}

	token, err := d.shopifyEndpoint.ExchangeCode(ctx, req.Code)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot exchange the code: %v", err)
		return d.failureRedirect(ctx, "auth_failed"), nil
	}

	customer, err := d.shopifyEndpoint.GetCustomer(ctx, token.AccessToken)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot fetch the customer profile: %v", err)
		return d.failureRedirect(ctx, "auth_failed"), nil
	}

	customerID := common.NormalizeCustomerID(customer.ID)
	username := common.Username(customer.Email, customerID)
	user, err := d.userRepo.Upsert(ctx, &entity.User{
		Base:              entity.Base{ID: uuid.NewString()},
		ShopifyCustomerID: customerID,
		Email:             customer.Email,
		FirstName:         customer.FirstName,
		LastName:          customer.LastName,
		Username:          username,
		AvatarColor:       common.AvatarColor(customerID),
		CommunityID:       common.CommunityFromTags(customer.Tags),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert the user: %v", err)
		return d.failureRedirect(ctx, "auth_failed"), nil
	}

	cfg := xcontext.Configs(ctx)
	engine := xcontext.TokenEngine(ctx)

	sessionToken, err := engine.Generate(
		authenticator.KindSession,
		cfg.Auth.SessionToken.Expiration.Std(),
		model.SessionToken{
			CustomerID:    customerID,
			Email:         customer.Email,
			FirstName:     customer.FirstName,
			LastName:      customer.LastName,
			DisplayName:   common.DisplayName(customer.FirstName, customer.LastName, username),
			ProviderToken: token.AccessToken,
			IssuedAt:      time.Now().Unix(),
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate the session token: %v", err)
		return d.failureRedirect(ctx, "auth_failed"), nil
	}

	appToken, err := engine.Generate(
		authenticator.KindApp,
		cfg.Auth.AppToken.Expiration.Std(),
		model.AppToken{ID: user.ID, ShopifyCustomerID: user.ShopifyCustomerID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate the app token: %v", err)
		return d.failureRedirect(ctx, "auth_failed"), nil
	}

	redirectURL := fmt.Sprintf("%s/auth/callback?token=%s&returnTo=%s",
		cfg.Frontend.URL, url.QueryEscape(appToken), url.QueryEscape(data.ReturnTo))

	return &model.CallbackResponse{
		RedirectURL:  redirectURL,
		SessionToken: sessionToken,
	}, nil
}

func (d *authDomain) failureRedirect(ctx context.Context, reason string) *model.CallbackResponse {
	return &model.CallbackResponse{
		RedirectURL: fmt.Sprintf("%s/auth/callback?error=%s",
			xcontext.Configs(ctx).Frontend.URL, url.QueryEscape(reason)),
	}
}

// Me reports the session cookie's identity. An invalid or stale cookie is not
// an error, the response just asks the browser to drop it.
func (d *authDomain) Me(ctx context.Context, req *model.MeRequest) (*model.MeResponse, error) {
	session, ok := d.sessionFromCookie(ctx)
	if !ok {
		return &model.MeResponse{Authenticated: false, ClearSession: d.hasSessionCookie(ctx)}, nil
	}

	user, err := d.userRepo.GetByShopifyCustomerID(ctx, session.CustomerID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot find the session user: %v", err)
		return &model.MeResponse{Authenticated: false, ClearSession: true}, nil
	}

	resp := &model.MeResponse{Authenticated: true}
	converted := model.ConvertUser(user)
	resp.User = &converted

	return resp, nil
}

// Refresh re-issues the session cookie with a fresh expiry. Unlike Me, an
// invalid cookie here is an error, but the cookie is still cleared so the
// client does not retry forever.
func (d *authDomain) Refresh(
	ctx context.Context, req *model.RefreshRequest,
) (*model.RefreshResponse, error) {
	session, ok := d.sessionFromCookie(ctx)
	if !ok {
		cookie := model.ClearedSessionCookie(ctx)
		http.SetCookie(xcontext.HTTPWriter(ctx), &cookie)
		return nil, errorx.New(errorx.Unauthenticated, "No valid session")
	}

	cfg := xcontext.Configs(ctx)
	session.IssuedAt = time.Now().Unix()
	sessionToken, err := xcontext.TokenEngine(ctx).Generate(
		authenticator.KindSession, cfg.Auth.SessionToken.Expiration.Std(), session)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot re-issue the session token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RefreshResponse{
		ExpiresIn:    int(cfg.Auth.SessionToken.Expiration.Std().Seconds()),
		SessionToken: sessionToken,
	}, nil
}

func (d *authDomain) Logout(
	ctx context.Context, req *model.LogoutRequest,
) (*model.LogoutResponse, error) {
	return &model.LogoutResponse{Success: true}, nil
}

func (d *authDomain) sessionFromCookie(ctx context.Context) (model.SessionToken, bool) {
	r := xcontext.HTTPRequest(ctx)
	if r == nil {
		return model.SessionToken{}, false
	}

	cookie, err := r.Cookie(xcontext.Configs(ctx).Session.Name)
	if err != nil || cookie.Value == "" {
		return model.SessionToken{}, false
	}

	var session model.SessionToken
	err = xcontext.TokenEngine(ctx).Verify(authenticator.KindSession, cookie.Value, &session)
	if err != nil {
		return model.SessionToken{}, false
	}

	return session, true
}

func (d *authDomain) hasSessionCookie(ctx context.Context) bool {
	r := xcontext.HTTPRequest(ctx)
	if r == nil {
		return false
	}

	_, err := r.Cookie(xcontext.Configs(ctx).Session.Name)
	return err == nil
}
