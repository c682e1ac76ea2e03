// ABOUTME: Authentication endpoints: login, signup, logout, current session
// ABOUTME: Login is form-encoded and unauthenticated; the backend sets the refresh cookie

package api

import (
	"context"
	"net/http"
	"net/url"

	"medinsight-client/driver"
	"medinsight-client/models"
)

// AuthAPI wraps the /auth endpoints.
type AuthAPI struct {
	client *driver.Client
}

// NewAuthAPI creates the auth facade over client.
func NewAuthAPI(client *driver.Client) *AuthAPI {
	return &AuthAPI{client: client}
}

// Login exchanges credentials for an access token. The backend expects the
// email in the username form field.
func (a *AuthAPI) Login(ctx context.Context, creds models.Credentials) driver.Response[models.AuthResponse] {
	form := url.Values{
		"username": {creds.Email},
		"password": {creds.Password},
	}
	return driver.Do[models.AuthResponse](ctx, a.client, "/auth/login", driver.RequestOptions{
		Method:   http.MethodPost,
		Form:     form,
		SkipAuth: true,
	})
}

// Signup creates a new account.
func (a *AuthAPI) Signup(ctx context.Context, payload models.SignupPayload) driver.Response[models.AuthResponse] {
	return driver.Do[models.AuthResponse](ctx, a.client, "/auth/signup", driver.RequestOptions{
		Method:   http.MethodPost,
		JSON:     payload,
		SkipAuth: true,
	})
}

// Me fetches the profile attached to the current session.
func (a *AuthAPI) Me(ctx context.Context) driver.Response[models.User] {
	return driver.Get[models.User](ctx, a.client, "/users/aboutme")
}

// Logout tells the backend to drop the session. Callers must clear local
// state regardless of this call's outcome.
func (a *AuthAPI) Logout(ctx context.Context) driver.Response[struct{}] {
	return driver.Do[struct{}](ctx, a.client, "/auth/logout", driver.RequestOptions{
		Method: http.MethodPost,
	})
}
