package api

import (
	"context"
	"net/http"

	"medinsight-client/driver"
	"medinsight-client/models"
)

// UsersAPI wraps the /users endpoints.
type UsersAPI struct {
	client *driver.Client
}

// NewUsersAPI creates the users facade over client.
func NewUsersAPI(client *driver.Client) *UsersAPI {
	return &UsersAPI{client: client}
}

// CurrentUser fetches the authenticated user's profile.
func (u *UsersAPI) CurrentUser(ctx context.Context) driver.Response[models.User] {
	return driver.Get[models.User](ctx, u.client, "/users/aboutme")
}

// UpdateUser applies a partial profile update and drops stale profile reads
// from the cache.
func (u *UsersAPI) UpdateUser(ctx context.Context, payload models.UserUpdatePayload) driver.Response[models.User] {
	resp := driver.Do[models.User](ctx, u.client, "/users/aboutme", driver.RequestOptions{
		Method: http.MethodPatch,
		JSON:   payload,
	})
	if resp.OK() {
		u.client.InvalidateCache("/users/aboutme")
	}
	return resp
}

// SavePreferences stores therapeutic area selections and the free-text
// news preference.
func (u *UsersAPI) SavePreferences(ctx context.Context, prefs models.UserPreferences) driver.Response[models.UserPreferences] {
	resp := driver.Do[models.UserPreferences](ctx, u.client, "/users/preferences", driver.RequestOptions{
		Method: http.MethodPost,
		JSON:   prefs,
	})
	if resp.OK() {
		u.client.InvalidateCache("/users/preferences")
	}
	return resp
}

// Preferences fetches the stored preferences.
func (u *UsersAPI) Preferences(ctx context.Context) driver.Response[models.UserPreferences] {
	return driver.Get[models.UserPreferences](ctx, u.client, "/users/preferences")
}

// DeleteAccount removes the authenticated user's own account.
func (u *UsersAPI) DeleteAccount(ctx context.Context) driver.Response[struct{}] {
	return driver.Do[struct{}](ctx, u.client, "/users/aboutme", driver.RequestOptions{
		Method: http.MethodDelete,
	})
}
