// ABOUTME: This file defines domain models for users and authentication
// ABOUTME: Mirrors the backend /auth and /users request and response shapes

package models

// User represents an authenticated user account.
type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	OrganizationID *int64 `json:"organization_id,omitempty"`
}

// AuthResponse is returned by the login and signup endpoints. The user
// object may be absent, in which case callers fall back to a profile fetch.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user,omitempty"`
}

// Credentials carries login form values. The backend expects them
// form-encoded as username/password.
type Credentials struct {
	Email    string
	Password string
}

// SignupPayload is the JSON body for account creation.
type SignupPayload struct {
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Password       string `json:"password"`
	OrganizationID *int64 `json:"organization_id,omitempty"`
}

// UserUpdatePayload carries partial profile updates for PATCH /users/aboutme.
type UserUpdatePayload struct {
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	OrganizationID *int64 `json:"organization_id,omitempty"`
}

// UserPreferences holds therapeutic area selections and the free-text
// news preference saved during signup.
type UserPreferences struct {
	TherapeuticAreas []string `json:"therapeutic_areas"`
	NewsPreferences  string   `json:"news_preferences"`
}
