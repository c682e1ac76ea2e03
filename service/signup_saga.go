// ABOUTME: Multi-step signup flow: account, organization, preferences, link
// ABOUTME: Only account creation aborts; later steps degrade to warnings

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"medinsight-client/api"
	"medinsight-client/driver"
	"medinsight-client/models"
)

// SagaState names the step the signup flow is in.
type SagaState string

const (
	SagaIdle                  SagaState = "idle"
	SagaCreatingAccount       SagaState = "creating_account"
	SagaResolvingOrganization SagaState = "resolving_organization"
	SagaSavingPreferences     SagaState = "saving_preferences"
	SagaLinkingOrganization   SagaState = "linking_organization"
	SagaComplete              SagaState = "complete"
	SagaAborted               SagaState = "aborted"
)

const (
	defaultRedirectDelay = 1500 * time.Millisecond
	dashboardPath        = "/dashboard"
)

// SignupInput carries everything the signup form collected.
type SignupInput struct {
	Account      models.SignupPayload
	Organization models.OrganizationSelection
	Preferences  models.UserPreferences
}

// SignupResult reports how the flow ended. Warnings list the optional steps
// that failed; Err is set only when account creation itself failed.
type SignupResult struct {
	SagaID         string
	State          SagaState
	OrganizationID *int64
	Warnings       []string
	Err            string
}

// SignupSaga runs the signup steps in order. A fresh saga is created per
// signup attempt; instances are not reusable.
type SignupSaga struct {
	manager       *SessionManager
	orgs          *api.OrganizationsAPI
	users         *api.UsersAPI
	nav           driver.Navigator
	notifier      Notifier
	logger        *slog.Logger
	redirectDelay time.Duration
}

// NewSignupSaga builds a saga over the session manager's client. notifier
// and logger fall back to no-ops when nil.
func NewSignupSaga(manager *SessionManager, notifier Notifier, logger *slog.Logger) *SignupSaga {
	if notifier == nil {
		notifier = NoOpNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	client := manager.client
	return &SignupSaga{
		manager:       manager,
		orgs:          api.NewOrganizationsAPI(client),
		users:         api.NewUsersAPI(client),
		nav:           manager.nav,
		notifier:      notifier,
		logger:        logger,
		redirectDelay: defaultRedirectDelay,
	}
}

// SetRedirectDelay overrides the pause before the post-signup navigation.
func (s *SignupSaga) SetRedirectDelay(d time.Duration) {
	s.redirectDelay = d
}

// Run executes the flow. Account creation is the only step that can abort;
// everything after it completes the saga no matter what, collecting
// warnings for the steps that failed.
func (s *SignupSaga) Run(ctx context.Context, input SignupInput) SignupResult {
	result := SignupResult{SagaID: uuid.New().String(), State: SagaCreatingAccount}
	s.logger.Info("signup started", "saga_id", result.SagaID, "email", input.Account.Email)

	if !s.manager.Signup(ctx, input.Account) {
		result.State = SagaAborted
		result.Err = s.manager.LastError()
		// A token may have been stored before the follow-up profile fetch
		// failed; a half-established session must not linger.
		s.manager.client.Tokens().Clear(ctx)
		s.logger.Warn("signup aborted at account creation",
			"saga_id", result.SagaID, "error", result.Err)
		s.notifier.Error(result.Err, "Signup failed")
		return result
	}

	result.State = SagaResolvingOrganization
	orgID, warning := s.resolveOrganization(ctx, input.Organization)
	result.OrganizationID = orgID
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
		s.notifier.Warning(warning, "Signup")
	}

	result.State = SagaSavingPreferences
	if warning := s.savePreferences(ctx, input.Preferences); warning != "" {
		result.Warnings = append(result.Warnings, warning)
		s.notifier.Warning(warning, "Signup")
	}

	if orgID != nil {
		result.State = SagaLinkingOrganization
		if warning := s.linkOrganization(ctx, *orgID); warning != "" {
			result.Warnings = append(result.Warnings, warning)
			s.notifier.Warning(warning, "Signup")
		}
	}

	result.State = SagaComplete
	s.logger.Info("signup complete",
		"saga_id", result.SagaID, "warnings", len(result.Warnings))
	s.notifier.Info("Signup successful! Redirecting...", "Welcome!")
	time.AfterFunc(s.redirectDelay, func() {
		s.nav.NavigateTo(dashboardPath)
	})
	return result
}

// resolveOrganization finds or creates the organization named in the
// selection. Failures never abort the signup; the user ends up without an
// organization and can link one later.
func (s *SignupSaga) resolveOrganization(ctx context.Context, sel models.OrganizationSelection) (*int64, string) {
	if strings.TrimSpace(sel.Name) == "" {
		return nil, ""
	}
	if sel.IsNew() {
		resp := s.orgs.Create(ctx, models.CreateOrganizationPayload{
			Name:        sel.Name,
			Province:    sel.Province,
			Description: sel.Description,
		})
		if resp.OK() {
			return &resp.Data.ID, ""
		}
		if resp.Status == 400 {
			return nil, fmt.Sprintf("Organization %q already exists in %s", sel.Name, sel.Province)
		}
		s.logger.Warn("organization creation failed", "status", resp.Status, "error", resp.Err)
		return nil, fmt.Sprintf("Could not create organization %q", sel.Name)
	}
	resp := s.orgs.SearchByName(ctx, sel.Name)
	if resp.OK() {
		for _, org := range *resp.Data {
			if org.Name == sel.Name {
				id := org.ID
				return &id, ""
			}
		}
	}
	return nil, fmt.Sprintf("Could not find organization %q", sel.Name)
}

func (s *SignupSaga) savePreferences(ctx context.Context, prefs models.UserPreferences) string {
	if len(prefs.TherapeuticAreas) == 0 && strings.TrimSpace(prefs.NewsPreferences) == "" {
		return ""
	}
	if resp := s.users.SavePreferences(ctx, prefs); !resp.OK() {
		s.logger.Warn("preferences save failed", "status", resp.Status, "error", resp.Err)
		return "Failed to save preferences"
	}
	return ""
}

func (s *SignupSaga) linkOrganization(ctx context.Context, orgID int64) string {
	resp := s.users.UpdateUser(ctx, models.UserUpdatePayload{OrganizationID: &orgID})
	if !resp.OK() {
		s.logger.Warn("organization link failed", "status", resp.Status, "error", resp.Err)
		return "Failed to link to organization"
	}
	s.manager.setAuthenticated(resp.Data)
	return ""
}
