// Package session owns the process-wide authenticated identity: the bearer
// credential, the current user and the restoring/anonymous/authenticated
// state machine.
package session

import (
	"context"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"taskflow/internal/config"
	"taskflow/internal/service"
)

// Status is the session state.
type Status string

// Session states. The machine moves restoring -> anonymous|authenticated,
// anonymous -> authenticated (login) and authenticated -> anonymous (logout
// or credential invalidation).
const (
	StatusRestoring     Status = "restoring"
	StatusAnonymous     Status = "anonymous"
	StatusAuthenticated Status = "authenticated"
)

// Route names a navigation target signalled to the presentation layer.
type Route string

// Navigation targets.
const (
	RouteLogin     Route = "login"
	RouteDashboard Route = "dashboard"
)

// NavigateFunc receives navigation signals. The session only signals; it
// never renders anything itself.
type NavigateFunc func(Route)

// DefaultResetRedirectDelay is the pause between a successful password reset
// and the navigation signal to the login entry point.
const DefaultResetRedirectDelay = 2 * time.Second

// Session is the process-wide authentication state. Exactly one exists per
// running client; components that need identity receive it explicitly.
type Session struct {
	api      service.API
	cfg      *config.Config
	navigate NavigateFunc

	// ResetRedirectDelay delays the post-reset navigation signal.
	// Tests set it to zero.
	ResetRedirectDelay time.Duration

	status Status
	user   *service.User
}

// TokenSetter is the credential surface of the API gateway that the session
// drives: install on login/restore, drop on logout.
type TokenSetter interface {
	SetToken(token string)
	ClearToken()
}

// New creates a Session in the restoring state. navigate may be nil.
func New(api service.API, cfg *config.Config, navigate NavigateFunc) *Session {
	return &Session{
		api:                api,
		cfg:                cfg,
		navigate:           navigate,
		ResetRedirectDelay: DefaultResetRedirectDelay,
		status:             StatusRestoring,
	}
}

// Status returns the current session state.
func (s *Session) Status() Status { return s.status }

// User returns the authenticated user. The second result is false unless the
// session is authenticated; user presence and authenticated state always
// agree.
func (s *Session) User() (service.User, bool) {
	if s.user == nil {
		return service.User{}, false
	}
	return *s.user, true
}

func (s *Session) signal(r Route) {
	if s.navigate != nil {
		s.navigate(r)
	}
}

// Restore establishes the session from the persisted credential, once at
// process start. It never returns an error: any failure discards the
// credential and lands in the anonymous state.
func (s *Session) Restore(ctx context.Context) {
	if !s.cfg.HasToken() {
		s.status = StatusAnonymous
		return
	}

	if setter, ok := s.api.(TokenSetter); ok {
		if token, err := s.cfg.LoadToken(); err == nil {
			setter.SetToken(token.AccessToken)
		}
	}

	user, err := s.api.Profile(ctx)
	if err != nil {
		s.discardCredential()
		s.status = StatusAnonymous
		return
	}

	s.user = &user
	s.status = StatusAuthenticated
}

// Login submits credentials. On success the returned token is persisted, the
// user is set, the session becomes authenticated and navigation to the main
// view is signalled. On failure the state is left as it was and the error is
// returned for display.
func (s *Session) Login(ctx context.Context, email, password string) error {
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	creds, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	token := &oauth2.Token{AccessToken: creds.Token, TokenType: "Bearer"}
	if err := s.cfg.SaveToken(token); err != nil {
		return err
	}
	if setter, ok := s.api.(TokenSetter); ok {
		setter.SetToken(creds.Token)
	}

	s.user = &creds.User
	s.status = StatusAuthenticated
	s.signal(RouteDashboard)
	return nil
}

// Register submits a registration. It does not authenticate the caller; on
// success it signals navigation to the login entry point.
func (s *Session) Register(ctx context.Context, name, email, password string) error {
	if err := validateRegistration(name, email, password); err != nil {
		return err
	}
	if err := s.api.Register(ctx, name, email, password); err != nil {
		return err
	}
	s.signal(RouteLogin)
	return nil
}

// UpdateProfile replaces mutable profile fields on the server and refreshes
// the cached user.
func (s *Session) UpdateProfile(ctx context.Context, name string) (service.User, error) {
	if strings.TrimSpace(name) == "" {
		return service.User{}, &service.ValidationError{Fields: []string{"name"}}
	}
	user, err := s.api.UpdateProfile(ctx, name)
	if err != nil {
		return service.User{}, err
	}
	s.user = &user
	return user, nil
}

// RequestPasswordReset submits an out-of-band reset request and returns the
// server's confirmation message. Whether the email exists is a server-side
// policy; the message is relayed as-is.
func (s *Session) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", &service.ValidationError{Fields: []string{"email"}}
	}
	return s.api.RequestPasswordReset(ctx, email)
}

// CompletePasswordReset submits the new password keyed by a one-time token.
// On success it signals navigation to login after a short delay; on failure
// the error is returned without delay.
func (s *Session) CompletePasswordReset(ctx context.Context, resetToken, newPassword string) (string, error) {
	if newPassword == "" {
		return "", &service.ValidationError{Fields: []string{"password"}}
	}

	msg, err := s.api.CompletePasswordReset(ctx, resetToken, newPassword)
	if err != nil {
		return "", err
	}

	if s.ResetRedirectDelay > 0 {
		select {
		case <-time.After(s.ResetRedirectDelay):
		case <-ctx.Done():
		}
	}
	s.signal(RouteLogin)
	return msg, nil
}

// Logout discards the credential, clears the user and signals navigation to
// the login entry point. Calling it while already anonymous is a no-op other
// than the navigation signal.
func (s *Session) Logout() {
	s.discardCredential()
	s.user = nil
	s.status = StatusAnonymous
	s.signal(RouteLogin)
}

func (s *Session) discardCredential() {
	_ = s.cfg.RemoveToken()
	if setter, ok := s.api.(TokenSetter); ok {
		setter.ClearToken()
	}
}

func validateCredentials(email, password string) error {
	var missing []string
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return &service.ValidationError{Fields: missing}
	}
	return nil
}

func validateRegistration(name, email, password string) error {
	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return &service.ValidationError{Fields: missing}
	}
	return nil
}
