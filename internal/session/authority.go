package session

import (
	"context"
	"sync"
	"time"

	"github.com/wardenhq/wardenctl/internal/access"
	"github.com/wardenhq/wardenctl/internal/log"
	"github.com/wardenhq/wardenctl/internal/platform"
)

// API is the subset of the platform client the authority drives.
type API interface {
	Login(ctx context.Context, usernameOrEmail, password string) (*platform.TokenPair, error)
	CurrentUser(ctx context.Context) (*platform.Profile, error)
	Refresh(ctx context.Context, refreshToken string) (*platform.TokenPair, error)
	SetToken(token string)
}

// ExpirySignal is the transport's out-of-band token-expired notification.
type ExpirySignal interface {
	OnTokenExpired(fn func()) (cancel func())
}

// Authority owns the Session. It is the only writer; readers take snapshots
// through Current or CurrentGrants. A single Authority exists per process in
// normal operation, but instances are independent so tests can run in
// parallel.
type Authority struct {
	api    API
	store  CredentialStore
	logger *log.Logger
	now    func() time.Time

	mu           sync.Mutex
	session      Session
	refreshToken string

	cancelExpiry func()
}

// NewAuthority creates an authority over the given API client and credential
// store. It subscribes to the expiry signal exactly once, here; Initialize may
// be called any number of times without adding listeners. Release the
// subscription with Dispose.
func NewAuthority(api API, store CredentialStore, signal ExpirySignal, logger *log.Logger) *Authority {
	if logger == nil {
		logger = log.Default()
	}

	a := &Authority{
		api:    api,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	if signal != nil {
		a.cancelExpiry = signal.OnTokenExpired(a.handleTokenExpired)
	}
	return a
}

// WithClock overrides the time source. For tests.
func (a *Authority) WithClock(now func() time.Time) *Authority {
	a.now = now
	return a
}

// Initialize restores the session from durable storage. It never fails: any
// storage problem is logged and resolved to an anonymous session, so the
// process always boots into a definite state. No network call is made.
func (a *Authority) Initialize() {
	a.setLoading(true)

	persisted, err := a.store.Load()
	if err != nil {
		a.logger.Warn("session restore failed, starting anonymous", "error", err.Error())
		_ = a.store.Clear()
		a.reset()
		return
	}

	if persisted == nil || persisted.Token == "" || persisted.User == nil {
		a.reset()
		return
	}

	if tokenExpired(persisted.Token, persisted.ExpiresAt, a.now()) {
		a.logger.Info("persisted token expired, discarding session",
			"username", persisted.User.Username)
		_ = a.store.Clear()
		a.reset()
		return
	}

	a.api.SetToken(persisted.Token)
	a.mu.Lock()
	a.session = Session{
		Authenticated: true,
		User:          persisted.User,
		Token:         persisted.Token,
	}
	a.mu.Unlock()
}

// Login authenticates with the platform and establishes a session.
//
// Login is all-or-nothing: authentication yields tokens only, so a second
// request fetches the profile with the fresh token, and if that second step
// fails the partially-established session is discarded entirely. Concurrent
// calls are not deduplicated; the last write to the session wins.
func (a *Authority) Login(ctx context.Context, usernameOrEmail, password string) error {
	a.setLoading(true)

	pair, err := a.api.Login(ctx, usernameOrEmail, password)
	if err != nil {
		a.setLoading(false)
		if apiErr, ok := err.(*platform.APIError); ok {
			return WrapError(ErrInvalidCredentials, apiErr.Error(), err)
		}
		return WrapError(ErrInvalidCredentials, "invalid credentials", err)
	}

	// Persist the access token immediately so the profile request (and any
	// restart racing it) can authenticate.
	var expiresAt time.Time
	if pair.ExpiresIn > 0 {
		expiresAt = a.now().Add(time.Duration(pair.ExpiresIn) * time.Second)
	}
	a.api.SetToken(pair.AccessToken)
	if err := a.store.Save(&PersistedSession{Token: pair.AccessToken, ExpiresAt: expiresAt}); err != nil {
		a.logger.Warn("persisting access token failed", "error", err.Error())
	}

	profile, err := a.api.CurrentUser(ctx)
	if err != nil {
		// A token without a confirmed profile must never be left
		// authenticated.
		_ = a.store.Clear()
		a.api.SetToken("")
		a.reset()
		return WrapError(ErrProfileFetch, "could not load user profile", err)
	}

	user := userFromProfile(profile)
	persisted := &PersistedSession{
		Authenticated: true,
		User:          user,
		Token:         pair.AccessToken,
		ExpiresAt:     expiresAt,
	}
	if err := a.store.Save(persisted); err != nil {
		a.logger.Warn("persisting session failed", "error", err.Error())
	}

	a.mu.Lock()
	a.session = Session{
		Authenticated: true,
		User:          user,
		Token:         pair.AccessToken,
	}
	a.refreshToken = pair.RefreshToken
	a.mu.Unlock()

	a.logger.Info("login succeeded", "username", user.Username, "tenant", user.Tenant.Slug)
	return nil
}

// Logout ends the session and clears durable storage. Calling it on an
// anonymous session is a no-op.
func (a *Authority) Logout() {
	a.mu.Lock()
	wasAuthenticated := a.session.Authenticated
	username := ""
	if a.session.User != nil {
		username = a.session.User.Username
	}
	a.mu.Unlock()

	_ = a.store.Clear()
	a.api.SetToken("")
	a.reset()

	a.mu.Lock()
	a.refreshToken = ""
	a.mu.Unlock()

	if wasAuthenticated {
		a.logger.Info("logged out", "username", username)
	}
}

// RefreshToken exchanges the refresh token for a new token pair. Any failure
// to refresh ends the session.
func (a *Authority) RefreshToken(ctx context.Context) error {
	a.mu.Lock()
	refresh := a.refreshToken
	user := a.session.User
	a.mu.Unlock()

	if refresh == "" {
		a.Logout()
		return NewError(ErrRefreshFailed, "no refresh token available")
	}

	pair, err := a.api.Refresh(ctx, refresh)
	if err != nil {
		a.Logout()
		return WrapError(ErrRefreshFailed, "token refresh failed", err)
	}

	var expiresAt time.Time
	if pair.ExpiresIn > 0 {
		expiresAt = a.now().Add(time.Duration(pair.ExpiresIn) * time.Second)
	}
	a.api.SetToken(pair.AccessToken)
	if err := a.store.Save(&PersistedSession{
		Authenticated: true,
		User:          user,
		Token:         pair.AccessToken,
		ExpiresAt:     expiresAt,
	}); err != nil {
		a.logger.Warn("persisting refreshed session failed", "error", err.Error())
	}

	a.mu.Lock()
	a.session.Token = pair.AccessToken
	if pair.RefreshToken != "" {
		a.refreshToken = pair.RefreshToken
	}
	a.mu.Unlock()
	return nil
}

// Dispose releases the expiry-signal subscription. The authority remains
// usable, but will no longer react to transport-level auth rejections.
func (a *Authority) Dispose() {
	if a.cancelExpiry != nil {
		a.cancelExpiry()
		a.cancelExpiry = nil
	}
}

// Current returns a snapshot of the session.
func (a *Authority) Current() Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

// IsAuthenticated reports whether a user is logged in.
func (a *Authority) IsAuthenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Authenticated
}

// IsLoading reports whether a login or restore is in flight.
func (a *Authority) IsLoading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Loading
}

// User returns the authenticated user, or nil when anonymous.
func (a *Authority) User() *AuthenticatedUser {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.User
}

// CurrentGrants implements access.SessionSource: it returns the grants of the
// authenticated user, or nil when anonymous, reflecting the session at call
// time.
func (a *Authority) CurrentGrants() []access.Grant {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.session.Authenticated || a.session.User == nil {
		return nil
	}
	return a.session.User.Grants
}

func (a *Authority) handleTokenExpired() {
	if !a.IsAuthenticated() {
		return
	}
	a.logger.Info("token expired signal received, ending session")
	a.Logout()
}

func (a *Authority) reset() {
	a.mu.Lock()
	a.session = Session{}
	a.mu.Unlock()
}

func (a *Authority) setLoading(loading bool) {
	a.mu.Lock()
	a.session.Loading = loading
	a.mu.Unlock()
}

func userFromProfile(p *platform.Profile) *AuthenticatedUser {
	return &AuthenticatedUser{
		ID:       p.ID,
		Username: p.Username,
		Email:    p.Email,
		FullName: p.FullName,
		Tenant: Tenant{
			ID:     p.Tenant.ID,
			Name:   p.Tenant.Name,
			Slug:   p.Tenant.Slug,
			Domain: p.Tenant.Domain,
		},
		Grants:       p.Permissions,
		Roles:        p.Roles,
		AccessGroups: p.AccessGroups,
	}
}
