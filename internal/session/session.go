// Package session owns the authentication state of the client process.
//
// The Authority is the single writer of the Session: it performs login and
// logout, restores a persisted session at startup, and reacts to the
// transport's token-expired signal. Everything else (the permission evaluator,
// the CLI surface) only reads snapshots.
package session

import (
	"time"

	"github.com/wardenhq/wardenctl/internal/access"
)

// Tenant is the organization context the session is scoped to. All API calls
// made with this session implicitly target this tenant.
type Tenant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Domain string `json:"domain,omitempty"`
}

// AuthenticatedUser is an immutable snapshot of the user taken at login or
// restore time.
type AuthenticatedUser struct {
	ID       string         `json:"id"`
	Username string         `json:"username"`
	Email    string         `json:"email"`
	FullName string         `json:"fullName"`
	Tenant   Tenant         `json:"tenant"`
	Grants   []access.Grant `json:"grants"`

	// Roles and AccessGroups are carried for display; capability checks go
	// through the grants.
	Roles        []string `json:"roles,omitempty"`
	AccessGroups []string `json:"accessGroups,omitempty"`
}

// Session is the in-memory authentication state.
//
// Invariant: Authenticated is true exactly when both User and Token are
// present and the token has not been determined expired. Loading is true only
// while a login or restore request is in flight; consumers gating on
// Authenticated must check Loading first.
type Session struct {
	Authenticated bool
	User          *AuthenticatedUser
	Token         string
	Loading       bool
}

// PersistedSession is the durable, reload-surviving subset of Session.
// Loading is never persisted; it is always false after a restore.
type PersistedSession struct {
	Authenticated bool               `json:"authenticated"`
	User          *AuthenticatedUser `json:"user,omitempty"`
	Token         string             `json:"token,omitempty"`

	// ExpiresAt is the token expiry recorded at login, used as a fallback
	// when the token itself carries no expiry claim.
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}
