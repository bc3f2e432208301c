package domain

import "time"

// AuthEventKind names an entry in the authentication audit trail.
type AuthEventKind string

const (
	EventRegistered     AuthEventKind = "registered"
	EventLoginSucceeded AuthEventKind = "login_succeeded"
	EventLoginFailed    AuthEventKind = "login_failed"
	EventAccountLocked  AuthEventKind = "account_locked"
	EventLoggedOut      AuthEventKind = "logged_out"
	EventTokenRefreshed AuthEventKind = "token_refreshed"
	EventPasswordChange AuthEventKind = "password_changed"
)

// AuthEvent is a single audit record.
type AuthEvent struct {
	UserID    string
	Email     string
	Kind      AuthEventKind
	IP        string
	UserAgent string
	At        time.Time
}
