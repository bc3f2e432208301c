package domain

import "time"

// Session is a server-side login. Tokens carry its ID; deleting it logs out
// every token issued for it.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Roles     []Role    `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Active reports whether the session is still usable at now.
func (s Session) Active(now time.Time) bool {
	return s.ID != "" && now.Before(s.ExpiresAt)
}
