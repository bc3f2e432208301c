package middleware

// Context keys set by the middleware in this package.
const (
	KeyUserID    = "user_id"
	KeyEmail     = "email"
	KeyRoles     = "roles"
	KeySessionID = "session_id"
	KeyLang      = "lang"
)
