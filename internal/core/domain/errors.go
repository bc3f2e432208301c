package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("email already registered")
	ErrPhoneExists        = errors.New("phone number already registered")
	ErrIdentifierRequired = errors.New("email or phone number required")
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionNotFound    = errors.New("session not found")
	ErrLinkedUserNotFound = errors.New("linked user not found")
	ErrInvalidLinkedUser  = errors.New("invalid linked user")
	ErrLocaleNotFound     = errors.New("locale not found")
	ErrInvalidPreference  = errors.New("invalid preference")
)

// Password rules, in evaluation order.
const (
	PasswordRuleLength  = "length"
	PasswordRuleUpper   = "uppercase"
	PasswordRuleLower   = "lowercase"
	PasswordRuleDigit   = "digit"
	PasswordRuleSpecial = "special"
)

// PasswordPolicyError reports the first password rule a candidate failed.
type PasswordPolicyError struct {
	Rule      string
	MinLength int
}

func (e *PasswordPolicyError) Error() string {
	switch e.Rule {
	case PasswordRuleLength:
		return fmt.Sprintf("password must be at least %d characters long", e.MinLength)
	case PasswordRuleUpper:
		return "password must contain at least one uppercase letter"
	case PasswordRuleLower:
		return "password must contain at least one lowercase letter"
	case PasswordRuleDigit:
		return "password must contain at least one digit"
	default:
		return "password must contain at least one special character"
	}
}
