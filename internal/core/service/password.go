package service

import (
	"strings"
	"unicode"

	"github.com/guardianlink/portal/internal/core/domain"
)

const (
	DefaultPasswordMinLength = 8
	passwordSpecials         = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// ValidatePassword checks pw against the password policy and reports the
// first rule it fails as a *domain.PasswordPolicyError.
func ValidatePassword(pw string, minLength int) error {
	if minLength <= 0 {
		minLength = DefaultPasswordMinLength
	}
	c := classify(pw)
	switch {
	case len([]rune(pw)) < minLength:
		return &domain.PasswordPolicyError{Rule: domain.PasswordRuleLength, MinLength: minLength}
	case !c.upper:
		return &domain.PasswordPolicyError{Rule: domain.PasswordRuleUpper, MinLength: minLength}
	case !c.lower:
		return &domain.PasswordPolicyError{Rule: domain.PasswordRuleLower, MinLength: minLength}
	case !c.digit:
		return &domain.PasswordPolicyError{Rule: domain.PasswordRuleDigit, MinLength: minLength}
	case !c.special:
		return &domain.PasswordPolicyError{Rule: domain.PasswordRuleSpecial, MinLength: minLength}
	}
	return nil
}

// PasswordStrength scores pw from 0 to 100.
func PasswordStrength(pw string) int {
	n := len([]rune(pw))
	c := classify(pw)

	score := 0
	if n >= 8 {
		score += 20
	}
	if n >= 12 {
		score += 10
	}
	if n >= 16 {
		score += 10
	}
	for _, ok := range []bool{c.upper, c.lower, c.digit, c.special} {
		if ok {
			score += 15
		}
	}
	return min(score, 100)
}

type charClasses struct {
	upper, lower, digit, special bool
}

func classify(pw string) charClasses {
	var c charClasses
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			c.upper = true
		case unicode.IsLower(r):
			c.lower = true
		case unicode.IsDigit(r):
			c.digit = true
		case strings.ContainsRune(passwordSpecials, r):
			c.special = true
		}
	}
	return c
}
