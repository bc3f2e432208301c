package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Messages(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerRequest{Email: "not-an-email", Phone: "12ab", Password: "x", FirstName: "A", LastName: "B"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email must be a valid email")
	assert.Contains(t, err.Error(), "phone must be a phone number")

	err = v.Validate(&linkedUserRequest{Name: "Meera", RelationType: "cousin"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relation_type must be one of")

	huge := "huge"
	err = v.Validate(&preferencesPatchRequest{TextSize: &huge})
	require.Error(t, err)
	assert.Equal(t, "text_size must be one of: small, medium, large", err.Error())
}

func TestValidator_Accepts(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&registerRequest{
		Email: "a@example.com", Phone: "+91 98765-43210", Password: "x", FirstName: "A", LastName: "B",
	}))
	assert.NoError(t, v.Validate(&linkedUserRequest{Name: "Meera", RelationType: "child"}))
	assert.NoError(t, v.Validate(&preferencesPatchRequest{}))
	assert.NoError(t, v.Validate(&loginRequest{Password: "x"}))
}

func TestValidPhone(t *testing.T) {
	for in, want := range map[string]bool{
		"+919876543210":    true,
		"987 654 3210":     true,
		"123-4567":         true,
		"123456":           false,
		"1234567890123456": false,
		"+91(987)6543210":  false,
		"":                 false,
	} {
		assert.Equal(t, want, validPhone(in), in)
	}
}
