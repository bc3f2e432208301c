package domain

import (
	"testing"
	"time"
)

func TestHomeRoute(t *testing.T) {
	tests := []struct {
		roles []Role
		want  string
	}{
		{nil, RouteUser},
		{RolesFor(false), RouteUser},
		{RolesFor(true), RouteGuardian},
		{[]Role{RoleAdmin}, RouteUser},
		{[]Role{RoleGuardian}, RouteGuardian},
	}
	for _, tt := range tests {
		if got := HomeRoute(tt.roles); got != tt.want {
			t.Fatalf("HomeRoute(%v) = %s, want %s", tt.roles, got, tt.want)
		}
	}
}

func TestRolesFor(t *testing.T) {
	if r := RolesFor(false); len(r) != 1 || r[0] != RoleNormalUser {
		t.Fatalf("unexpected roles %v", r)
	}
	r := RolesFor(true)
	if len(r) != 2 || r[0] != RoleNormalUser || r[1] != RoleGuardian {
		t.Fatalf("unexpected guardian roles %v", r)
	}
}

func TestUser_IsLocked(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Minute)
	past := now.Add(-time.Minute)

	if (&User{}).IsLocked(now) {
		t.Fatal("user without lock reported locked")
	}
	if !(&User{LockedUntil: &future}).IsLocked(now) {
		t.Fatal("active lock not reported")
	}
	if (&User{LockedUntil: &past}).IsLocked(now) {
		t.Fatal("lapsed lock still reported")
	}
	if (&User{LockedUntil: &now}).IsLocked(now) {
		t.Fatal("lock ending exactly now should be lifted")
	}
}

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		user User
		want string
	}{
		{User{FirstName: "Asha", LastName: "Rao", Email: "a@example.com"}, "Asha Rao"},
		{User{FirstName: "Asha", Email: "a@example.com"}, "Asha"},
		{User{LastName: "Rao", Email: "a@example.com"}, "a@example.com"},
		{User{Email: "a@example.com"}, "a@example.com"},
	}
	for _, tt := range tests {
		if got := tt.user.DisplayName(); got != tt.want {
			t.Fatalf("DisplayName() = %q, want %q", got, tt.want)
		}
	}
}

func TestRoleStringsRoundTrip(t *testing.T) {
	in := []Role{RoleNormalUser, RoleGuardian, Role("auditor")}
	out := ParseRoles(RoleStrings(in))
	if len(out) != len(in) {
		t.Fatalf("length changed: %v", out)
	}
	for i := range in {
		if in[i] != out[i] {
			t.Fatalf("role %d: got %s, want %s", i, out[i], in[i])
		}
	}
	if !HasAnyRole(out, RoleAdmin, Role("auditor")) {
		t.Fatal("unknown role should be preserved")
	}
}

func TestSession_Active(t *testing.T) {
	now := time.Now()
	if !(Session{ID: "s", ExpiresAt: now.Add(time.Second)}).Active(now) {
		t.Fatal("live session reported inactive")
	}
	if (Session{ID: "s", ExpiresAt: now}).Active(now) {
		t.Fatal("session expiring now reported active")
	}
	if (Session{ExpiresAt: now.Add(time.Hour)}).Active(now) {
		t.Fatal("session without id reported active")
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := map[string]string{
		"+91 98765 43210":   "+919876543210",
		" +91-98765-43210 ": "+919876543210",
		"(555) 020.0":       "5550200",
		"919876543210":      "919876543210",
		"1+2":               "1+2",
		"":                  "",
	}
	for in, want := range tests {
		if got := NormalizePhone(in); got != want {
			t.Fatalf("NormalizePhone(%q) = %q, want %q", in, got, want)
		}
	}
}
