package domain

import (
	"errors"
	"testing"
)

func TestRole_Levels(t *testing.T) {
	if RoleGuest.Level() != 0 || RoleUser.Level() != 1 || RoleAdmin.Level() != 2 {
		t.Fatalf("role levels out of order: guest=%d user=%d admin=%d",
			RoleGuest.Level(), RoleUser.Level(), RoleAdmin.Level())
	}
	if Role("superuser").Level() != -1 {
		t.Fatalf("unknown role must map below every requirement")
	}
}

func TestRole_AtLeast(t *testing.T) {
	cases := []struct {
		role     Role
		required Role
		want     bool
	}{
		{RoleUser, RoleAdmin, false},
		{RoleAdmin, RoleUser, true},
		{RoleGuest, RoleUser, false},
		{RoleGuest, RoleGuest, true},
		{RoleUser, RoleUser, true},
		{RoleAdmin, RoleAdmin, true},
		{Role("bogus"), RoleGuest, false},
	}
	for _, tc := range cases {
		if got := tc.role.AtLeast(tc.required); got != tc.want {
			t.Fatalf("AtLeast(%s, %s) = %v, want %v", tc.role, tc.required, got, tc.want)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"guest", "user", "admin"} {
		if _, err := ParseRole(valid); err != nil {
			t.Fatalf("ParseRole(%q) rejected: %v", valid, err)
		}
	}
	if _, err := ParseRole("operator"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}
