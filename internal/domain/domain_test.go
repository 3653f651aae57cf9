package domain

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	for _, in := range []string{"adopter", "shelter", " shelter "} {
		if _, err := ParseRole(in); err != nil {
			t.Fatalf("ParseRole(%q): unexpected error %v", in, err)
		}
	}
	for _, in := range []string{"", "admin", "Shelter"} {
		if _, err := ParseRole(in); !errors.Is(err, ErrInvalidRole) {
			t.Fatalf("ParseRole(%q): expected ErrInvalidRole, got %v", in, err)
		}
	}
}

func TestUsernameFromEmail(t *testing.T) {
	cases := map[string]string{
		"rex@shelter.org": "rex",
		"a.b@c":           "a.b",
		"noat":            "noat",
	}
	for in, want := range cases {
		if got := UsernameFromEmail(in); got != want {
			t.Fatalf("UsernameFromEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPetStatus_ToggledTwiceIsIdentity(t *testing.T) {
	for _, s := range []PetStatus{PetActive, PetAdopted} {
		if s.Toggled() == s {
			t.Fatalf("%s: toggle did not change status", s)
		}
		if s.Toggled().Toggled() != s {
			t.Fatalf("%s: double toggle = %s", s, s.Toggled().Toggled())
		}
	}
}

func TestApplicationStatus_CanBecome(t *testing.T) {
	cases := []struct {
		from, to ApplicationStatus
		ok       bool
	}{
		{ApplicationSubmitted, ApplicationApproved, true},
		{ApplicationSubmitted, ApplicationDeclined, true},
		{ApplicationApproved, ApplicationApproved, true},
		{ApplicationApproved, ApplicationDeclined, false},
		{ApplicationDeclined, ApplicationApproved, false},
		{ApplicationApproved, ApplicationSubmitted, false},
	}
	for _, c := range cases {
		if got := c.from.CanBecome(c.to); got != c.ok {
			t.Fatalf("%s -> %s: got %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestParseDecision(t *testing.T) {
	if st, err := ParseDecision("approved"); err != nil || st != ApplicationApproved {
		t.Fatalf("approved: got %q, %v", st, err)
	}
	if _, err := ParseDecision("submitted"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("submitted: expected ErrInvalidStatus, got %v", err)
	}
}
