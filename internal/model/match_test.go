package model

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{MatchStatusPending, MatchStatusVerified, true},
		{MatchStatusPending, MatchStatusVerificationFailed, true},
		{MatchStatusPending, MatchStatusRejected, true},
		{MatchStatusPending, MatchStatusReturnedToOwner, false},
		{MatchStatusVerificationFailed, MatchStatusVerified, true},
		{MatchStatusVerificationFailed, MatchStatusRejected, true},
		{MatchStatusVerified, MatchStatusReturnedToOwner, true},
		{MatchStatusVerified, MatchStatusReturnedByFinder, true},
		{MatchStatusVerified, MatchStatusRejected, false},
		{MatchStatusRejected, MatchStatusVerified, false},
		{MatchStatusReturnedToOwner, MatchStatusReturnedByFinder, false},
		{"bogus", MatchStatusVerified, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestContactReleased(t *testing.T) {
	released := map[string]bool{
		MatchStatusPending:            false,
		MatchStatusVerificationFailed: false,
		MatchStatusRejected:           false,
		MatchStatusVerified:           true,
		MatchStatusReturnedToOwner:    true,
		MatchStatusReturnedByFinder:   true,
	}
	for status, want := range released {
		if got := ContactReleased(status); got != want {
			t.Errorf("ContactReleased(%q) = %v, want %v", status, got, want)
		}
	}
}

func TestBreakdownSum(t *testing.T) {
	b := Breakdown{Category: 20, Brand: 7.5, Color: 15, Location: 15, Date: 10, Name: 10, Description: 15}
	if got := b.Sum(); got != 92.5 {
		t.Errorf("Sum() = %v, want 92.5", got)
	}
}
