package domain

import "testing"

func TestEntryStatus_CanTransition(t *testing.T) {
	cases := []struct {
		from EntryStatus
		to   EntryStatus
		want bool
	}{
		{StatusNormal, StatusDisputed, true},
		{StatusDisputed, StatusResolved, true},
		{StatusDisputed, StatusChargedBack, true},
		{StatusNormal, StatusResolved, false},
		{StatusNormal, StatusChargedBack, false},
		{StatusDisputed, StatusDisputed, false},
		{StatusResolved, StatusDisputed, false},
		{StatusResolved, StatusChargedBack, false},
		{StatusChargedBack, StatusResolved, false},
		{StatusChargedBack, StatusDisputed, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.want {
			t.Errorf("CanTransition(%s → %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
