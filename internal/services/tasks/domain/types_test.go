package domain

import "testing"

func TestParsePriority(t *testing.T) {
	cases := map[string]Priority{
		"high":                     PriorityHigh,
		"HIGH":                     PriorityHigh,
		"very high urgency":        PriorityHigh,
		"critical":                 PriorityCritical,
		"critical, drop the rest":  PriorityCritical,
		"low":                      PriorityLow,
		"lowish":                   PriorityLow,
		"medium":                   PriorityMedium,
		"whenever":                 PriorityMedium,
		"":                         PriorityMedium,
	}
	for in, want := range cases {
		if got := ParsePriority(in); got != want {
			t.Fatalf("ParsePriority(%q) = %v, want %v", in, got, want)
		}
	}
}
