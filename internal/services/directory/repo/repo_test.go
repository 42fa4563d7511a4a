package repo

import "testing"

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"jordan":     "jordan",
		"100% ravi":  `100\% ravi`,
		"a_b":        `a\_b`,
		`back\slash`: `back\\slash`,
		`%_\mix%`:    `\%\_\\mix\%`,
	}
	for in, want := range cases {
		if got := escapeLike(in); got != want {
			t.Fatalf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}
