package pg

import "testing"

func TestCompact(t *testing.T) {
	in := "SELECT *\n\tFROM tasks\n  WHERE id = $1"
	want := "SELECT * FROM tasks WHERE id = $1"
	if got := compact(in); got != want {
		t.Fatalf("compact = %q, want %q", got, want)
	}
}
