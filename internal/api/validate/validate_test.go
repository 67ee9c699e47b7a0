package validate

import "testing"

func TestID(t *testing.T) {
	if id, err := ID("filmId", "42"); err != nil || id != 42 {
		t.Fatalf("ID(42): id=%d err=%v", id, err)
	}
	for _, bad := range []string{"", "0", "-1", "abc", "1.5"} {
		if _, err := ID("filmId", bad); err == nil {
			t.Fatalf("ID(%q): want error", bad)
		}
	}
}

func TestCount(t *testing.T) {
	if n, err := Count("count", "", 10); err != nil || n != 10 {
		t.Fatalf("Count default: n=%d err=%v", n, err)
	}
	if n, err := Count("count", "3", 10); err != nil || n != 3 {
		t.Fatalf("Count(3): n=%d err=%v", n, err)
	}
	for _, bad := range []string{"0", "-2", "x"} {
		if _, err := Count("count", bad, 10); err == nil {
			t.Fatalf("Count(%q): want error", bad)
		}
	}
}
