package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"  Newborn  ", 20, "Newborn"},
		{"Maternity Photography", 10, "Materni..."},
		{"Family", 3, "Fam"},
		{"Baby", 0, "Baby"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q, want %q", got, "ab  ")
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Fatalf("padRight long = %q, want unchanged", got)
	}
}

func TestStars(t *testing.T) {
	if got := stars(4); got != "★★★★☆" {
		t.Fatalf("stars(4) = %q", got)
	}
	if got := stars(9); got != "★★★★★" {
		t.Fatalf("stars(9) = %q", got)
	}
	if got := stars(-1); got != "☆☆☆☆☆" {
		t.Fatalf("stars(-1) = %q", got)
	}
}

func TestWrapIndex(t *testing.T) {
	cases := []struct{ i, n, want int }{
		{0, 3, 0},
		{4, 3, 1},
		{-1, 3, 2},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := wrapIndex(tc.i, tc.n); got != tc.want {
			t.Fatalf("wrapIndex(%d, %d) = %d, want %d", tc.i, tc.n, got, tc.want)
		}
	}
}

func TestClampRow(t *testing.T) {
	if got := clampRow(5, 3); got != 2 {
		t.Fatalf("clampRow(5, 3) = %d, want 2", got)
	}
	if got := clampRow(-1, 3); got != 0 {
		t.Fatalf("clampRow(-1, 3) = %d, want 0", got)
	}
	if got := clampRow(1, 0); got != 0 {
		t.Fatalf("clampRow(1, 0) = %d, want 0", got)
	}
}
