package checks

import "testing"

func TestLineAt(t *testing.T) {
	content := "one\ntwo\nthree\n"
	cases := []struct {
		offset int
		want   int
	}{
		{0, 1},
		{3, 1},
		{4, 2},
		{8, 3},
		{100, 4},
	}
	for _, tc := range cases {
		if got := LineAt(content, tc.offset); got != tc.want {
			t.Fatalf("LineAt(%d)=%d want %d", tc.offset, got, tc.want)
		}
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		score, max, want int
	}{
		{-3, 15, 0},
		{0, 15, 0},
		{9, 15, 9},
		{15, 15, 15},
		{22, 20, 20},
	}
	for _, tc := range cases {
		if got := Clamp(tc.score, tc.max); got != tc.want {
			t.Fatalf("Clamp(%d, %d)=%d want %d", tc.score, tc.max, got, tc.want)
		}
	}
}

func TestFormatLocations(t *testing.T) {
	locs := []Location{
		{Path: "a.py", Line: 1},
		{Path: "b.py", Line: 2},
		{Path: "c.py", Line: 3},
	}
	if got := FormatLocations(locs, 5); got != "a.py:1, b.py:2, c.py:3" {
		t.Fatalf("unexpected locations: %q", got)
	}
	if got := FormatLocations(locs, 2); got != "a.py:1, b.py:2" {
		t.Fatalf("unexpected truncated locations: %q", got)
	}
}

func TestDedupeKeepsFirstSeenOrder(t *testing.T) {
	got := Dedupe([]string{"b", "a", "b", "c", "a"})
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("Dedupe() len=%d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Dedupe()[%d]=%q want %q", i, got[i], want[i])
		}
	}
}
