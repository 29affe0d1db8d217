package phone

import "testing"

func TestCanonicalStripsFormatting(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"99999 99999", "9999999999"},
		{"+91 99999-99999", "+919999999999"},
		{"(099) 99.99-9999", "0999999999"},
		{"  ", ""},
		{"98-76", "9876"},
	}

	for _, tc := range cases {
		if got := Canonical(tc.in); got != tc.want {
			t.Errorf("Canonical(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeE164ValidIndianNumber(t *testing.T) {
	got := NormalizeE164("99999 99999")
	if got != "+919999999999" {
		t.Fatalf("NormalizeE164 = %q, want +919999999999", got)
	}
}

func TestNormalizeE164FallsBackToCanonical(t *testing.T) {
	got := NormalizeE164("12 34")
	if got != "1234" {
		t.Fatalf("NormalizeE164 = %q, want canonical fallback 1234", got)
	}
}

func TestIsPlausible(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"9999999999", true},
		{"+91 99999 99999", true},
		{"12345", false},
		{"", false},
		{"abc", false},
	}

	for _, tc := range cases {
		if got := IsPlausible(tc.in); got != tc.want {
			t.Errorf("IsPlausible(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
