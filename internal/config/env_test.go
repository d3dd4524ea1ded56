package config

import "testing"

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestIntEnvOrDefault(t *testing.T) {
	t.Setenv("INT_TEST", "")
	if got := intEnvOrDefault("INT_TEST", 7); got != 7 {
		t.Fatalf("expected default when unset, got %d", got)
	}
	cases := map[string]int{"12": 12, "0": 7, "-3": 7, "abc": 7}
	for raw, want := range cases {
		t.Setenv("INT_TEST", raw)
		if got := intEnvOrDefault("INT_TEST", 7); got != want {
			t.Fatalf("intEnvOrDefault(%q) = %d, want %d", raw, got, want)
		}
	}
}

func TestDurationEnvOrDefaultRejectsNonPositive(t *testing.T) {
	t.Setenv("DURATION_TEST", "0s")
	if got := durationEnvOrDefault("DURATION_TEST", defaultTickInterval); got != defaultTickInterval {
		t.Fatalf("expected default on non-positive value, got %s", got)
	}
}
