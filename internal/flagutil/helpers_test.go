package flagutil

import "testing"

func TestEnvVarNames(t *testing.T) {
	for _, tc := range []struct {
		prefix, name string
		expected     []string
	}{
		{"JDWPSPY", "capture-dir", []string{"JDWPSPY_CAPTURE_DIR"}},
		{"JDWPSPY_CAPTURES", "db--path", []string{"JDWPSPY_CAPTURES_DB_PATH"}},
		{"", "filter", nil},
	} {
		got := computeEnvVar(tc.prefix, tc.name)
		if len(got) != len(tc.expected) {
			t.Fatalf("Expecting %v got %v", tc.expected, got)
		}
		for i := range got {
			if got[i] != tc.expected[i] {
				t.Fatalf("Expecting %v got %v", tc.expected, got)
			}
		}
	}
}
