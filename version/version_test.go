package version

import "testing"

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		build    string
		expected string
	}{
		{build: "", expected: "1.2.3"},
		{build: "abc-1.2", expected: "1.2.3+abc-1.2"},
		{build: "bad build", expected: "1.2.3"},
		{build: "bad+build", expected: "1.2.3"},
	}
	for _, test := range tests {
		actual := formatVersion(1, 2, 3, test.build)
		if actual != test.expected {
			t.Errorf("formatVersion with build %q: expected %s, got %s", test.build, test.expected, actual)
		}
	}
}
