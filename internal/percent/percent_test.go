package percent

import "testing"

func TestNonAlphanumeric(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"alice", "alice"},
		{"Alice42", "Alice42"},
		{"Example:alice", "Example%3Aalice"},
		{"a b", "a%20b"},
		{"100%", "100%25"},
		{"<svg/>", "%3Csvg%2F%3E"},
		{"ümlaut", "%C3%BCmlaut"},
	}
	for _, tt := range tests {
		if got := NonAlphanumeric(tt.in); got != tt.want {
			t.Errorf("NonAlphanumeric(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
