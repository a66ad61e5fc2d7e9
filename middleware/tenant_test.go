package middleware

import "testing"

func TestSubdomainOf(t *testing.T) {
	tests := []struct {
		host  string
		base  string
		label string
		ok    bool
	}{
		{"alice.pagenest.io", "pagenest.io", "alice", true},
		{"pagenest.io", "pagenest.io", "", false},
		{"www.pagenest.io", "pagenest.io", "", false},
		{"a.b.pagenest.io", "pagenest.io", "", false},
		{"alice.evil.io", "pagenest.io", "", false},
		{"notpagenest.io", "pagenest.io", "", false},
		{"alice.localhost", "localhost", "alice", true},
	}

	for _, tt := range tests {
		label, ok := subdomainOf(tt.host, tt.base)
		if label != tt.label || ok != tt.ok {
			t.Errorf("subdomainOf(%q, %q) = (%q, %v), want (%q, %v)",
				tt.host, tt.base, label, ok, tt.label, tt.ok)
		}
	}
}
