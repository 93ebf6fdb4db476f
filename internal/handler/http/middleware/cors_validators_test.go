package middleware

import "testing"

func TestPatternValidator_Exact(t *testing.T) {
	v := NewPatternValidator([]string{
		"https://blog.example.com",
		"http://localhost:3000",
	})

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{name: "exact match", origin: "https://blog.example.com", want: true},
		{name: "case-insensitive", origin: "HTTPS://Blog.Example.COM", want: true},
		{name: "trailing slash tolerated", origin: "https://blog.example.com/", want: true},
		{name: "localhost with port", origin: "http://localhost:3000", want: true},
		{name: "different scheme", origin: "http://blog.example.com", want: false},
		{name: "different host", origin: "https://evil.com", want: false},
		{name: "superstring host", origin: "https://blog.example.com.evil.com", want: false},
		{name: "empty origin", origin: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.IsAllowed(tt.origin); got != tt.want {
				t.Fatalf("IsAllowed(%q)=%v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}

func TestPatternValidator_Wildcard(t *testing.T) {
	v := NewPatternValidator([]string{"*.example.com"})

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{name: "https subdomain", origin: "https://api.example.com", want: true},
		{name: "http subdomain", origin: "http://api.example.com", want: true},
		{name: "nested subdomain", origin: "https://a.b.example.com", want: true},
		{name: "uppercase subdomain", origin: "https://API.Example.com", want: true},
		{name: "unrelated host", origin: "https://evil.com", want: false},
		{name: "suffix spoof", origin: "https://evilexample.com", want: false},
		// The apex needs its own exact entry; *. covers subdomains only
		{name: "apex domain", origin: "https://example.com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.IsAllowed(tt.origin); got != tt.want {
				t.Fatalf("IsAllowed(%q)=%v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}

func TestPatternValidator_MixedList(t *testing.T) {
	v := NewPatternValidator([]string{
		" https://app.example.com/ ", // messy whitespace and slash
		"*.staging.example.com",
		"", // empty entries are skipped
	})

	if !v.IsAllowed("https://app.example.com") {
		t.Fatal("exact entry rejected")
	}
	if !v.IsAllowed("https://pr-7.staging.example.com") {
		t.Fatal("wildcard entry rejected")
	}
	if v.IsAllowed("https://other.example.com") {
		t.Fatal("unlisted origin admitted")
	}
}

func TestAllowAllValidator(t *testing.T) {
	v := AllowAllValidator{}
	if !v.IsAllowed("https://anything.test") {
		t.Fatal("origin rejected in open mode")
	}
	if v.IsAllowed("") {
		t.Fatal("empty origin should not be considered allowed")
	}
}
