package domain

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain text untouched", in: "Buy milk", want: "Buy milk"},
		{name: "surrounding whitespace trimmed", in: "  Buy milk \n", want: "Buy milk"},
		{name: "ampersand escaped", in: "bread & butter", want: "bread &amp; butter"},
		{name: "angle brackets escaped", in: "a < b > c", want: "a &lt; b &gt; c"},
		{name: "quotes escaped", in: `say "hi" y'all`, want: "say &quot;hi&quot; y&#39;all"},
		{name: "whitespace only", in: "   \t ", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sanitize(tc.in); got != tc.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeLeavesNoDangerousCharacters(t *testing.T) {
	got := Sanitize(`<script>alert(1)</script>`)
	for _, forbidden := range []string{"<", ">", `"`, "'"} {
		if strings.Contains(got, forbidden) {
			t.Fatalf("sanitized output %q still contains %q", got, forbidden)
		}
	}
	if got == "" {
		t.Fatal("sanitized script tag should not collapse to an empty string")
	}
}

func TestSanitizeEscapesAmpersandBeforeBrackets(t *testing.T) {
	// Pre-escaped input must not end up half unescaped.
	if got := Sanitize("&lt;"); got != "&amp;lt;" {
		t.Fatalf("Sanitize(\"&lt;\") = %q, want %q", got, "&amp;lt;")
	}
}
