package contacts

import (
	"errors"
	"testing"
)

func TestParseTokensAcceptsWellFormedInput(t *testing.T) {
	tokens, err := ParseTokens(`  /GUID:"abc" /path:"C:\Contacts\Ann.contact"  `)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %+v", len(tokens), tokens)
	}
	if tokens["/GUID:"] != "abc" {
		t.Fatalf("unexpected GUID value %q", tokens["/GUID:"])
	}
	if tokens["/PATH:"] != `C:\Contacts\Ann.contact` {
		t.Fatalf("unexpected PATH value %q", tokens["/PATH:"])
	}
}

func TestParseTokensKeepsUnknownMarkers(t *testing.T) {
	tokens, err := ParseTokens(`/GUID:"g" /Extra:"Mixed Case"`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tokens["/EXTRA:"] != "Mixed Case" {
		t.Fatalf("expected raw entry for unknown marker, got %+v", tokens)
	}
	if _, ok := tokens.Lookup(TokenPath); ok {
		t.Fatalf("did not expect PATH lookup to succeed")
	}
}

func TestParseTokensMarkersAreCaseInsensitive(t *testing.T) {
	lower, err := ParseTokens(`/guid:"X"`)
	if err != nil {
		t.Fatalf("parse lower: %v", err)
	}
	upper, err := ParseTokens(`/GUID:"X"`)
	if err != nil {
		t.Fatalf("parse upper: %v", err)
	}
	if lower["/GUID:"] != "X" || upper["/GUID:"] != "X" {
		t.Fatalf("expected identical entries, got %+v and %+v", lower, upper)
	}
}

func TestParseTokensAllowsEmptyValue(t *testing.T) {
	tokens, err := ParseTokens(`/GUID:""`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	value, ok := tokens.Lookup(TokenGUID)
	if !ok || value != "" {
		t.Fatalf("expected empty GUID entry, got %q (ok=%v)", value, ok)
	}
}

func TestParseTokensRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		reason FormatReason
	}{
		{name: "empty", input: "", reason: ReasonEmptyInput},
		{name: "blank", input: " \t\n", reason: ReasonEmptyInput},
		{name: "unterminated", input: `/GUID:"abc`, reason: ReasonUnterminatedValue},
		{name: "unterminated second", input: `/GUID:"a" /PATH:"b`, reason: ReasonUnterminatedValue},
		{name: "trailing text", input: `/GUID:"a" junk`, reason: ReasonTrailingContent},
		{name: "duplicate", input: `/GUID:"a" /GUID:"b"`, reason: ReasonDuplicateToken},
		{name: "duplicate mixed case", input: `/GUID:"a" /guid:"b"`, reason: ReasonDuplicateToken},
		{name: "missing colon", input: `BADTOKEN"x"`, reason: ReasonMalformedToken},
		{name: "empty token", input: `"x"`, reason: ReasonMalformedToken},
		{name: "inner whitespace", input: `/GU ID:"x"`, reason: ReasonMalformedToken},
		{name: "missing separator token", input: `/GUID:"a""b"`, reason: ReasonMalformedToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTokens(tc.input)
			if err == nil {
				t.Fatalf("expected error for %q", tc.input)
			}
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("expected ErrFormat, got %v", err)
			}
			if !IsReason(err, tc.reason) {
				t.Fatalf("expected reason %q, got %v", tc.reason, err)
			}
		})
	}
}

func TestTokenKindMarkers(t *testing.T) {
	if TokenGUID.Marker() != "/GUID:" || TokenPath.Marker() != "/PATH:" {
		t.Fatalf("unexpected markers %q %q", TokenGUID.Marker(), TokenPath.Marker())
	}
	if TokenKind(7).Valid() || TokenKind(-1).Valid() {
		t.Fatalf("out of range kinds must be invalid")
	}
	if TokenKind(7).Marker() != "" {
		t.Fatalf("expected empty marker for unknown kind")
	}
}
