package contacts

import (
	"strings"
	"unicode"
)

// TokenKind identifies one of the markers a runtime id is built from.
type TokenKind int

const (
	TokenGUID TokenKind = iota
	TokenPath

	tokenKindCount
)

var tokenMarkers = [tokenKindCount]string{
	TokenGUID: "/GUID:",
	TokenPath: "/PATH:",
}

// Valid reports whether k is one of the supported kinds.
func (k TokenKind) Valid() bool {
	return k >= 0 && k < tokenKindCount
}

// Marker returns the uppercase textual marker for k, or "" for an unknown kind.
func (k TokenKind) Marker() string {
	if !k.Valid() {
		return ""
	}
	return tokenMarkers[k]
}

func (k TokenKind) String() string {
	switch k {
	case TokenGUID:
		return "GUID"
	case TokenPath:
		return "PATH"
	default:
		return "unknown"
	}
}

// TokenMap maps an uppercase marker (including its trailing colon) to the
// verbatim quoted value that followed it.
type TokenMap map[string]string

// Lookup returns the value stored for kind.
func (m TokenMap) Lookup(kind TokenKind) (string, bool) {
	if !kind.Valid() {
		return "", false
	}
	value, ok := m[kind.Marker()]
	return value, ok
}

// ParseTokens splits input of the form `MARKER:"value" MARKER:"value"` into a
// TokenMap. Markers are matched case-insensitively; values are kept as-is and
// cannot contain a double quote.
func ParseTokens(input string) (TokenMap, error) {
	const op = "parse tokens"

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, NewFormatError(op, ReasonEmptyInput, "")
	}

	segments := strings.Split(trimmed, `"`)
	if len(segments)%2 == 0 {
		return nil, NewFormatError(op, ReasonUnterminatedValue, "")
	}
	if last := segments[len(segments)-1]; len(last) != 0 {
		return nil, NewFormatError(op, ReasonTrailingContent, last)
	}

	tokens := make(TokenMap, len(segments)/2)
	for i := 0; i+1 < len(segments); i += 2 {
		token := strings.ToUpper(strings.TrimSpace(segments[i]))
		if token == "" || !strings.HasSuffix(token, ":") {
			return nil, NewFormatError(op, ReasonMalformedToken, segments[i])
		}
		if strings.IndexFunc(token, unicode.IsSpace) >= 0 {
			return nil, NewFormatError(op, ReasonMalformedToken, token)
		}
		if _, exists := tokens[token]; exists {
			return nil, NewFormatError(op, ReasonDuplicateToken, token)
		}
		tokens[token] = segments[i+1]
	}
	return tokens, nil
}
