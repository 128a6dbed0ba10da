package contacts

import (
	"strings"

	"github.com/google/uuid"
)

// RuntimeID is the decoded form of a contact's runtime id string.
type RuntimeID struct {
	ID   uuid.UUID
	Path string
}

// String renders r with FormatRuntimeID. Invalid values render as "".
func (r RuntimeID) String() string {
	out, err := FormatRuntimeID(r.ID, r.Path)
	if err != nil {
		return ""
	}
	return out
}

// FormatRuntimeID renders id and an optional backing file path as
// `/GUID:"<id>"` or `/GUID:"<id>" /PATH:"<path>"`.
//
// The grammar has no escaping, so a path containing a double quote could
// never be read back. Such a path, like a nil id, fails with
// ErrInvalidArgument rather than producing an unparseable runtime id.
func FormatRuntimeID(id uuid.UUID, path string) (string, error) {
	if id == uuid.Nil {
		return "", invalidArgument("runtime id requires a non-nil identifier")
	}
	if strings.Contains(path, `"`) {
		return "", invalidArgument("runtime id path %q contains a double quote", path)
	}

	var b strings.Builder
	b.WriteString(TokenGUID.Marker())
	b.WriteByte('"')
	b.WriteString(id.String())
	b.WriteByte('"')
	if path != "" {
		b.WriteByte(' ')
		b.WriteString(TokenPath.Marker())
		b.WriteByte('"')
		b.WriteString(path)
		b.WriteByte('"')
	}
	return b.String(), nil
}

// ExtractToken returns the value of kind within runtimeID. A well-formed
// runtime id without that token yields "" and no error.
func ExtractToken(runtimeID string, kind TokenKind) (string, error) {
	if runtimeID == "" {
		return "", invalidArgument("runtime id is empty")
	}
	if !kind.Valid() {
		return "", invalidArgument("unsupported token kind %d", int(kind))
	}

	tokens, err := ParseTokens(runtimeID)
	if err != nil {
		return "", err
	}
	value, _ := tokens.Lookup(kind)
	return value, nil
}

// ParseRuntimeID decodes a runtime id string into its identifier and path.
func ParseRuntimeID(runtimeID string) (RuntimeID, error) {
	const op = "parse runtime id"

	if runtimeID == "" {
		return RuntimeID{}, invalidArgument("runtime id is empty")
	}
	tokens, err := ParseTokens(runtimeID)
	if err != nil {
		return RuntimeID{}, err
	}

	raw, ok := tokens.Lookup(TokenGUID)
	if !ok || raw == "" {
		return RuntimeID{}, NewFormatError(op, ReasonMissingGUID, "")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return RuntimeID{}, NewFormatError(op, ReasonInvalidGUID, err.Error())
	}

	path, _ := tokens.Lookup(TokenPath)
	return RuntimeID{ID: id, Path: path}, nil
}
