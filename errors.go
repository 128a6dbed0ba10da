package contacts

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument reports a missing or out-of-range caller input. It is
// raised before any parsing starts.
var ErrInvalidArgument = errors.New("contacts: invalid argument")

// ErrFormat matches every *FormatError through errors.Is.
var ErrFormat = errors.New("contacts: format error")

// FormatReason names the structural rule a malformed input violated.
type FormatReason string

// Reasons raised by ParseTokens and ParseRuntimeID.
const (
	ReasonEmptyInput        FormatReason = "input is empty"
	ReasonUnterminatedValue FormatReason = "unterminated quoted value"
	ReasonTrailingContent   FormatReason = "unexpected content after the last quoted value"
	ReasonMalformedToken    FormatReason = "malformed token"
	ReasonDuplicateToken    FormatReason = "duplicate token"
	ReasonMissingGUID       FormatReason = "runtime id has no GUID token"
	ReasonInvalidGUID       FormatReason = "runtime id GUID is not a valid identifier"

	// Raised by IndexFromNode and SplitNode.
	ReasonMissingIndex FormatReason = "array node has no index"
	ReasonInvalidIndex FormatReason = "array node index is not a valid non-negative integer"

	// Raised by the legacy group decoders in pkg/mapi.
	ReasonPrematureEnd      FormatReason = "premature end of stream"
	ReasonInvalidLength     FormatReason = "negative count or length in stream"
	ReasonTrailingData      FormatReason = "more data was found than was specified in the header"
	ReasonInvalidMemberData FormatReason = "invalid member data"
	ReasonContactIDFormat   FormatReason = "ContactIds don't match the expected format."
	ReasonOneOffFormat      FormatReason = "invalid one-off member data"
)

// FormatError describes input that does not follow one of the hand-rolled
// serialization formats. Offset is a byte position for binary streams and -1
// when it does not apply.
type FormatError struct {
	Op     string
	Reason FormatReason
	Offset int
	Detail string
}

func (e *FormatError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("contacts: %s: %s", e.Op, e.Reason)
	if e.Offset >= 0 {
		msg = fmt.Sprintf("%s at offset %d", msg, e.Offset)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Detail)
	}
	return msg
}

// Is reports whether target is ErrFormat or a *FormatError carrying the same
// Reason.
func (e *FormatError) Is(target error) bool {
	if e == nil {
		return false
	}
	if target == ErrFormat {
		return true
	}
	var other *FormatError
	if errors.As(target, &other) && other != nil {
		return other.Reason == e.Reason
	}
	return false
}

// NewFormatError builds a FormatError without a byte offset.
func NewFormatError(op string, reason FormatReason, detail string) *FormatError {
	return &FormatError{Op: op, Reason: reason, Offset: -1, Detail: detail}
}

// NewFormatErrorAt builds a FormatError pinned to a byte offset.
func NewFormatErrorAt(op string, reason FormatReason, offset int, detail string) *FormatError {
	return &FormatError{Op: op, Reason: reason, Offset: offset, Detail: detail}
}

// IsReason reports whether err wraps a FormatError with the given reason.
func IsReason(err error, reason FormatReason) bool {
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		return false
	}
	return formatErr.Reason == reason
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
