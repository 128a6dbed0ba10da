// Package wide converts between Go strings and the little-endian UTF-16 text
// the legacy address-book properties store.
package wide

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

var codec = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Decode converts UTF-16LE bytes to a string. Unpaired surrogates become
// U+FFFD. data must hold a whole number of code units.
func Decode(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", fmt.Errorf("wide: odd byte count %d", len(data))
	}
	out, err := codec.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("wide: decode: %w", err)
	}
	return string(out), nil
}

// Encode converts s to UTF-16LE bytes without a byte order mark.
func Encode(s string) ([]byte, error) {
	out, err := codec.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("wide: encode: %w", err)
	}
	return out, nil
}
