package contacts

import (
	"math"
	"strconv"
	"strings"
)

// DefaultArrayNodeTag separates a collection name from an element index.
const DefaultArrayNodeTag = "/ArrayID"

// NodeFromIndex builds the path addressing element index of collection.
func NodeFromIndex(collection, tag string, index int) (string, error) {
	if index < 0 {
		return "", invalidArgument("array node index %d is negative", index)
	}
	if index > math.MaxInt32 {
		return "", invalidArgument("array node index %d overflows int32", index)
	}
	return collection + tag + strconv.Itoa(index), nil
}

// IndexFromNode returns the index of a path built with DefaultArrayNodeTag.
// Everything after the last tag must be ASCII digits within int32 range.
func IndexFromNode(path string) (int, error) {
	_, index, err := SplitNode(path, DefaultArrayNodeTag)
	return index, err
}

// SplitNode splits path at the last occurrence of tag into the collection name
// and the element index. The text after tag must be digits only.
func SplitNode(path, tag string) (string, int, error) {
	const op = "split node"

	if tag == "" {
		return "", 0, invalidArgument("array node tag is empty")
	}
	at := strings.LastIndex(path, tag)
	if at < 0 {
		return "", 0, NewFormatError(op, ReasonMissingIndex, path)
	}
	suffix := path[at+len(tag):]
	if suffix == "" {
		return "", 0, NewFormatError(op, ReasonMissingIndex, path)
	}
	for i := 0; i < len(suffix); i++ {
		if !isASCIIDigit(suffix[i]) {
			return "", 0, NewFormatError(op, ReasonInvalidIndex, suffix)
		}
	}
	index, err := parseIndex(op, suffix)
	if err != nil {
		return "", 0, err
	}
	return path[:at], index, nil
}

func parseIndex(op, digits string) (int, error) {
	value, err := strconv.ParseInt(digits, 10, 32)
	if err != nil {
		return 0, NewFormatError(op, ReasonInvalidIndex, digits)
	}
	return int(value), nil
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
