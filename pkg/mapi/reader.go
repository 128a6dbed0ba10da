package mapi

import (
	"encoding/binary"
	"strconv"

	contacts "github.com/goliatone/go-contacts"
)

// recordReader walks the count/length framed record stream.
type recordReader struct {
	op   string
	data []byte
	pos  int
}

func newRecordReader(op string, data []byte) *recordReader {
	return &recordReader{op: op, data: data}
}

func (r *recordReader) remaining() int {
	return len(r.data) - r.pos
}

func (r *recordReader) readInt32() (int, error) {
	if r.remaining() < 4 {
		return 0, contacts.NewFormatErrorAt(r.op, contacts.ReasonPrematureEnd, r.pos, "expected int32")
	}
	value := int32(binary.LittleEndian.Uint32(r.data[r.pos:]))
	r.pos += 4
	return int(value), nil
}

func (r *recordReader) readCount() (int, error) {
	at := r.pos
	count, err := r.readInt32()
	if err != nil {
		return 0, err
	}
	if count < 0 {
		return 0, contacts.NewFormatErrorAt(r.op, contacts.ReasonInvalidLength, at, "count "+strconv.Itoa(count))
	}
	return count, nil
}

// readRecord returns the next record with its NUL terminator removed. The
// returned slice aliases the input buffer.
func (r *recordReader) readRecord() ([]byte, error) {
	at := r.pos
	length, err := r.readInt32()
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, contacts.NewFormatErrorAt(r.op, contacts.ReasonInvalidLength, at, "length "+strconv.Itoa(length))
	}
	if r.remaining() < length {
		return nil, contacts.NewFormatErrorAt(r.op, contacts.ReasonPrematureEnd, r.pos,
			"need "+strconv.Itoa(length)+" bytes, have "+strconv.Itoa(r.remaining()))
	}
	record := r.data[r.pos : r.pos+length]
	start := r.pos
	r.pos += length

	if length < terminatorLen || length%2 != 0 {
		return nil, contacts.NewFormatErrorAt(r.op, contacts.ReasonInvalidMemberData, start, "record length "+strconv.Itoa(length))
	}
	if record[length-2] != 0 || record[length-1] != 0 {
		return nil, contacts.NewFormatErrorAt(r.op, contacts.ReasonInvalidMemberData, start, "missing NUL terminator")
	}
	return record[:length-terminatorLen], nil
}

func (r *recordReader) finish() error {
	if r.remaining() != 0 {
		return contacts.NewFormatErrorAt(r.op, contacts.ReasonTrailingData, r.pos,
			strconv.Itoa(r.remaining())+" unread bytes")
	}
	return nil
}
