package mapi

import (
	"strconv"
	"strings"

	contacts "github.com/goliatone/go-contacts"
	"github.com/goliatone/go-contacts/internal/wide"
)

// DecodeContactIDs decodes the PropContactIDs stream into contact ids with
// their "CID_V1:" prefix removed.
func DecodeContactIDs(data []byte) ([]string, error) {
	const op = "decode contact ids"

	reader := newRecordReader(op, data)
	count, err := reader.readCount()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, min(count, len(data)/4))
	for i := 0; i < count; i++ {
		start := reader.pos
		record, err := reader.readRecord()
		if err != nil {
			return nil, err
		}
		text, err := wide.Decode(record)
		if err != nil {
			return nil, contacts.NewFormatErrorAt(op, contacts.ReasonInvalidMemberData, start, err.Error())
		}
		id, ok := strings.CutPrefix(text, contactIDPrefix)
		if !ok {
			return nil, contacts.NewFormatErrorAt(op, contacts.ReasonContactIDFormat, start, "record "+strconv.Itoa(i))
		}
		ids = append(ids, id)
	}

	if err := reader.finish(); err != nil {
		return nil, err
	}
	return ids, nil
}

// DecodeOneOffs decodes the PropOneOffs stream into inline members. The
// address type stored between name and email is dropped.
func DecodeOneOffs(data []byte) ([]OneOff, error) {
	const op = "decode one-offs"

	reader := newRecordReader(op, data)
	count, err := reader.readCount()
	if err != nil {
		return nil, err
	}

	members := make([]OneOff, 0, min(count, len(data)/4))
	for i := 0; i < count; i++ {
		start := reader.pos
		record, err := reader.readRecord()
		if err != nil {
			return nil, err
		}
		if len(record) < oneOffHeaderLen {
			return nil, contacts.NewFormatErrorAt(op, contacts.ReasonOneOffFormat, start, "record shorter than header")
		}
		text, err := wide.Decode(record[oneOffHeaderLen:])
		if err != nil {
			return nil, contacts.NewFormatErrorAt(op, contacts.ReasonInvalidMemberData, start, err.Error())
		}
		fields := strings.Split(text, "\x00")
		if len(fields) != oneOffFields {
			return nil, contacts.NewFormatErrorAt(op, contacts.ReasonOneOffFormat, start,
				strconv.Itoa(len(fields))+" fields in record "+strconv.Itoa(i))
		}
		members = append(members, OneOff{DisplayName: fields[0], Email: fields[2]})
	}

	if err := reader.finish(); err != nil {
		return nil, err
	}
	return members, nil
}
