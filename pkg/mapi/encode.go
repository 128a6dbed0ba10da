package mapi

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/goliatone/go-contacts/internal/wide"
)

// EncodeContactIDs builds a PropContactIDs stream for ids.
func EncodeContactIDs(ids []string) ([]byte, error) {
	records := make([][]byte, 0, len(ids))
	for _, id := range ids {
		record, err := wide.Encode(contactIDPrefix + id + "\x00")
		if err != nil {
			return nil, fmt.Errorf("mapi: encode contact id %q: %w", id, err)
		}
		records = append(records, record)
	}
	return frame(records)
}

// EncodeOneOffs builds a PropOneOffs stream for members. addrType is written
// between name and email; "SMTP" is used when empty. The 24 byte header is
// left zeroed.
func EncodeOneOffs(members []OneOff, addrType string) ([]byte, error) {
	if addrType == "" {
		addrType = "SMTP"
	}
	records := make([][]byte, 0, len(members))
	for _, member := range members {
		if strings.ContainsRune(member.DisplayName, 0) || strings.ContainsRune(member.Email, 0) {
			return nil, fmt.Errorf("mapi: one-off %q contains a NUL character", member.DisplayName)
		}
		text, err := wide.Encode(member.DisplayName + "\x00" + addrType + "\x00" + member.Email + "\x00")
		if err != nil {
			return nil, fmt.Errorf("mapi: encode one-off %q: %w", member.DisplayName, err)
		}
		record := make([]byte, oneOffHeaderLen, oneOffHeaderLen+len(text))
		records = append(records, append(record, text...))
	}
	return frame(records)
}

func frame(records [][]byte) ([]byte, error) {
	if len(records) > math.MaxInt32 {
		return nil, fmt.Errorf("mapi: %d records overflow the count field", len(records))
	}
	size := 4
	for _, record := range records {
		size += 4 + len(record)
	}
	out := make([]byte, 0, size)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(records)))
	for _, record := range records {
		if len(record) > math.MaxInt32 {
			return nil, fmt.Errorf("mapi: record of %d bytes overflows the length field", len(record))
		}
		out = binary.LittleEndian.AppendUint32(out, uint32(len(record)))
		out = append(out, record...)
	}
	return out, nil
}
