// Package mapi decodes the group membership a legacy address book stored on
// a contact as two binary properties.
//
// Both properties share one framing:
//
//	int32 count
//	count × (int32 length, length bytes)
//
// All integers are little-endian. Each record is UTF-16LE text closed by a
// two byte NUL terminator. Contact-id records carry "CID_V1:<id>"; one-off
// records start with a 24 byte opaque header followed by
// "name\0type\0email".
//
// Decoding is a single pass over an in-memory buffer. A malformed stream
// yields a *contacts.FormatError and no records.
package mapi
