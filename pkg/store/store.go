// Package store declares the property store a contact facade is backed by and
// ships an in-memory implementation intended for tests and examples.
//
// Property names are paths. Elements of repeated properties are addressed as
// `<collection><tag><index>` (see contacts.NodeFromIndex) and their
// children as `<node>/<name>`.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("store: not found")
	ErrTypeMismatch = errors.New("store: property type mismatch")
)

// BinaryReader is the subset of PropertyStore needed to read binary
// properties.
type BinaryReader interface {
	Binary(ctx context.Context, name string) (value []byte, ok bool, err error)
}

// PropertyStore is the contact property graph. Getters report ok=false for
// absent properties; absence is not an error.
type PropertyStore interface {
	BinaryReader

	String(ctx context.Context, name string) (value string, ok bool, err error)
	Date(ctx context.Context, name string) (value time.Time, ok bool, err error)

	SetString(ctx context.Context, name, value string) error
	SetDate(ctx context.Context, name string, value time.Time) error
	SetBinary(ctx context.Context, name string, value []byte) error
	DeleteProperty(ctx context.Context, name string) error

	// CreateArrayNode adds an element to collection and returns its node
	// path. appendNode=false inserts it first, shifting the others.
	CreateArrayNode(ctx context.Context, collection string, appendNode bool) (string, error)
	DeleteArrayNode(ctx context.Context, node string) error

	Labels(ctx context.Context, node string) ([]string, error)
	AddLabels(ctx context.Context, node string, labels ...string) error
	RemoveLabel(ctx context.Context, node, label string) error
	ClearLabels(ctx context.Context, node string) error
	// LabeledNode returns the first live node of collection carrying every
	// label.
	LabeledNode(ctx context.Context, collection string, labels ...string) (node string, ok bool, err error)
}
