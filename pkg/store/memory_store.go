package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	contacts "github.com/goliatone/go-contacts"
)

type propertyKind int

const (
	kindString propertyKind = iota
	kindDate
	kindBinary
)

func (k propertyKind) String() string {
	switch k {
	case kindString:
		return "string"
	case kindDate:
		return "date"
	default:
		return "binary"
	}
}

type property struct {
	kind   propertyKind
	text   string
	date   time.Time
	binary []byte
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithArrayNodeTag overrides contacts.DefaultArrayNodeTag.
func WithArrayNodeTag(tag string) MemoryStoreOption {
	return func(s *MemoryStore) {
		if tag != "" {
			s.tag = tag
		}
	}
}

// MemoryStore is a PropertyStore held in process memory. Array node indexes
// start at 1. Deleted nodes keep their slot so later node paths stay valid.
// Collections may be nested under a node; prepending or deleting a node
// carries or drops everything below it.
type MemoryStore struct {
	mu          sync.RWMutex
	tag         string
	properties  map[string]property
	collections map[string]int
	deleted     map[string]bool
	labels      map[string][]string
}

// NewMemoryStore returns an empty store using contacts.DefaultArrayNodeTag
// unless WithArrayNodeTag overrides it.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		tag:         contacts.DefaultArrayNodeTag,
		properties:  map[string]property{},
		collections: map[string]int{},
		deleted:     map[string]bool{},
		labels:      map[string][]string{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *MemoryStore) lookup(name string, kind propertyKind) (property, bool, error) {
	s.mu.RLock()
	prop, ok := s.properties[name]
	s.mu.RUnlock()
	if !ok {
		return property{}, false, nil
	}
	if prop.kind != kind {
		return property{}, false, fmt.Errorf("%w: %q is %s, not %s", ErrTypeMismatch, name, prop.kind, kind)
	}
	return prop, true, nil
}

func (s *MemoryStore) String(_ context.Context, name string) (string, bool, error) {
	prop, ok, err := s.lookup(name, kindString)
	return prop.text, ok, err
}

func (s *MemoryStore) Date(_ context.Context, name string) (time.Time, bool, error) {
	prop, ok, err := s.lookup(name, kindDate)
	return prop.date, ok, err
}

func (s *MemoryStore) Binary(_ context.Context, name string) ([]byte, bool, error) {
	prop, ok, err := s.lookup(name, kindBinary)
	if !ok || err != nil {
		return nil, ok, err
	}
	return slices.Clone(prop.binary), true, nil
}

func (s *MemoryStore) set(name string, prop property) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("store: property name is required")
	}
	s.mu.Lock()
	s.properties[name] = prop
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) SetString(_ context.Context, name, value string) error {
	return s.set(name, property{kind: kindString, text: value})
}

func (s *MemoryStore) SetDate(_ context.Context, name string, value time.Time) error {
	return s.set(name, property{kind: kindDate, date: value.UTC()})
}

func (s *MemoryStore) SetBinary(_ context.Context, name string, value []byte) error {
	return s.set(name, property{kind: kindBinary, binary: slices.Clone(value)})
}

func (s *MemoryStore) DeleteProperty(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.properties[name]; !ok {
		return fmt.Errorf("%w: property %q", ErrNotFound, name)
	}
	delete(s.properties, name)
	return nil
}

func (s *MemoryStore) CreateArrayNode(_ context.Context, collection string, appendNode bool) (string, error) {
	if strings.TrimSpace(collection) == "" {
		return "", fmt.Errorf("store: collection name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	count := s.collections[collection]
	if !appendNode {
		for index := count; index >= 1; index-- {
			if err := s.moveNodeLocked(collection, index, index+1); err != nil {
				return "", err
			}
		}
	}

	index := count + 1
	if !appendNode {
		index = 1
	}
	node, err := contacts.NodeFromIndex(collection, s.tag, index)
	if err != nil {
		return "", fmt.Errorf("store: create node in %q: %w", collection, err)
	}
	s.collections[collection] = count + 1
	return node, nil
}

// moveNodeLocked re-keys everything stored under the node at index from to
// the node at index to: the node's own property, its children, its labels
// and deleted flag, and any collections nested below it.
func (s *MemoryStore) moveNodeLocked(collection string, from, to int) error {
	src, err := contacts.NodeFromIndex(collection, s.tag, from)
	if err != nil {
		return err
	}
	dst, err := contacts.NodeFromIndex(collection, s.tag, to)
	if err != nil {
		return err
	}
	rekeySubtree(s.properties, src, dst)
	rekeySubtree(s.collections, src, dst)
	rekeySubtree(s.labels, src, dst)
	rekeySubtree(s.deleted, src, dst)
	return nil
}

// inSubtree reports whether key is node itself or lies below it.
func inSubtree(key, node string) bool {
	return key == node || strings.HasPrefix(key, node+"/")
}

// rekeySubtree moves every key in the subtree of src under dst. Moved
// entries are collected first so a destination key is never visited twice.
func rekeySubtree[V any](m map[string]V, src, dst string) {
	moved := map[string]V{}
	for key, value := range m {
		if inSubtree(key, src) {
			delete(m, key)
			moved[dst+key[len(src):]] = value
		}
	}
	for key, value := range moved {
		m[key] = value
	}
}

func dropSubtree[V any](m map[string]V, node string) {
	for key := range m {
		if inSubtree(key, node) {
			delete(m, key)
		}
	}
}

// checkNodeLocked verifies node names an existing, live element.
func (s *MemoryStore) checkNodeLocked(node string) error {
	collection, index, err := contacts.SplitNode(node, s.tag)
	if err != nil {
		return fmt.Errorf("store: node %q: %w", node, err)
	}
	if index < 1 || index > s.collections[collection] || s.deleted[node] {
		return fmt.Errorf("%w: node %q", ErrNotFound, node)
	}
	return nil
}

func (s *MemoryStore) DeleteArrayNode(_ context.Context, node string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkNodeLocked(node); err != nil {
		return err
	}
	dropSubtree(s.properties, node)
	dropSubtree(s.collections, node)
	dropSubtree(s.labels, node)
	dropSubtree(s.deleted, node)
	s.deleted[node] = true
	return nil
}

func (s *MemoryStore) Labels(_ context.Context, node string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkNodeLocked(node); err != nil {
		return nil, err
	}
	return slices.Clone(s.labels[node]), nil
}

func (s *MemoryStore) AddLabels(_ context.Context, node string, labels ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkNodeLocked(node); err != nil {
		return err
	}
	current := s.labels[node]
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" || containsFold(current, label) {
			continue
		}
		current = append(current, label)
	}
	s.labels[node] = current
	return nil
}

func (s *MemoryStore) RemoveLabel(_ context.Context, node, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkNodeLocked(node); err != nil {
		return err
	}
	current := s.labels[node]
	at := slices.IndexFunc(current, func(existing string) bool {
		return strings.EqualFold(existing, label)
	})
	if at < 0 {
		return fmt.Errorf("%w: label %q on %q", ErrNotFound, label, node)
	}
	s.labels[node] = slices.Delete(current, at, at+1)
	return nil
}

func (s *MemoryStore) ClearLabels(_ context.Context, node string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkNodeLocked(node); err != nil {
		return err
	}
	delete(s.labels, node)
	return nil
}

func (s *MemoryStore) LabeledNode(_ context.Context, collection string, labels ...string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for index := 1; index <= s.collections[collection]; index++ {
		node, err := contacts.NodeFromIndex(collection, s.tag, index)
		if err != nil {
			return "", false, err
		}
		if s.deleted[node] {
			continue
		}
		matched := true
		for _, label := range labels {
			if !containsFold(s.labels[node], label) {
				matched = false
				break
			}
		}
		if matched {
			return node, true, nil
		}
	}
	return "", false, nil
}

func containsFold(values []string, needle string) bool {
	return slices.ContainsFunc(values, func(value string) bool {
		return strings.EqualFold(value, needle)
	})
}
