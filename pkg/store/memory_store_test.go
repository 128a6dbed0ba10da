package store_test

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	contacts "github.com/goliatone/go-contacts"
	"github.com/goliatone/go-contacts/pkg/store"
)

var _ store.PropertyStore = (*store.MemoryStore)(nil)

func TestMemoryStoreScalarProperties(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	if _, ok, err := s.String(ctx, "NameCollection/ArrayID1/FormattedName"); ok || err != nil {
		t.Fatalf("expected absent property, got ok=%v err=%v", ok, err)
	}

	if err := s.SetString(ctx, "Notes", "hello"); err != nil {
		t.Fatalf("set string: %v", err)
	}
	when := time.Date(2024, 3, 9, 10, 0, 0, 0, time.FixedZone("x", 3600))
	if err := s.SetDate(ctx, "Created", when); err != nil {
		t.Fatalf("set date: %v", err)
	}
	payload := []byte{1, 2, 3}
	if err := s.SetBinary(ctx, "Blob", payload); err != nil {
		t.Fatalf("set binary: %v", err)
	}
	payload[0] = 9

	text, ok, err := s.String(ctx, "Notes")
	if err != nil || !ok || text != "hello" {
		t.Fatalf("unexpected string %q ok=%v err=%v", text, ok, err)
	}
	date, ok, err := s.Date(ctx, "Created")
	if err != nil || !ok || !date.Equal(when) {
		t.Fatalf("unexpected date %v ok=%v err=%v", date, ok, err)
	}
	blob, ok, err := s.Binary(ctx, "Blob")
	if err != nil || !ok || !bytes.Equal(blob, []byte{1, 2, 3}) {
		t.Fatalf("expected stored copy, got %v ok=%v err=%v", blob, ok, err)
	}

	if _, _, err := s.Binary(ctx, "Notes"); !errors.Is(err, store.ErrTypeMismatch) {
		t.Fatalf("expected type mismatch, got %v", err)
	}

	if err := s.DeleteProperty(ctx, "Notes"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteProperty(ctx, "Notes"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryStoreArrayNodes(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	first, err := s.CreateArrayNode(ctx, "EmailAddressCollection", true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first != "EmailAddressCollection"+contacts.DefaultArrayNodeTag+"1" {
		t.Fatalf("unexpected node %q", first)
	}
	if err := s.SetString(ctx, first+"/Address", "ann@example.com"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.AddLabels(ctx, first, "Preferred", "Personal"); err != nil {
		t.Fatalf("labels: %v", err)
	}

	prepended, err := s.CreateArrayNode(ctx, "EmailAddressCollection", false)
	if err != nil {
		t.Fatalf("prepend: %v", err)
	}
	if index, _ := contacts.IndexFromNode(prepended); index != 1 {
		t.Fatalf("expected prepended node at 1, got %q", prepended)
	}

	shifted := "EmailAddressCollection" + contacts.DefaultArrayNodeTag + "2"
	address, ok, err := s.String(ctx, shifted+"/Address")
	if err != nil || !ok || address != "ann@example.com" {
		t.Fatalf("expected shifted property, got %q ok=%v err=%v", address, ok, err)
	}
	labels, err := s.Labels(ctx, shifted)
	if err != nil {
		t.Fatalf("labels: %v", err)
	}
	if !reflect.DeepEqual(labels, []string{"Preferred", "Personal"}) {
		t.Fatalf("unexpected shifted labels %v", labels)
	}
	if labels, _ := s.Labels(ctx, prepended); len(labels) != 0 {
		t.Fatalf("expected new node without labels, got %v", labels)
	}

	node, ok, err := s.LabeledNode(ctx, "EmailAddressCollection", "preferred")
	if err != nil || !ok || node != shifted {
		t.Fatalf("expected labeled node %q, got %q ok=%v err=%v", shifted, node, ok, err)
	}

	if err := s.DeleteArrayNode(ctx, shifted); err != nil {
		t.Fatalf("delete node: %v", err)
	}
	if _, ok, _ := s.String(ctx, shifted+"/Address"); ok {
		t.Fatalf("expected node properties removed")
	}
	if _, ok, _ := s.LabeledNode(ctx, "EmailAddressCollection", "Preferred"); ok {
		t.Fatalf("deleted node must not match labels")
	}
	if err := s.DeleteArrayNode(ctx, shifted); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}

	third, err := s.CreateArrayNode(ctx, "EmailAddressCollection", true)
	if err != nil {
		t.Fatalf("create after delete: %v", err)
	}
	if index, _ := contacts.IndexFromNode(third); index != 3 {
		t.Fatalf("expected deleted slot to be kept, got %q", third)
	}
}

func TestMemoryStoreLabels(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore(store.WithArrayNodeTag("#"))

	node, err := s.CreateArrayNode(ctx, "PhoneNumberCollection", true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if node != "PhoneNumberCollection#1" {
		t.Fatalf("expected custom tag, got %q", node)
	}

	if err := s.AddLabels(ctx, node, "Cellular", "cellular", " ", "Business"); err != nil {
		t.Fatalf("add: %v", err)
	}
	labels, _ := s.Labels(ctx, node)
	if !reflect.DeepEqual(labels, []string{"Cellular", "Business"}) {
		t.Fatalf("unexpected labels %v", labels)
	}
	if err := s.RemoveLabel(ctx, node, "CELLULAR"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.RemoveLabel(ctx, node, "Cellular"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := s.ClearLabels(ctx, node); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if labels, _ := s.Labels(ctx, node); len(labels) != 0 {
		t.Fatalf("expected no labels, got %v", labels)
	}

	if err := s.AddLabels(ctx, "PhoneNumberCollection#7", "x"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found for unknown node, got %v", err)
	}
	if _, err := s.Labels(ctx, "PhoneNumberCollection"); !contacts.IsReason(err, contacts.ReasonMissingIndex) {
		t.Fatalf("expected malformed node error, got %v", err)
	}
}

func TestMemoryStorePrependCarriesWholeSubtree(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	node, err := s.CreateArrayNode(ctx, "Coll", true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.SetString(ctx, node, "node value"); err != nil {
		t.Fatalf("set node value: %v", err)
	}
	nested := node + "/Sub"
	first, err := s.CreateArrayNode(ctx, nested, true)
	if err != nil {
		t.Fatalf("create nested: %v", err)
	}
	second, err := s.CreateArrayNode(ctx, nested, true)
	if err != nil {
		t.Fatalf("create nested: %v", err)
	}
	if err := s.SetString(ctx, second+"/Value", "nested"); err != nil {
		t.Fatalf("set nested: %v", err)
	}
	if err := s.AddLabels(ctx, second, "Home"); err != nil {
		t.Fatalf("label nested: %v", err)
	}
	if err := s.DeleteArrayNode(ctx, first); err != nil {
		t.Fatalf("delete nested: %v", err)
	}

	if _, err := s.CreateArrayNode(ctx, "Coll", false); err != nil {
		t.Fatalf("prepend: %v", err)
	}

	moved := "Coll" + contacts.DefaultArrayNodeTag + "2"
	movedNested := moved + "/Sub"
	if value, ok, _ := s.String(ctx, moved); !ok || value != "node value" {
		t.Fatalf("expected node property to move, got %q ok=%v", value, ok)
	}
	if value, ok, _ := s.String(ctx, movedNested+contacts.DefaultArrayNodeTag+"2/Value"); !ok || value != "nested" {
		t.Fatalf("expected nested property to move, got %q ok=%v", value, ok)
	}
	if got, ok, err := s.LabeledNode(ctx, movedNested, "home"); err != nil || !ok || got != movedNested+contacts.DefaultArrayNodeTag+"2" {
		t.Fatalf("expected nested labels and counter to move, got %q ok=%v err=%v", got, ok, err)
	}
	if _, err := s.Labels(ctx, movedNested+contacts.DefaultArrayNodeTag+"1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected nested deleted flag to move, got %v", err)
	}
	next, err := s.CreateArrayNode(ctx, movedNested, true)
	if err != nil {
		t.Fatalf("create under moved collection: %v", err)
	}
	if index, _ := contacts.IndexFromNode(next); index != 3 {
		t.Fatalf("expected nested counter to continue at 3, got %q", next)
	}

	fresh := "Coll" + contacts.DefaultArrayNodeTag + "1"
	if _, ok, _ := s.String(ctx, fresh); ok {
		t.Fatalf("prepended node must start empty")
	}
	if _, ok, _ := s.LabeledNode(ctx, fresh+"/Sub"); ok {
		t.Fatalf("prepended node must not inherit nested collections")
	}
}

func TestMemoryStoreDeleteDropsWholeSubtree(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	node, err := s.CreateArrayNode(ctx, "Coll", true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.SetString(ctx, node, "node value"); err != nil {
		t.Fatalf("set: %v", err)
	}
	child, err := s.CreateArrayNode(ctx, node+"/Sub", true)
	if err != nil {
		t.Fatalf("create nested: %v", err)
	}
	if err := s.AddLabels(ctx, child, "Work"); err != nil {
		t.Fatalf("label: %v", err)
	}

	if err := s.DeleteArrayNode(ctx, node); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.String(ctx, node); ok {
		t.Fatalf("expected node property removed")
	}
	if _, ok, _ := s.LabeledNode(ctx, node+"/Sub", "Work"); ok {
		t.Fatalf("expected nested collection removed")
	}
}
