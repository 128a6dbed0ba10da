package group

import (
	"github.com/goliatone/go-contacts/pkg/mapi"
	"github.com/goliatone/go-contacts/pkg/match"
)

// MemberKind tells referenced members from inline ones.
type MemberKind string

const (
	KindContact MemberKind = "contact"
	KindOneOff  MemberKind = "one_off"
)

// Member is a flattened view over both membership lists.
type Member struct {
	Kind        MemberKind `json:"kind"`
	ContactID   string     `json:"contact_id,omitempty"`
	DisplayName string     `json:"display_name,omitempty"`
	Email       string     `json:"email,omitempty"`
}

func (m Member) fields() match.Fields {
	return match.Fields{
		match.FieldKind:        string(m.Kind),
		match.FieldContactID:   m.ContactID,
		match.FieldDisplayName: m.DisplayName,
		match.FieldEmail:       m.Email,
	}
}

// Group is the decoded legacy membership of one contact. Either list is
// empty when its property is absent.
type Group struct {
	ContactIDs []string
	OneOffs    []mapi.OneOff
}

// Empty reports whether the contact has no members of either kind.
func (g Group) Empty() bool {
	return len(g.ContactIDs) == 0 && len(g.OneOffs) == 0
}

// Members lists contact references first, then one-offs, each in stream
// order.
func (g Group) Members() []Member {
	members := make([]Member, 0, len(g.ContactIDs)+len(g.OneOffs))
	for _, id := range g.ContactIDs {
		members = append(members, Member{Kind: KindContact, ContactID: id})
	}
	for _, oneOff := range g.OneOffs {
		members = append(members, Member{Kind: KindOneOff, DisplayName: oneOff.DisplayName, Email: oneOff.Email})
	}
	return members
}
