// Package activity reports reads of a contact's legacy group membership to
// pluggable hooks, for audit trails and usage metrics.
package activity

import (
	"strings"
	"time"
)

const (
	VerbGroupLoaded = "contact.group.loaded"
	VerbGroupFailed = "contact.group.failed"

	// ObjectTypeContact is the object type every event refers to.
	ObjectTypeContact = "contact"
)

// Event records one group read. ContactID is usually the contact's runtime
// id and may be empty when the reader was not told which contact it serves.
type Event struct {
	Verb       string
	ContactID  string
	ActorID    string
	TenantID   string
	Channel    string
	ContactIDs int
	OneOffs    int
	Failure    string
	OccurredAt time.Time
}

// NewLoadedEvent describes a successful read with its member counts.
func NewLoadedEvent(contactID string, contactIDs, oneOffs int) Event {
	return Event{
		Verb:       VerbGroupLoaded,
		ContactID:  contactID,
		ContactIDs: contactIDs,
		OneOffs:    oneOffs,
	}
}

// NewFailedEvent describes a read that stopped on err.
func NewFailedEvent(contactID string, err error) Event {
	event := Event{Verb: VerbGroupFailed, ContactID: contactID}
	if err != nil {
		event.Failure = err.Error()
	}
	return event
}

// ObjectID is ContactID, or ObjectTypeContact when the contact is unknown.
func (e Event) ObjectID() string {
	if id := strings.TrimSpace(e.ContactID); id != "" {
		return id
	}
	return ObjectTypeContact
}

// Data flattens the payload for sinks that store free-form maps. Counts are
// only present on loaded events and the error only on failed ones.
func (e Event) Data() map[string]any {
	data := map[string]any{}
	switch e.Verb {
	case VerbGroupLoaded:
		data["contact_ids"] = e.ContactIDs
		data["one_offs"] = e.OneOffs
	case VerbGroupFailed:
		if e.Failure != "" {
			data["error"] = e.Failure
		}
	}
	return data
}

// withDefaults trims identifiers and fills channel, actor, tenant and time
// from cfg where the event leaves them blank.
func (e Event) withDefaults(cfg Config, now time.Time) Event {
	e.Verb = strings.TrimSpace(e.Verb)
	e.ContactID = strings.TrimSpace(e.ContactID)
	e.ActorID = firstNonBlank(e.ActorID, cfg.ActorID)
	e.TenantID = firstNonBlank(e.TenantID, cfg.TenantID)
	e.Channel = firstNonBlank(e.Channel, cfg.Channel, DefaultChannel)
	if e.OccurredAt.IsZero() {
		e.OccurredAt = now
	}
	return e
}

func firstNonBlank(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
