// Package usersink records contact group activity in a go-users activity
// log.
package usersink

import (
	"context"
	"strings"

	"github.com/goliatone/go-contacts/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook is an activity.Hook writing one ActivityRecord per event.
type Hook struct {
	Sink usertypes.ActivitySink
}

var _ activity.Hook = Hook{}

// Notify converts event. Actor and tenant ids that are not UUIDs are stored
// as uuid.Nil; the contact's runtime id becomes the record's object id.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	return h.Sink.Log(ctx, usertypes.ActivityRecord{
		ActorID:    parseUUID(event.ActorID),
		TenantID:   parseUUID(event.TenantID),
		Verb:       event.Verb,
		ObjectType: activity.ObjectTypeContact,
		ObjectID:   event.ObjectID(),
		Channel:    event.Channel,
		Data:       event.Data(),
		OccurredAt: event.OccurredAt,
	})
}

func parseUUID(input string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(input))
	if err != nil {
		return uuid.Nil
	}
	return id
}
