// Package group reads the legacy address-book group membership stored on a
// contact. Reads are lazy: the presence probe never decodes, and decoding
// happens on Load.
package group

import (
	"context"
	"errors"
	"fmt"
	"time"

	contacts "github.com/goliatone/go-contacts"
	"github.com/goliatone/go-contacts/pkg/activity"
	"github.com/goliatone/go-contacts/pkg/mapi"
	"github.com/goliatone/go-contacts/pkg/match"
	"github.com/goliatone/go-contacts/pkg/store"
)

// Option configures a Reader.
type Option func(*config)

type config struct {
	logger    Logger
	evaluator match.Evaluator
	emitter   *activity.Emitter
	contactID string
}

// WithEvaluator selects the engine Members uses to compile filters.
func WithEvaluator(evaluator match.Evaluator) Option {
	return func(cfg *config) {
		cfg.evaluator = evaluator
	}
}

// WithActivity emits an event to hooks after every Load. activityCfg
// carries the channel, actor and tenant stamped on each event.
func WithActivity(activityCfg activity.Config, hooks ...activity.Hook) Option {
	return func(cfg *config) {
		cfg.emitter = activity.NewEmitter(activityCfg, hooks...)
	}
}

// WithContactID sets the object id used on activity events, typically the
// contact's runtime id.
func WithContactID(id string) Option {
	return func(cfg *config) {
		cfg.contactID = id
	}
}

// Reader reads legacy group data from a property store. It holds no state
// between calls and is safe for concurrent use when the source is.
type Reader struct {
	source store.BinaryReader
	cfg    config
}

// NewReader builds a Reader over source. Without WithEvaluator, filters are
// compiled by the expr engine.
func NewReader(source store.BinaryReader, opts ...Option) *Reader {
	cfg := config{logger: noopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.evaluator == nil {
		cfg.evaluator = match.NewExprEvaluator()
	}
	return &Reader{source: source, cfg: cfg}
}

// HasLegacyGroupData reports whether either membership property is present.
// Contents are not validated, so Load may still fail after a true result.
// The error only reports store failures.
func (r *Reader) HasLegacyGroupData(ctx context.Context) (bool, error) {
	if r.source == nil {
		return false, fmt.Errorf("group: %w: property store is nil", contacts.ErrInvalidArgument)
	}
	for _, name := range []string{mapi.PropContactIDs, mapi.PropOneOffs} {
		start := time.Now()
		_, ok, err := r.source.Binary(ctx, name)
		r.cfg.logger.LogGroupEvent(LogEvent{
			Op:       OpProbe,
			Property: name,
			Present:  ok,
			Duration: time.Since(start),
			Err:      err,
		})
		if err != nil {
			return false, fmt.Errorf("group: read %q: %w", name, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Load decodes both membership properties. Absent properties give empty
// lists. A malformed property fails the whole Load with its
// *contacts.FormatError and no partial Group.
func (r *Reader) Load(ctx context.Context) (Group, error) {
	if r.source == nil {
		return Group{}, fmt.Errorf("group: %w: property store is nil", contacts.ErrInvalidArgument)
	}

	ids, err := decodeProperty(ctx, r, mapi.PropContactIDs, mapi.DecodeContactIDs)
	if err != nil {
		r.emit(ctx, activity.NewFailedEvent(r.cfg.contactID, err))
		return Group{}, err
	}
	oneOffs, err := decodeProperty(ctx, r, mapi.PropOneOffs, mapi.DecodeOneOffs)
	if err != nil {
		r.emit(ctx, activity.NewFailedEvent(r.cfg.contactID, err))
		return Group{}, err
	}

	group := Group{ContactIDs: ids, OneOffs: oneOffs}
	r.emit(ctx, activity.NewLoadedEvent(r.cfg.contactID, len(ids), len(oneOffs)))
	return group, nil
}

// Members loads the group and returns the members matching filter. An empty
// filter keeps every member.
func (r *Reader) Members(ctx context.Context, filter string) ([]Member, error) {
	var rule match.Rule
	if filter != "" {
		compiled, err := r.cfg.evaluator.Compile(filter)
		if err != nil {
			return nil, fmt.Errorf("group: compile filter: %w", err)
		}
		rule = compiled
	}

	group, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	members := group.Members()
	if rule == nil {
		return members, nil
	}

	selected := members[:0]
	for _, member := range members {
		ok, err := rule.Match(member.fields())
		if err != nil {
			return nil, fmt.Errorf("group: filter %s member: %w", member.Kind, err)
		}
		if ok {
			selected = append(selected, member)
		}
	}
	return selected, nil
}

func decodeProperty[T any](ctx context.Context, r *Reader, name string, decode func([]byte) ([]T, error)) ([]T, error) {
	start := time.Now()
	data, ok, err := r.source.Binary(ctx, name)
	if err != nil {
		r.cfg.logger.LogGroupEvent(LogEvent{Op: OpDecode, Property: name, Duration: time.Since(start), Err: err})
		return nil, fmt.Errorf("group: read %q: %w", name, err)
	}
	if !ok {
		r.cfg.logger.LogGroupEvent(LogEvent{Op: OpDecode, Property: name, Duration: time.Since(start)})
		return nil, nil
	}

	records, err := decode(data)
	r.cfg.logger.LogGroupEvent(LogEvent{
		Op:       OpDecode,
		Property: name,
		Present:  true,
		Records:  len(records),
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// emit never fails a read; hook errors go to the logger.
func (r *Reader) emit(ctx context.Context, event activity.Event) {
	if !r.cfg.emitter.Enabled() {
		return
	}
	if err := r.cfg.emitter.Emit(ctx, event); err != nil {
		r.cfg.logger.LogGroupEvent(LogEvent{Op: OpActivity, Err: err})
	}
}

// IsFormatError reports whether err came from malformed group data rather
// than from the store or a filter.
func IsFormatError(err error) bool {
	return errors.Is(err, contacts.ErrFormat)
}
