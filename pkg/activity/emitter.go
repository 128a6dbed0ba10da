package activity

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultChannel is applied to events emitted without a channel.
const DefaultChannel = "contacts"

// Hook receives events after defaults are applied.
type Hook interface {
	Notify(ctx context.Context, event Event) error
}

// HookFunc adapts a plain function to Hook.
type HookFunc func(ctx context.Context, event Event) error

// Notify calls fn. A nil HookFunc does nothing.
func (fn HookFunc) Notify(ctx context.Context, event Event) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// Config sets the defaults an Emitter stamps on events. ActorID and
// TenantID identify who triggered the reads.
type Config struct {
	Enabled  bool
	Channel  string
	ActorID  string
	TenantID string
}

// Emitter delivers events to every hook in order.
type Emitter struct {
	cfg   Config
	hooks []Hook
	now   func() time.Time
}

// NewEmitter drops nil hooks. The emitter is disabled when cfg.Enabled is
// false or no hook remains.
func NewEmitter(cfg Config, hooks ...Hook) *Emitter {
	live := make([]Hook, 0, len(hooks))
	for _, hook := range hooks {
		if hook != nil {
			live = append(live, hook)
		}
	}
	return &Emitter{cfg: cfg, hooks: live, now: time.Now}
}

// Enabled is safe to call on a nil Emitter.
func (e *Emitter) Enabled() bool {
	return e != nil && e.cfg.Enabled && len(e.hooks) > 0
}

// Emit applies defaults and notifies every hook, even after one fails.
// Events without a verb are dropped. Failures are joined, each tagged with
// the hook's position.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() {
		return nil
	}
	event = event.withDefaults(e.cfg, e.now())
	if event.Verb == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var errs []error
	for i, hook := range e.hooks {
		if err := hook.Notify(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("activity: hook %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
