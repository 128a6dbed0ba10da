// Package match compiles boolean predicates over group members. Three engines
// are available: expr (default), CEL and JavaScript. The JavaScript engine
// is only compiled in with the js_eval build tag.
//
// Every rule sees the same string variables: kind, contact_id, display_name
// and email, plus the single-argument helpers of a FunctionRegistry
// (email_domain, email_local and lowercase unless replaced).
package match

import (
	"errors"
	"fmt"
	"sync"
)

const (
	FieldKind        = "kind"
	FieldContactID   = "contact_id"
	FieldDisplayName = "display_name"
	FieldEmail       = "email"
)

var fieldNames = []string{FieldKind, FieldContactID, FieldDisplayName, FieldEmail}

var (
	ErrEmptyExpression   = errors.New("match: expression must not be empty")
	ErrNotBoolean        = errors.New("match: rule did not produce a boolean")
	ErrEngineUnavailable = errors.New("match: engine not available in this build")
)

// Fields holds the variable values a rule is matched against. Missing fields
// read as "".
type Fields map[string]string

func (f Fields) env() map[string]any {
	env := make(map[string]any, len(fieldNames))
	for _, name := range fieldNames {
		env[name] = f[name]
	}
	return env
}

// Evaluator compiles expressions into reusable rules.
type Evaluator interface {
	Engine() string
	Compile(expression string) (Rule, error)
}

// Rule is a compiled predicate. Implementations are safe for concurrent use.
type Rule interface {
	Match(fields Fields) (bool, error)
}

// ProgramCache stores compiled programs keyed by expression.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// MapCache is an unbounded ProgramCache.
type MapCache struct {
	mu       sync.RWMutex
	programs map[string]any
}

func NewMapCache() *MapCache {
	return &MapCache{programs: map[string]any{}}
}

func (c *MapCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.programs[key]
	return value, ok
}

func (c *MapCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.programs == nil {
		c.programs = map[string]any{}
	}
	c.programs[key] = value
}

// Option configures an engine.
type Option func(*config)

type config struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// WithProgramCache reuses compiled programs across Compile calls.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *config) {
		cfg.cache = cache
	}
}

// WithFunctionRegistry replaces the built-in helpers with the registry's.
// The registry is copied.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *config) {
		if registry == nil {
			return
		}
		cfg.registry = registry.Clone()
	}
}

func applyOptions(opts []Option) config {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.registry == nil {
		cfg.registry = NewFunctionRegistry()
	}
	return cfg
}

func (cfg config) cached(engine, expression string) (any, bool) {
	if cfg.cache == nil {
		return nil, false
	}
	return cfg.cache.Get(engine + ":" + expression)
}

func (cfg config) store(engine, expression string, program any) {
	if cfg.cache != nil {
		cfg.cache.Set(engine+":"+expression, program)
	}
}

// EvaluationError ties an engine failure to the expression that caused it.
type EvaluationError struct {
	Engine string
	Expr   string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("match: %s expr=%q: %v", e.Engine, e.Expr, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func wrapEvaluationError(engine, expression string, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		return err
	}
	return &EvaluationError{Engine: engine, Expr: expression, Err: err}
}

func asBool(engine, expression string, value any) (bool, error) {
	matched, ok := value.(bool)
	if !ok {
		return false, wrapEvaluationError(engine, expression, fmt.Errorf("%w: got %T", ErrNotBoolean, value))
	}
	return matched, nil
}
