package match

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Helper transforms one member field. Rules call it as name(field), for
// example email_domain(email).
type Helper func(value string) (any, error)

// Built-in helper names. NewFunctionRegistry registers all of them.
const (
	HelperEmailDomain = "email_domain"
	HelperEmailLocal  = "email_local"
	HelperLowercase   = "lowercase"
)

// FunctionRegistry holds the helpers rules may call. Every helper takes a
// single string argument so expr, CEL and JavaScript rules see the same
// signature.
type FunctionRegistry struct {
	mu      sync.RWMutex
	helpers map[string]Helper
}

// NewFunctionRegistry returns a registry preloaded with the built-in
// helpers.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{helpers: map[string]Helper{
		HelperEmailDomain: EmailDomain,
		HelperEmailLocal:  EmailLocal,
		HelperLowercase:   Lowercase,
	}}
}

// Register adds helper under name. Names are lowercase identifiers, must not
// shadow a member field and may only be used once.
func (r *FunctionRegistry) Register(name string, helper Helper) error {
	if helper == nil {
		return fmt.Errorf("match: helper %q is nil", name)
	}
	if !validHelperName(name) {
		return fmt.Errorf("match: helper name %q must be a lowercase identifier", name)
	}
	if slices.Contains(fieldNames, name) {
		return fmt.Errorf("match: helper %q shadows a member field", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.helpers == nil {
		r.helpers = map[string]Helper{}
	}
	if _, exists := r.helpers[name]; exists {
		return fmt.Errorf("match: helper %q already registered", name)
	}
	r.helpers[name] = helper
	return nil
}

func validHelperName(name string) bool {
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return true
}

// Clone copies the registry so an engine is unaffected by later
// registrations.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &FunctionRegistry{helpers: maps.Clone(r.helpers)}
}

// Call runs the helper name with args as passed by a rule engine. Exactly
// one string argument is accepted.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("match: no helpers registered")
	}
	r.mu.RLock()
	helper := r.helpers[name]
	r.mu.RUnlock()
	if helper == nil {
		return nil, fmt.Errorf("match: helper %q not registered", name)
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("match: %s expects 1 argument, got %d", name, len(args))
	}
	value, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("match: %s expects a string, got %T", name, args[0])
	}
	return helper(value)
}

// Names returns the registered helper names, sorted.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.helpers))
}

// EmailDomain returns the lowercased part of an address after the last '@',
// or "".
func EmailDomain(address string) (any, error) {
	at := strings.LastIndexByte(address, '@')
	if at < 0 {
		return "", nil
	}
	return strings.ToLower(address[at+1:]), nil
}

// EmailLocal returns the part of an address before the last '@', or the
// whole value when there is none.
func EmailLocal(address string) (any, error) {
	if at := strings.LastIndexByte(address, '@'); at >= 0 {
		return address[:at], nil
	}
	return address, nil
}

func Lowercase(value string) (any, error) {
	return strings.ToLower(value), nil
}
