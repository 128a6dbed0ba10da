//go:build js_eval

package match

import (
	"fmt"

	"github.com/dop251/goja"
)

const EngineJS = "js"

type jsEvaluator struct {
	cfg config
}

// NewJSEvaluator returns an Evaluator backed by goja. Each Match runs in a
// fresh runtime.
func NewJSEvaluator(opts ...Option) Evaluator {
	return &jsEvaluator{cfg: applyOptions(opts)}
}

// JSAvailable reports whether the goja engine is compiled in.
func JSAvailable() bool {
	return true
}

func (e *jsEvaluator) Engine() string {
	return EngineJS
}

func (e *jsEvaluator) Compile(expression string) (Rule, error) {
	if expression == "" {
		return nil, ErrEmptyExpression
	}
	if cached, ok := e.cfg.cached(EngineJS, expression); ok {
		if program, ok := cached.(*goja.Program); ok {
			return &jsRule{evaluator: e, expression: expression, program: program}, nil
		}
	}
	program, err := goja.Compile("", fmt.Sprintf("(function(){ return (%s); })()", expression), true)
	if err != nil {
		return nil, wrapEvaluationError(EngineJS, expression, err)
	}
	e.cfg.store(EngineJS, expression, program)
	return &jsRule{evaluator: e, expression: expression, program: program}, nil
}

type jsRule struct {
	evaluator  *jsEvaluator
	expression string
	program    *goja.Program
}

func (r *jsRule) Match(fields Fields) (bool, error) {
	vm := goja.New()
	for name, value := range fields.env() {
		if err := vm.Set(name, value); err != nil {
			return false, wrapEvaluationError(EngineJS, r.expression, err)
		}
	}
	registry := r.evaluator.cfg.registry
	for _, name := range registry.Names() {
		fn := name
		if err := vm.Set(fn, func(args ...any) (any, error) {
			return registry.Call(fn, args...)
		}); err != nil {
			return false, wrapEvaluationError(EngineJS, r.expression, err)
		}
	}

	value, err := vm.RunProgram(r.program)
	if err != nil {
		return false, wrapEvaluationError(EngineJS, r.expression, err)
	}
	return asBool(EngineJS, r.expression, value.Export())
}
