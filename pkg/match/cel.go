package match

import (
	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

const EngineCEL = "cel"

type celEvaluator struct {
	cfg config
}

// NewCELEvaluator returns an Evaluator backed by cel-go. Registered functions
// are exposed as single-argument string functions returning dyn.
func NewCELEvaluator(opts ...Option) Evaluator {
	return &celEvaluator{cfg: applyOptions(opts)}
}

func (e *celEvaluator) Engine() string {
	return EngineCEL
}

func (e *celEvaluator) Compile(expression string) (Rule, error) {
	if expression == "" {
		return nil, ErrEmptyExpression
	}
	if cached, ok := e.cfg.cached(EngineCEL, expression); ok {
		if program, ok := cached.(celgo.Program); ok {
			return &celRule{expression: expression, program: program}, nil
		}
	}

	env, err := e.buildEnv()
	if err != nil {
		return nil, wrapEvaluationError(EngineCEL, expression, err)
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, wrapEvaluationError(EngineCEL, expression, issues.Err())
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, wrapEvaluationError(EngineCEL, expression, err)
	}
	e.cfg.store(EngineCEL, expression, program)
	return &celRule{expression: expression, program: program}, nil
}

func (e *celEvaluator) buildEnv() (*celgo.Env, error) {
	opts := make([]celgo.EnvOption, 0, len(fieldNames)+len(e.cfg.registry.Names()))
	for _, name := range fieldNames {
		opts = append(opts, celgo.Variable(name, celgo.StringType))
	}
	for _, name := range e.cfg.registry.Names() {
		opts = append(opts, celgo.Function(name,
			celgo.Overload(name+"_string", []*celgo.Type{celgo.StringType}, celgo.DynType,
				celgo.UnaryBinding(e.binding(name)),
			),
		))
	}
	return celgo.NewEnv(opts...)
}

func (e *celEvaluator) binding(name string) func(ref.Val) ref.Val {
	return func(arg ref.Val) ref.Val {
		out, err := e.cfg.registry.Call(name, arg.Value())
		if err != nil {
			return types.NewErr("%s", err.Error())
		}
		if out == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(out)
	}
}

type celRule struct {
	expression string
	program    celgo.Program
}

func (r *celRule) Match(fields Fields) (bool, error) {
	out, _, err := r.program.Eval(fields.env())
	if err != nil {
		return false, wrapEvaluationError(EngineCEL, r.expression, err)
	}
	return asBool(EngineCEL, r.expression, out.Value())
}
