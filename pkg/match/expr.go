package match

import (
	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

const EngineExpr = "expr"

type exprEvaluator struct {
	cfg config
}

// NewExprEvaluator returns an Evaluator backed by expr-lang/expr.
func NewExprEvaluator(opts ...Option) Evaluator {
	return &exprEvaluator{cfg: applyOptions(opts)}
}

func (e *exprEvaluator) Engine() string {
	return EngineExpr
}

func (e *exprEvaluator) Compile(expression string) (Rule, error) {
	if expression == "" {
		return nil, ErrEmptyExpression
	}
	if cached, ok := e.cfg.cached(EngineExpr, expression); ok {
		if program, ok := cached.(*exprvm.Program); ok {
			return &exprRule{expression: expression, program: program}, nil
		}
	}

	options := []exprlang.Option{
		exprlang.Env(Fields{}.env()),
		exprlang.AsBool(),
	}
	for _, name := range e.cfg.registry.Names() {
		fn := name
		options = append(options, exprlang.Function(fn, func(args ...any) (any, error) {
			return e.cfg.registry.Call(fn, args...)
		}, new(func(string) any)))
	}

	program, err := exprlang.Compile(expression, options...)
	if err != nil {
		return nil, wrapEvaluationError(EngineExpr, expression, err)
	}
	e.cfg.store(EngineExpr, expression, program)
	return &exprRule{expression: expression, program: program}, nil
}

type exprRule struct {
	expression string
	program    *exprvm.Program
}

func (r *exprRule) Match(fields Fields) (bool, error) {
	out, err := exprlang.Run(r.program, fields.env())
	if err != nil {
		return false, wrapEvaluationError(EngineExpr, r.expression, err)
	}
	return asBool(EngineExpr, r.expression, out)
}
