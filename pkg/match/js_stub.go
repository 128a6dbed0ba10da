//go:build !js_eval

package match

const EngineJS = "js"

// NewJSEvaluator returns an Evaluator whose Compile fails with
// ErrEngineUnavailable. Build with -tags js_eval to enable goja.
func NewJSEvaluator(opts ...Option) Evaluator {
	_ = applyOptions(opts)
	return unavailableEvaluator{engine: EngineJS}
}

// JSAvailable reports whether the goja engine is compiled in.
func JSAvailable() bool {
	return false
}

type unavailableEvaluator struct {
	engine string
}

func (u unavailableEvaluator) Engine() string {
	return u.engine
}

func (u unavailableEvaluator) Compile(string) (Rule, error) {
	return nil, ErrEngineUnavailable
}
