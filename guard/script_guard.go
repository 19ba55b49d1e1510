package guard

import (
	"encoding/json"
	"fmt"

	"github.com/AgrI-Mitra/bff/model"
	"github.com/dop251/goja"
)

const EXPR_GUARD_PREFIX = "expr:"

// newScriptGuard compiles a javascript predicate evaluated with the
// serialized context bound to `context` and the service result bound to
// `event.data`. The script's value is coerced to boolean.
func newScriptGuard(expression string) (Func, error) {
	if len(expression) == 0 {
		return nil, fmt.Errorf("script guard expression can not be empty")
	}
	program, err := goja.Compile("guard", expression, false)
	if err != nil {
		return nil, fmt.Errorf("error compiling guard expression %w", err)
	}
	return func(bc *model.BotContext, ev model.Event) bool {
		vm := goja.New()
		ctxData, err := json.Marshal(bc)
		if err != nil {
			return false
		}
		var ctxMap map[string]any
		if err := json.Unmarshal(ctxData, &ctxMap); err != nil {
			return false
		}
		if err := vm.Set("context", ctxMap); err != nil {
			return false
		}
		if err := vm.Set("event", map[string]any{"name": ev.Name, "data": ev.Data}); err != nil {
			return false
		}
		val, err := vm.RunProgram(program)
		if err != nil {
			return false
		}
		return val.ToBoolean()
	}, nil
}
