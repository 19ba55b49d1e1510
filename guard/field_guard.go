package guard

import (
	"fmt"
	"strings"

	"github.com/AgrI-Mitra/bff/model"
	"github.com/oliveagle/jsonpath"
)

const FIELD_GUARD_PREFIX = "field:"

// newFieldGuard builds a guard from "<jsonpath>=<value>": it looks up the
// path in the service result and compares the stringified value. Flow
// tables use this for one-off result checks that do not deserve a named
// guard.
func newFieldGuard(spec string) (Func, error) {
	path, want, found := strings.Cut(spec, "=")
	if !found || path == "" {
		return nil, fmt.Errorf("invalid field guard %q, expected <jsonpath>=<value>", spec)
	}
	compiled, err := jsonpath.Compile(path)
	if err != nil {
		return nil, fmt.Errorf("invalid field guard path %q: %w", path, err)
	}
	return func(_ *model.BotContext, ev model.Event) bool {
		value, err := compiled.Lookup(ev.Data)
		if err != nil {
			return false
		}
		return fmt.Sprintf("%v", value) == want
	}, nil
}
