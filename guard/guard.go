package guard

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AgrI-Mitra/bff/kisan"
	"github.com/AgrI-Mitra/bff/logger"
	"github.com/AgrI-Mitra/bff/model"
	"go.uber.org/zap"
)

// Func is a transition predicate. Guards are pure and synchronous: they
// classify the previous service result (carried on the event) or static
// context fields, and must not perform I/O.
type Func func(bc *model.BotContext, ev model.Event) bool

type Registry struct {
	guards map[string]Func
}

func NewRegistry() *Registry {
	r := &Registry{guards: make(map[string]Func)}
	r.registerBuiltins()
	return r
}

func (r *Registry) Register(name string, fn Func) {
	r.guards[name] = fn
}

// Resolve returns the guard behind a name. Besides registered guards, two
// declarative forms are understood: "field:<jsonpath>=<value>" compares a
// field of the service result, and "expr:<js>" evaluates a script
// predicate against {context, event}.
func (r *Registry) Resolve(name string) (Func, error) {
	if strings.HasPrefix(name, FIELD_GUARD_PREFIX) {
		return newFieldGuard(strings.TrimPrefix(name, FIELD_GUARD_PREFIX))
	}
	if strings.HasPrefix(name, EXPR_GUARD_PREFIX) {
		return newScriptGuard(strings.TrimPrefix(name, EXPR_GUARD_PREFIX))
	}
	fn, ok := r.guards[name]
	if !ok {
		return nil, fmt.Errorf("guard %s not registered", name)
	}
	return fn, nil
}

// Evaluate runs a guard, treating a panic as no-match. A guard fault never
// aborts the run; it only loses the vote.
func Evaluate(name string, fn Func, bc *model.BotContext, ev model.Event) (matched bool) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("guard panicked, treating as no match",
				zap.String("guard", name), zap.Any("panic", rec))
			matched = false
		}
	}()
	return fn(bc, ev)
}

var noRecordsPattern = regexp.MustCompile(`No Record Found for this \((.*?)\) Aadhar/Ben_id/Mobile\.`)

func (r *Registry) registerBuiltins() {
	r.Register("ifValidPhone", func(_ *model.BotContext, ev model.Event) bool {
		valid, ok := ev.Data.(bool)
		return ok && valid
	})
	r.Register("ifMultipleAadhaar", func(_ *model.BotContext, ev model.Event) bool {
		s, _ := ev.DataString()
		return s == kisan.MSG_MULTIPLE_RECORDS
	})
	r.Register("ifNoRecordsFound", func(_ *model.BotContext, ev model.Event) bool {
		s, ok := ev.DataString()
		if !ok {
			return false
		}
		return noRecordsPattern.MatchString(s) ||
			(strings.HasPrefix(s, "No Record Found for this") &&
				strings.HasSuffix(s, "Aadhar/Ben_id/Mobile."))
	})
	r.Register("ifOTPSend", func(_ *model.BotContext, ev model.Event) bool {
		s, _ := ev.DataString()
		return s == kisan.MSG_OTP_SENT
	})
	r.Register("ifTryAgain", func(_ *model.BotContext, ev model.Event) bool {
		s, _ := ev.DataString()
		return s == kisan.MSG_TRY_AGAIN
	})
	r.Register("ifNotValidAadhaar", func(_ *model.BotContext, ev model.Event) bool {
		s, _ := ev.DataString()
		return s == kisan.MSG_INVALID_IDENTIFIER
	})
	r.Register("ifInvalidOTP", func(_ *model.BotContext, ev model.Event) bool {
		s, _ := ev.DataString()
		return s == kisan.MSG_OTP_NOT_VERIFIED
	})
	r.Register("resendOTP", func(bc *model.BotContext, _ model.Event) bool {
		return bc.Query == "resend OTP"
	})
	r.Register("ifOTPHasBeenVerified", func(bc *model.BotContext, _ model.Event) bool {
		return bc.IsOTPVerified
	})
	r.Register("ifInvalidClassifier", func(_ *model.BotContext, ev model.Event) bool {
		return resultClass(ev) == "invalid"
	})
	r.Register("ifConvoStarterOrEnder", func(_ *model.BotContext, ev model.Event) bool {
		return resultClass(ev) == "convo"
	})
	r.Register("ifDocumentQuery", func(_ *model.BotContext, ev model.Event) bool {
		return resultClass(ev) == "SHC PDF"
	})
	r.Register("ifAudio", func(bc *model.BotContext, _ model.Event) bool {
		return bc.InputType == model.INPUT_TYPE_AUDIO
	})
	r.Register("ifText", func(bc *model.BotContext, _ model.Event) bool {
		return bc.InputType == model.INPUT_TYPE_TEXT
	})
}

func resultClass(ev model.Event) string {
	m, ok := ev.Data.(map[string]any)
	if !ok {
		return ""
	}
	class, _ := m["class"].(string)
	return class
}
