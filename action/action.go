package action

import (
	"context"
	"fmt"

	"github.com/AgrI-Mitra/bff/model"
)

// Func is a service invoker: one named async operation executed on state
// entry. Its settled result becomes the event the state's guards classify.
// A Func may mutate the context it is handed; it must not retain it.
type Func func(ctx context.Context, bc *model.BotContext, ev model.Event) (any, error)

type Registry struct {
	actions map[string]Func
}

func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]Func)}
}

func (r *Registry) Register(name string, fn Func) {
	r.actions[name] = fn
}

func (r *Registry) Resolve(name string) (Func, error) {
	fn, ok := r.actions[name]
	if !ok {
		return nil, fmt.Errorf("service %s not registered", name)
	}
	return fn, nil
}
