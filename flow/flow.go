package flow

import (
	"fmt"

	"github.com/AgrI-Mitra/bff/action"
	"github.com/AgrI-Mitra/bff/guard"
	"github.com/AgrI-Mitra/bff/model"
)

// Flow is a compiled flow definition: every guard and service name is
// resolved, every transition target checked. A Flow is immutable and safe
// to share across runs.
type Flow struct {
	Name         string
	InitialState string
	states       map[string]*state
}

type state struct {
	name          string
	entry         action.Func
	entryName     string
	transitions   []transition
	defaultTarget string
	errorTarget   string
	pause         bool
	terminal      bool
}

type transition struct {
	guardName string
	guard     guard.Func
	target    string
}

// Convert compiles a definition against the guard and service registries.
// Any dangling reference fails here, at load time: a flow that references
// an unknown state, guard or service must never produce a run.
func Convert(def *model.FlowDefinition, guards *guard.Registry, services *action.Registry) (*Flow, error) {
	if len(def.States) == 0 {
		return nil, fmt.Errorf("flow %s has no states", def.Name)
	}
	if _, ok := def.States[def.InitialState]; !ok {
		return nil, fmt.Errorf("flow %s: initial state %s is not defined", def.Name, def.InitialState)
	}
	fl := &Flow{
		Name:         def.Name,
		InitialState: def.InitialState,
		states:       make(map[string]*state, len(def.States)),
	}
	for name, sd := range def.States {
		st := &state{
			name:          name,
			entryName:     sd.OnEntry,
			defaultTarget: sd.DefaultTarget,
			errorTarget:   sd.ErrorTarget,
			pause:         sd.Pause,
			terminal:      sd.Terminal,
		}
		if sd.OnEntry != "" {
			fn, err := services.Resolve(sd.OnEntry)
			if err != nil {
				return nil, fmt.Errorf("flow %s state %s: %w", def.Name, name, err)
			}
			st.entry = fn
		}
		for _, td := range sd.Transitions {
			fn, err := guards.Resolve(td.Guard)
			if err != nil {
				return nil, fmt.Errorf("flow %s state %s: %w", def.Name, name, err)
			}
			if err := checkTarget(def, name, td.Target); err != nil {
				return nil, err
			}
			st.transitions = append(st.transitions, transition{
				guardName: td.Guard,
				guard:     fn,
				target:    td.Target,
			})
		}
		if !sd.Terminal {
			if sd.DefaultTarget == "" {
				return nil, fmt.Errorf("flow %s state %s: non-terminal state needs a default target", def.Name, name)
			}
			if err := checkTarget(def, name, sd.DefaultTarget); err != nil {
				return nil, err
			}
		}
		if sd.ErrorTarget != "" {
			if err := checkTarget(def, name, sd.ErrorTarget); err != nil {
				return nil, err
			}
		}
		fl.states[name] = st
	}
	return fl, nil
}

func checkTarget(def *model.FlowDefinition, from string, target string) error {
	if _, ok := def.States[target]; !ok {
		return fmt.Errorf("flow %s state %s: transition target %s is not defined", def.Name, from, target)
	}
	return nil
}

func (f *Flow) state(name string) (*state, bool) {
	st, ok := f.states[name]
	return st, ok
}
