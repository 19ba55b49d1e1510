package model

// FlowDefinition is the declarative state graph for one conversation
// variant. Definitions are data only; guards and services are referenced
// by name and resolved against registries when the definition is compiled.
type FlowDefinition struct {
	Name         string              `json:"name"`
	InitialState string              `json:"initialState"`
	States       map[string]StateDef `json:"states"`
}

// StateDef describes one node of the graph.
//
// Transitions are evaluated in declared order against the settled result
// of the entry service; the first matching guard wins. When none match the
// DefaultTarget is taken. ErrorTarget, when set, is where a rejected entry
// service routes; without it a service failure terminates the run.
//
// Pause marks a state that suspends the run when transitioned into: the
// turn ends there and the next user message resumes at this state, feeding
// its entry service.
type StateDef struct {
	OnEntry       string          `json:"onEntry,omitempty"`
	Transitions   []TransitionDef `json:"transitions,omitempty"`
	DefaultTarget string          `json:"defaultTarget,omitempty"`
	ErrorTarget   string          `json:"errorTarget,omitempty"`
	Pause         bool            `json:"pause,omitempty"`
	Terminal      bool            `json:"terminal,omitempty"`
}

type TransitionDef struct {
	Guard  string `json:"guard"`
	Target string `json:"target"`
}
