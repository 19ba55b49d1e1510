package flow

import (
	"context"
	"fmt"

	"github.com/AgrI-Mitra/bff/action"
	"github.com/AgrI-Mitra/bff/guard"
	"github.com/AgrI-Mitra/bff/logger"
	"github.com/AgrI-Mitra/bff/model"
	"go.uber.org/zap"
)

// MSG_SOMETHING_WENT_WRONG is the only failure text a user ever sees for
// an unrecovered service fault; raw errors stay in the logs.
const MSG_SOMETHING_WENT_WRONG = action.MSG_SOMETHING_WENT_WRONG

// maxSteps bounds one run. A healthy flow pauses or terminates long
// before this; hitting the bound means a definition cycles without a
// pause boundary.
const maxSteps = 64

type OutcomeStatus string

const OUTCOME_PAUSED OutcomeStatus = "Paused"
const OUTCOME_COMPLETED OutcomeStatus = "Completed"
const OUTCOME_FAILED OutcomeStatus = "Failed"

// Outcome is the explicit result of one run. Callers branch on Status
// instead of sniffing context flags, so a paused run can never be taken
// for a completed one.
type Outcome struct {
	Status  OutcomeStatus
	Context *model.BotContext
	Reason  string
}

// Machine binds a compiled flow to one conversation context and drives
// one bounded run: from the supplied context to the next pause or terminal
// boundary. The context is the only thing that survives the run. A machine
// is single-use: create, Start once, discard.
type Machine struct {
	flow    *Flow
	bc      *model.BotContext
	started bool
}

func NewFlowMachine(fl *Flow, bc *model.BotContext) (*Machine, error) {
	if bc.CurrentState == "" {
		bc.CurrentState = fl.InitialState
	}
	if _, ok := fl.state(bc.CurrentState); !ok {
		return nil, fmt.Errorf("flow %s: stored state %s is not defined", fl.Name, bc.CurrentState)
	}
	// A reloaded context still carries the marker of the pause that ended
	// the previous run; left in place it would re-suspend the first entry.
	if bc.Type == model.TYPE_PAUSE {
		bc.Type = ""
	}
	return &Machine{flow: fl, bc: bc}, nil
}

// Start dispatches one external event and advances until the run pauses,
// reaches a terminal state, or faults. It never returns a raw service or
// guard error: faults settle into the context.
//
// The state the run begins at consumes the event through its entry
// service; pause markers are only honored when a state is transitioned
// into mid-run, so a resumed run does not immediately re-suspend.
func (m *Machine) Start(ctx context.Context, ev model.Event) Outcome {
	if m.started {
		return m.fail("machine already started")
	}
	m.started = true
	bc := m.bc

	if bc.IsDone() {
		// Terminal contexts are inert: nothing runs, nothing changes.
		return Outcome{Status: OUTCOME_COMPLETED, Context: bc}
	}

	current, _ := m.flow.state(bc.CurrentState)
	event := ev
	for step := 0; step < maxSteps; step++ {
		if current.entry != nil {
			result, err := current.entry(ctx, bc, event)
			if err != nil {
				next, routed := m.routeError(current, err)
				if !routed {
					return m.terminalFault(err)
				}
				current = next
				event = model.Event{Name: "error", Data: err.Error()}
				if outcome, stop := m.enterState(current); stop {
					return outcome
				}
				continue
			}
			event = model.Event{Name: current.entryName, Data: result}
			if bc.Type == model.TYPE_PAUSE {
				// Imperative pause set by the service itself.
				return Outcome{Status: OUTCOME_PAUSED, Context: bc}
			}
		}
		if current.terminal {
			bc.State = model.RUN_STATE_DONE
			return Outcome{Status: OUTCOME_COMPLETED, Context: bc}
		}

		target := current.defaultTarget
		for _, tr := range current.transitions {
			if guard.Evaluate(tr.guardName, tr.guard, bc, event) {
				target = tr.target
				break
			}
		}
		next, ok := m.flow.state(target)
		if !ok {
			return m.terminalFault(fmt.Errorf("transition to undefined state %s", target))
		}
		logger.Debug("flow transition",
			zap.String("flow", m.flow.Name),
			zap.String("from", current.name),
			zap.String("to", next.name))
		current = next
		if outcome, stop := m.enterState(current); stop {
			return outcome
		}
	}
	return m.terminalFault(fmt.Errorf("flow %s exceeded %d steps without settling", m.flow.Name, maxSteps))
}

// enterState updates the context position and applies the declarative
// pause and terminal markers of the state just transitioned into.
func (m *Machine) enterState(st *state) (Outcome, bool) {
	bc := m.bc
	bc.CurrentState = st.name
	if st.pause {
		bc.Type = model.TYPE_PAUSE
		return Outcome{Status: OUTCOME_PAUSED, Context: bc}, true
	}
	if st.terminal && st.entry == nil {
		bc.State = model.RUN_STATE_DONE
		return Outcome{Status: OUTCOME_COMPLETED, Context: bc}, true
	}
	return Outcome{}, false
}

func (m *Machine) routeError(st *state, err error) (*state, bool) {
	if st.errorTarget == "" {
		return nil, false
	}
	logger.Warn("service failed, routing to error state",
		zap.String("flow", m.flow.Name),
		zap.String("state", st.name),
		zap.String("errorState", st.errorTarget),
		zap.Error(err))
	next, ok := m.flow.state(st.errorTarget)
	return next, ok
}

// terminalFault settles an unrecovered service fault: the user gets the
// generic retry message, the conversation is closed, and no partial state
// leaks into the next turn.
func (m *Machine) terminalFault(err error) Outcome {
	logger.Error("run failed",
		zap.String("flow", m.flow.Name),
		zap.String("state", m.bc.CurrentState),
		zap.Error(err))
	m.bc.Error = MSG_SOMETHING_WENT_WRONG
	m.bc.Response = ""
	m.bc.State = model.RUN_STATE_DONE
	return Outcome{Status: OUTCOME_FAILED, Context: m.bc, Reason: err.Error()}
}

func (m *Machine) fail(reason string) Outcome {
	return Outcome{Status: OUTCOME_FAILED, Context: m.bc, Reason: reason}
}
