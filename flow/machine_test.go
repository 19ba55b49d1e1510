package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/AgrI-Mitra/bff/action"
	"github.com/AgrI-Mitra/bff/guard"
	"github.com/AgrI-Mitra/bff/model"
	"github.com/stretchr/testify/require"
)

type runCounter struct {
	captures int
	faults   int
}

func testRegistries(counter *runCounter) (*guard.Registry, *action.Registry) {
	guards := guard.NewRegistry()
	guards.Register("isYes", func(_ *model.BotContext, ev model.Event) bool {
		s, _ := ev.DataString()
		return s == "yes"
	})
	guards.Register("isNo", func(_ *model.BotContext, ev model.Event) bool {
		s, _ := ev.DataString()
		return s == "no"
	})
	guards.Register("always", func(_ *model.BotContext, _ model.Event) bool {
		return true
	})

	services := action.NewRegistry()
	services.Register("capture", func(_ context.Context, bc *model.BotContext, ev model.Event) (any, error) {
		counter.captures++
		s, _ := ev.DataString()
		bc.Query = s
		return s, nil
	})
	services.Register("classify", func(_ context.Context, _ *model.BotContext, ev model.Event) (any, error) {
		return ev.Data, nil
	})
	services.Register("reply", func(_ context.Context, bc *model.BotContext, _ model.Event) (any, error) {
		bc.Response = "try once more"
		return nil, nil
	})
	services.Register("boom", func(_ context.Context, _ *model.BotContext, _ model.Event) (any, error) {
		return nil, errors.New("downstream unavailable")
	})
	services.Register("suspend", func(_ context.Context, bc *model.BotContext, _ model.Event) (any, error) {
		bc.Type = model.TYPE_PAUSE
		return nil, nil
	})
	services.Register("logFault", func(_ context.Context, bc *model.BotContext, _ model.Event) (any, error) {
		counter.faults++
		return nil, nil
	})
	return guards, services
}

func testDefinition() *model.FlowDefinition {
	return &model.FlowDefinition{
		Name:         "test",
		InitialState: "collect",
		States: map[string]model.StateDef{
			"collect": {
				OnEntry:       "capture",
				Pause:         true,
				DefaultTarget: "route",
			},
			"route": {
				OnEntry: "classify",
				Transitions: []model.TransitionDef{
					{Guard: "isYes", Target: "done"},
					{Guard: "isNo", Target: "retry"},
				},
				DefaultTarget: "collect",
				ErrorTarget:   "fault",
			},
			"retry": {
				OnEntry:       "reply",
				DefaultTarget: "collect",
			},
			"done":  {Terminal: true},
			"fault": {OnEntry: "logFault", Terminal: true},
		},
	}
}

func compileTestFlow(t *testing.T, counter *runCounter, mutate func(*model.FlowDefinition)) *Flow {
	def := testDefinition()
	if mutate != nil {
		mutate(def)
	}
	guards, services := testRegistries(counter)
	fl, err := Convert(def, guards, services)
	require.NoError(t, err)
	return fl
}

func TestMachine(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T){
		"run until pause":          testRunUntilPause,
		"resume consumes event":    testResumeConsumesEvent,
		"first matching guard":     testFirstMatchingGuard,
		"fault containment":        testFaultContainment,
		"error routing":            testErrorRouting,
		"finished context inert":   testFinishedContextInert,
		"imperative pause":         testImperativePause,
		"stale pause marker":       testStalePauseMarker,
		"deterministic run":        testDeterministicRun,
		"machine is single use":    testMachineSingleUse,
		"undefined stored state":   testUndefinedStoredState,
		"unsettled run is faulted": testUnsettledRun,
	} {
		t.Run(scenario, fn)
	}
}

func testRunUntilPause(t *testing.T) {
	counter := &runCounter{}
	fl := compileTestFlow(t, counter, nil)
	bc := model.NewBotContext("user-1", fl.InitialState, model.INPUT_TYPE_TEXT, "en")

	m, err := NewFlowMachine(fl, bc)
	require.NoError(t, err)
	outcome := m.Start(context.Background(), model.Event{Name: model.EVENT_USER_INPUT, Data: "maybe"})

	require.Equal(t, OUTCOME_PAUSED, outcome.Status)
	require.Equal(t, "collect", outcome.Context.CurrentState)
	require.Equal(t, model.TYPE_PAUSE, outcome.Context.Type)
	require.Equal(t, model.RUN_STATE_ONGOING, outcome.Context.State)
	// The paused state's entry must not run until the next turn resumes it.
	require.Equal(t, 1, counter.captures)
}

func testResumeConsumesEvent(t *testing.T) {
	counter := &runCounter{}
	fl := compileTestFlow(t, counter, nil)
	bc := model.NewBotContext("user-1", fl.InitialState, model.INPUT_TYPE_TEXT, "en")
	bc.CurrentState = "collect"

	m, err := NewFlowMachine(fl, bc)
	require.NoError(t, err)
	outcome := m.Start(context.Background(), model.Event{Name: model.EVENT_USER_INPUT, Data: "yes"})

	require.Equal(t, OUTCOME_COMPLETED, outcome.Status)
	require.Equal(t, "done", outcome.Context.CurrentState)
	require.True(t, outcome.Context.IsDone())
	require.Equal(t, "yes", outcome.Context.Query)
}

func testFirstMatchingGuard(t *testing.T) {
	counter := &runCounter{}
	fl := compileTestFlow(t, counter, func(def *model.FlowDefinition) {
		st := def.States["route"]
		st.Transitions = []model.TransitionDef{
			{Guard: "always", Target: "retry"},
			{Guard: "always", Target: "done"},
		}
		def.States["route"] = st
	})
	bc := model.NewBotContext("user-1", fl.InitialState, model.INPUT_TYPE_TEXT, "en")

	m, err := NewFlowMachine(fl, bc)
	require.NoError(t, err)
	outcome := m.Start(context.Background(), model.Event{Name: model.EVENT_USER_INPUT, Data: "anything"})

	// Both guards match; declaration order decides, so the run goes through
	// retry and pauses back at collect instead of completing at done.
	require.Equal(t, OUTCOME_PAUSED, outcome.Status)
	require.Equal(t, "collect", outcome.Context.CurrentState)
	require.Equal(t, "try once more", outcome.Context.Response)
}

func testFaultContainment(t *testing.T) {
	counter := &runCounter{}
	fl := compileTestFlow(t, counter, func(def *model.FlowDefinition) {
		st := def.States["route"]
		st.OnEntry = "boom"
		st.ErrorTarget = ""
		def.States["route"] = st
	})
	bc := model.NewBotContext("user-1", fl.InitialState, model.INPUT_TYPE_TEXT, "en")

	m, err := NewFlowMachine(fl, bc)
	require.NoError(t, err)
	outcome := m.Start(context.Background(), model.Event{Name: model.EVENT_USER_INPUT, Data: "maybe"})

	require.Equal(t, OUTCOME_FAILED, outcome.Status)
	require.Equal(t, MSG_SOMETHING_WENT_WRONG, outcome.Context.Error)
	require.Empty(t, outcome.Context.Response)
	require.True(t, outcome.Context.IsDone())
	require.Contains(t, outcome.Reason, "downstream unavailable")
}

func testErrorRouting(t *testing.T) {
	counter := &runCounter{}
	fl := compileTestFlow(t, counter, func(def *model.FlowDefinition) {
		st := def.States["route"]
		st.OnEntry = "boom"
		def.States["route"] = st
	})
	bc := model.NewBotContext("user-1", fl.InitialState, model.INPUT_TYPE_TEXT, "en")

	m, err := NewFlowMachine(fl, bc)
	require.NoError(t, err)
	outcome := m.Start(context.Background(), model.Event{Name: model.EVENT_USER_INPUT, Data: "maybe"})

	require.Equal(t, OUTCOME_COMPLETED, outcome.Status)
	require.Equal(t, "fault", outcome.Context.CurrentState)
	require.True(t, outcome.Context.IsDone())
	require.Equal(t, 1, counter.faults)
}

func testFinishedContextInert(t *testing.T) {
	counter := &runCounter{}
	fl := compileTestFlow(t, counter, nil)
	bc := model.NewBotContext("user-1", fl.InitialState, model.INPUT_TYPE_TEXT, "en")
	bc.State = model.RUN_STATE_DONE

	m, err := NewFlowMachine(fl, bc)
	require.NoError(t, err)
	outcome := m.Start(context.Background(), model.Event{Name: model.EVENT_USER_INPUT, Data: "hello"})

	require.Equal(t, OUTCOME_COMPLETED, outcome.Status)
	require.Equal(t, 0, counter.captures)
}

func testImperativePause(t *testing.T) {
	counter := &runCounter{}
	fl := compileTestFlow(t, counter, func(def *model.FlowDefinition) {
		st := def.States["route"]
		st.OnEntry = "suspend"
		def.States["route"] = st
	})
	bc := model.NewBotContext("user-1", fl.InitialState, model.INPUT_TYPE_TEXT, "en")

	m, err := NewFlowMachine(fl, bc)
	require.NoError(t, err)
	outcome := m.Start(context.Background(), model.Event{Name: model.EVENT_USER_INPUT, Data: "maybe"})

	require.Equal(t, OUTCOME_PAUSED, outcome.Status)
	require.Equal(t, "route", outcome.Context.CurrentState)
	require.Equal(t, model.TYPE_PAUSE, outcome.Context.Type)
}

func testStalePauseMarker(t *testing.T) {
	counter := &runCounter{}
	fl := compileTestFlow(t, counter, nil)
	bc := model.NewBotContext("user-1", fl.InitialState, model.INPUT_TYPE_TEXT, "en")
	// A context reloaded from the store still carries the pause marker of
	// the run that suspended it; the next run must not re-suspend on it.
	bc.Type = model.TYPE_PAUSE

	m, err := NewFlowMachine(fl, bc)
	require.NoError(t, err)
	outcome := m.Start(context.Background(), model.Event{Name: model.EVENT_USER_INPUT, Data: "yes"})

	require.Equal(t, OUTCOME_COMPLETED, outcome.Status)
	require.Equal(t, "done", outcome.Context.CurrentState)
	require.Equal(t, 1, counter.captures)
}

func testDeterministicRun(t *testing.T) {
	run := func() *model.BotContext {
		counter := &runCounter{}
		fl := compileTestFlow(t, counter, nil)
		bc := model.NewBotContext("user-1", fl.InitialState, model.INPUT_TYPE_TEXT, "en")
		m, err := NewFlowMachine(fl, bc)
		require.NoError(t, err)
		outcome := m.Start(context.Background(), model.Event{Name: model.EVENT_USER_INPUT, Data: "no"})
		return outcome.Context
	}
	first := run()
	second := run()
	require.Equal(t, first, second)
}

func testMachineSingleUse(t *testing.T) {
	counter := &runCounter{}
	fl := compileTestFlow(t, counter, nil)
	bc := model.NewBotContext("user-1", fl.InitialState, model.INPUT_TYPE_TEXT, "en")

	m, err := NewFlowMachine(fl, bc)
	require.NoError(t, err)
	m.Start(context.Background(), model.Event{Name: model.EVENT_USER_INPUT, Data: "maybe"})
	outcome := m.Start(context.Background(), model.Event{Name: model.EVENT_USER_INPUT, Data: "maybe"})

	require.Equal(t, OUTCOME_FAILED, outcome.Status)
}

func testUndefinedStoredState(t *testing.T) {
	counter := &runCounter{}
	fl := compileTestFlow(t, counter, nil)
	bc := model.NewBotContext("user-1", "vanished", model.INPUT_TYPE_TEXT, "en")

	_, err := NewFlowMachine(fl, bc)
	require.Error(t, err)
}

func testUnsettledRun(t *testing.T) {
	counter := &runCounter{}
	fl := compileTestFlow(t, counter, func(def *model.FlowDefinition) {
		// Remove the pause so collect and route cycle forever.
		st := def.States["collect"]
		st.Pause = false
		def.States["collect"] = st
	})
	bc := model.NewBotContext("user-1", fl.InitialState, model.INPUT_TYPE_TEXT, "en")

	m, err := NewFlowMachine(fl, bc)
	require.NoError(t, err)
	outcome := m.Start(context.Background(), model.Event{Name: model.EVENT_USER_INPUT, Data: "maybe"})

	require.Equal(t, OUTCOME_FAILED, outcome.Status)
	require.Equal(t, MSG_SOMETHING_WENT_WRONG, outcome.Context.Error)
}
