package okr

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Task lifecycle events. The event vocabulary is what callers use; each
// event resolves to a target status in the transition table.
const (
	EventStart    = "start"
	EventBlock    = "block"
	EventComplete = "complete"
	EventCancel   = "cancel"
	EventResume   = "resume"
)

// State constants for statekit integration. Untyped string constants for
// statekit.StateID compatibility; kept in sync with the Status values.
const (
	stateNotStarted = "not_started"
	stateInProgress = "in_progress"
	stateCompleted  = "completed"
	stateBlocked    = "blocked"
	stateCancelled  = "cancelled"
	stateOverdue    = "overdue"
)

// taskEvents maps status -> event -> target status for the task machine.
// Kept in sync with statusTable[KindTask]; see init below. The automatic
// overdue edge has no event on purpose: it is system-driven.
var taskEvents = map[Status]map[string]Status{
	StatusNotStarted: {
		EventStart:  StatusInProgress,
		EventBlock:  StatusBlocked,
		EventCancel: StatusCancelled,
	},
	StatusInProgress: {
		EventComplete: StatusCompleted,
		EventBlock:    StatusBlocked,
		EventCancel:   StatusCancelled,
	},
	StatusBlocked: {
		EventResume: StatusInProgress,
		EventCancel: StatusCancelled,
	},
	StatusOverdue: {
		EventResume:   StatusInProgress,
		EventComplete: StatusCompleted,
		EventCancel:   StatusCancelled,
	},
}

// init validates at startup that the FSM state constants match the Status
// values and that every event edge is also present in the transition table,
// so the event machine and the table cannot drift apart.
func init() {
	stateMap := map[string]Status{
		stateNotStarted: StatusNotStarted,
		stateInProgress: StatusInProgress,
		stateCompleted:  StatusCompleted,
		stateBlocked:    StatusBlocked,
		stateCancelled:  StatusCancelled,
		stateOverdue:    StatusOverdue,
	}
	for fsmState, status := range stateMap {
		if fsmState != string(status) {
			panic(fmt.Sprintf("FSM state %q does not match Status %q - constants are out of sync", fsmState, status))
		}
	}

	for from, events := range taskEvents {
		for event, to := range events {
			if !from.CanTransitionTo(KindTask, to) {
				panic(fmt.Sprintf("task event %q maps %s -> %s, which the transition table forbids", event, from, to))
			}
		}
	}
}

// TaskEventTarget resolves an event name to its target status from the given
// status, or an error when the event is not allowed there.
func TaskEventTarget(current Status, event string) (Status, error) {
	events, ok := taskEvents[current]
	if !ok {
		return current, &TransitionError{Kind: KindTask, From: current, To: current}
	}
	target, ok := events[event]
	if !ok {
		return current, fmt.Errorf("event '%s' not allowed from status '%s'", event, current)
	}
	return target, nil
}

// TaskContext carries state machine data.
type TaskContext struct {
	TaskID string
	Guard  func(taskID string, event string) bool
}

// TaskStateMachine executes the task lifecycle over statekit.
type TaskStateMachine struct {
	interpreter *statekit.Interpreter[TaskContext]
}

// NewTaskStateMachine builds a machine starting at initialState. The guard,
// when non-nil, is consulted before every transition; it is where the write
// orchestrator hooks the edit gate and blocker-reason checks.
func NewTaskStateMachine(initialState Status, taskID string, guard func(string, string) bool) (*TaskStateMachine, error) {
	if guard == nil {
		guard = func(string, string) bool { return true }
	}

	builder := statekit.NewMachine[TaskContext]("task-lifecycle").
		WithInitial(statekit.StateID(initialState)).
		WithContext(TaskContext{
			TaskID: taskID,
			Guard:  guard,
		}).
		WithGuard("writeGuard", func(ctx TaskContext, e statekit.Event) bool {
			return ctx.Guard(ctx.TaskID, string(e.Type))
		})

	builder.State(stateNotStarted).
		On(EventStart).Target(stateInProgress).Guard("writeGuard").
		On(EventBlock).Target(stateBlocked).Guard("writeGuard").
		On(EventCancel).Target(stateCancelled).Guard("writeGuard").
		Done()

	builder.State(stateInProgress).
		On(EventComplete).Target(stateCompleted).Guard("writeGuard").
		On(EventBlock).Target(stateBlocked).Guard("writeGuard").
		On(EventCancel).Target(stateCancelled).Guard("writeGuard").
		Done()

	builder.State(stateBlocked).
		On(EventResume).Target(stateInProgress).Guard("writeGuard").
		On(EventCancel).Target(stateCancelled).Guard("writeGuard").
		Done()

	builder.State(stateOverdue).
		On(EventResume).Target(stateInProgress).Guard("writeGuard").
		On(EventComplete).Target(stateCompleted).Guard("writeGuard").
		On(EventCancel).Target(stateCancelled).Guard("writeGuard").
		Done()

	// Terminal states have no outgoing edges.
	builder.State(stateCompleted).Done()
	builder.State(stateCancelled).Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build task state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &TaskStateMachine{interpreter: interpreter}, nil
}

// Transition attempts to apply the event; statekit leaves the state untouched
// when no edge matches or the guard rejects, which is reported as an error.
func (sm *TaskStateMachine) Transition(event string) error {
	before := sm.Current()
	sm.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	after := sm.Current()

	if before != after {
		return nil
	}
	return fmt.Errorf("the action '%s' is not allowed while the task is in the '%s' state", event, before)
}

// Current returns the machine's current status.
func (sm *TaskStateMachine) Current() Status {
	return Status(sm.interpreter.State().Value)
}

// CanTransition checks if the event is valid for the current status.
func (sm *TaskStateMachine) CanTransition(event string) bool {
	_, err := TaskEventTarget(sm.Current(), event)
	return err == nil
}

// IsTerminal returns true if the machine reached a terminal status.
func (sm *TaskStateMachine) IsTerminal() bool {
	return sm.Current().IsTerminal()
}
