package okr

import "testing"

func TestTaskEventTarget(t *testing.T) {
	tests := []struct {
		from   Status
		event  string
		target Status
		ok     bool
	}{
		{StatusNotStarted, EventStart, StatusInProgress, true},
		{StatusNotStarted, EventBlock, StatusBlocked, true},
		{StatusNotStarted, EventCancel, StatusCancelled, true},
		{StatusNotStarted, EventComplete, "", false},
		{StatusInProgress, EventComplete, StatusCompleted, true},
		{StatusInProgress, EventBlock, StatusBlocked, true},
		{StatusInProgress, EventStart, "", false},
		{StatusBlocked, EventResume, StatusInProgress, true},
		{StatusBlocked, EventComplete, "", false},
		{StatusOverdue, EventResume, StatusInProgress, true},
		{StatusOverdue, EventComplete, StatusCompleted, true},
		{StatusCompleted, EventStart, "", false},
		{StatusCancelled, EventResume, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+tt.event, func(t *testing.T) {
			got, err := TaskEventTarget(tt.from, tt.event)
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tt.target {
					t.Errorf("target = %s, want %s", got, tt.target)
				}
			} else if err == nil {
				t.Errorf("expected error, got target %s", got)
			}
		})
	}
}

func TestTaskStateMachine(t *testing.T) {
	fsm, err := NewTaskStateMachine(StatusNotStarted, "t1", nil)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if fsm.Current() != StatusNotStarted {
		t.Errorf("Expected not_started, got %s", fsm.Current())
	}

	if err := fsm.Transition(EventStart); err != nil {
		t.Errorf("start failed: %v", err)
	}
	if fsm.Current() != StatusInProgress {
		t.Errorf("Expected in_progress, got %s", fsm.Current())
	}

	if err := fsm.Transition("invalid"); err == nil {
		t.Error("expected error on unknown event")
	}
	if err := fsm.Transition(EventStart); err == nil {
		t.Error("expected error on start from in_progress")
	}

	if err := fsm.Transition(EventComplete); err != nil {
		t.Errorf("complete failed: %v", err)
	}
	if !fsm.IsTerminal() {
		t.Error("completed should be terminal")
	}
	if err := fsm.Transition(EventResume); err == nil {
		t.Error("expected error on resume from completed")
	}
}

func TestTaskStateMachine_Guard(t *testing.T) {
	denied := func(taskID, event string) bool { return false }
	fsm, err := NewTaskStateMachine(StatusNotStarted, "t2", denied)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if err := fsm.Transition(EventStart); err == nil {
		t.Error("expected error when guard rejects")
	}
	if fsm.Current() != StatusNotStarted {
		t.Errorf("state changed despite failing guard: %s", fsm.Current())
	}
}

func TestTaskStateMachine_OverdueRecovery(t *testing.T) {
	// Overdue is entered by the detector, never by an event, but work may
	// resume from it.
	fsm, err := NewTaskStateMachine(StatusOverdue, "t3", nil)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !fsm.CanTransition(EventResume) {
		t.Error("resume should be allowed from overdue")
	}
	if err := fsm.Transition(EventResume); err != nil {
		t.Errorf("resume failed: %v", err)
	}
	if fsm.Current() != StatusInProgress {
		t.Errorf("Expected in_progress, got %s", fsm.Current())
	}
}
