package okr

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status Status
		valid  bool
	}{
		{StatusNotStarted, true},
		{StatusInProgress, true},
		{StatusCompleted, true},
		{StatusBlocked, true},
		{StatusCancelled, true},
		{StatusOverdue, true},
		{Status("invalid"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestStatus_CanTransitionTo_Task(t *testing.T) {
	tests := []struct {
		from  Status
		to    Status
		canDo bool
	}{
		// From NotStarted
		{StatusNotStarted, StatusInProgress, true},
		{StatusNotStarted, StatusBlocked, true},
		{StatusNotStarted, StatusCancelled, true},
		{StatusNotStarted, StatusCompleted, false},
		{StatusNotStarted, StatusOverdue, false},

		// From InProgress
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusBlocked, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusOverdue, true},
		{StatusInProgress, StatusNotStarted, false},

		// From Blocked
		{StatusBlocked, StatusInProgress, true},
		{StatusBlocked, StatusCancelled, true},
		{StatusBlocked, StatusCompleted, false},
		{StatusBlocked, StatusNotStarted, false},

		// From Overdue (recoverable)
		{StatusOverdue, StatusInProgress, true},
		{StatusOverdue, StatusCompleted, true},
		{StatusOverdue, StatusCancelled, true},
		{StatusOverdue, StatusBlocked, false},

		// Terminal statuses have no outgoing edges
		{StatusCompleted, StatusInProgress, false},
		{StatusCompleted, StatusNotStarted, false},
		{StatusCancelled, StatusInProgress, false},
		{StatusCancelled, StatusNotStarted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransitionTo(KindTask, tt.to); got != tt.canDo {
				t.Errorf("CanTransitionTo() = %v, want %v", got, tt.canDo)
			}
		})
	}
}

func TestStatus_CanTransitionTo_KindDifferences(t *testing.T) {
	// Goals never start blocked; work has to have begun first.
	if StatusNotStarted.CanTransitionTo(KindGoal, StatusBlocked) {
		t.Error("goal not_started -> blocked should be forbidden")
	}
	if !StatusNotStarted.CanTransitionTo(KindTask, StatusBlocked) {
		t.Error("task not_started -> blocked should be allowed")
	}

	// Objectives have no blocked state at all.
	for _, from := range AllStatuses() {
		if from.CanTransitionTo(KindObjective, StatusBlocked) {
			t.Errorf("objective %s -> blocked should be forbidden", from)
		}
	}
	if StatusBlocked.ValidTransitions(KindObjective) != nil {
		t.Error("blocked should have no outgoing edges for objectives")
	}
}

func TestValidateTransition(t *testing.T) {
	if err := ValidateTransition(KindTask, StatusNotStarted, StatusInProgress); err != nil {
		t.Fatalf("expected legal transition, got %v", err)
	}

	err := ValidateTransition(KindTask, StatusCompleted, StatusInProgress)
	if err == nil {
		t.Fatal("expected error for completed -> in_progress")
	}
	if !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("expected ErrIllegalTransition, got %v", err)
	}

	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatal("expected *TransitionError")
	}
	if te.From != StatusCompleted || te.To != StatusInProgress {
		t.Errorf("TransitionError = %s -> %s, want completed -> in_progress", te.From, te.To)
	}

	if err := ValidateTransition(KindTask, StatusInProgress, Status("bogus")); err == nil {
		t.Error("expected error for unknown target status")
	}
}

func TestStatus_Predicates(t *testing.T) {
	tests := []struct {
		status   Status
		terminal bool
		locked   bool
	}{
		{StatusNotStarted, false, false},
		{StatusInProgress, false, false},
		{StatusBlocked, false, false},
		{StatusCompleted, true, true},
		{StatusCancelled, true, true},
		{StatusOverdue, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.terminal {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.terminal)
			}
			if got := tt.status.IsLocked(); got != tt.locked {
				t.Errorf("IsLocked() = %v, want %v", got, tt.locked)
			}
		})
	}
}

func TestStatus_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(StatusInProgress)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"in_progress"` {
		t.Errorf("Marshal = %s, want \"in_progress\"", data)
	}

	var s Status
	if err := json.Unmarshal([]byte(`""`), &s); err != nil {
		t.Fatalf("Unmarshal of empty string failed: %v", err)
	}
	if s != StatusNotStarted {
		t.Errorf("empty string decoded to %s, want not_started", s)
	}

	if err := json.Unmarshal([]byte(`"bogus"`), &s); err == nil {
		t.Error("expected error for invalid status value")
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("overdue"); err != nil {
		t.Errorf("ParseStatus(overdue) failed: %v", err)
	}
	if _, err := ParseStatus("done"); err == nil {
		t.Error("expected error for unknown status name")
	}
}
