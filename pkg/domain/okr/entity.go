package okr

// EntityKind discriminates the three hierarchy levels.
type EntityKind string

const (
	KindObjective EntityKind = "objective"
	KindGoal      EntityKind = "goal"
	KindTask      EntityKind = "task"
)

// IsValid returns true if the kind is a recognized hierarchy level.
func (k EntityKind) IsValid() bool {
	switch k {
	case KindObjective, KindGoal, KindTask:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k EntityKind) String() string {
	return string(k)
}

// EntityRef identifies an entity anywhere in the hierarchy by kind and id.
// Cross-level references always carry the kind so a goal id can never be
// mistaken for a task id.
type EntityRef struct {
	Kind EntityKind `json:"kind" yaml:"kind"`
	ID   string     `json:"id" yaml:"id"`
}

// ObjectiveRef builds a reference to an objective.
func ObjectiveRef(id string) EntityRef {
	return EntityRef{Kind: KindObjective, ID: id}
}

// GoalRef builds a reference to a goal.
func GoalRef(id string) EntityRef {
	return EntityRef{Kind: KindGoal, ID: id}
}

// TaskRef builds a reference to a task.
func TaskRef(id string) EntityRef {
	return EntityRef{Kind: KindTask, ID: id}
}
