package domain

// AuditRepository handles persistence of the append-only event trail.
type AuditRepository interface {
	RecordEvent(event Event) error
	LoadEvents() ([]Event, error)
}
