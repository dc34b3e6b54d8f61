package events

import "time"

const StaffLifecycleTopic = "roster.staff.lifecycle.v1"

const (
	StaffCreated  = "staff_created"
	StaffUpdated  = "staff_updated"
	StaffDeleted  = "staff_deleted"
	StaffImported = "staff_imported"
)

// StaffLifecycleEvent is published after every roster mutation. StaffIDs lists the
// affected record ids; Count is the number of records the mutation touched.
type StaffLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	SessionID  string    `json:"session_id,omitempty"`
	StaffIDs   []string  `json:"staff_ids"`
	Count      int       `json:"count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Key partitions events by their first record so one record's history stays ordered.
func (e StaffLifecycleEvent) Key() string {
	if len(e.StaffIDs) == 0 {
		return e.EventType
	}
	return e.StaffIDs[0]
}
