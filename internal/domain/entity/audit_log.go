package entity

import "time"

// Audit action labels
const (
	ActionStatusChanged   = "status_changed"
	ActionFlightUpdated   = "flight_updated"
	ActionFlightCreated   = "flight_created"
	ActionSignoffRecorded = "signoff_recorded"
	ActionPermitCreated   = "permit_created"
	ActionPermitUpdated   = "permit_updated"
)

// FieldChange is a before/after pair for a single field.
type FieldChange struct {
	From interface{} `json:"from"`
	To   interface{} `json:"to"`
}

// AuditLog is one append-only history record. Entries are never mutated or
// deleted once written.
type AuditLog struct {
	ID         string
	FlightID   string
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	Changes    map[string]FieldChange
	CreatedAt  time.Time
}

// StatusChange extracts the from/to pair when the entry records a status
// transition, either as a top-level {from,to} pair or nested under "status".
func (a *AuditLog) StatusChange() (from, to FlightStatus, ok bool) {
	if a.Changes == nil {
		return "", "", false
	}
	if change, found := a.Changes["status"]; found {
		return toFlightStatus(change.From), toFlightStatus(change.To), true
	}
	if a.Action == ActionStatusChanged && len(a.Changes) == 1 {
		for _, change := range a.Changes {
			return toFlightStatus(change.From), toFlightStatus(change.To), true
		}
	}
	return "", "", false
}

func toFlightStatus(v interface{}) FlightStatus {
	if s, ok := v.(string); ok {
		return FlightStatus(s)
	}
	if s, ok := v.(FlightStatus); ok {
		return s
	}
	return ""
}
