package entity

import "time"

// Discrepancy severity levels
const (
	SeverityMinor    = "minor"
	SeverityMajor    = "major"
	SeverityCritical = "critical"
)

// Discrepancy is a defect record tied to one ferry flight. Discrepancies are
// visible to mechanics and owners but do not gate status transitions.
type Discrepancy struct {
	ID             string    `bson:"_id,omitempty"`
	FlightID       string    `bson:"flightId"`
	Description    string    `bson:"description"`
	Severity       string    `bson:"severity"`
	AffectsSafety  bool      `bson:"affectsSafety"`
	AffectedSystem string    `bson:"affectedSystem,omitempty"`
	CreatedBy      string    `bson:"createdBy"`
	CreatedAt      time.Time `bson:"createdAt"`
}
