package entity

import (
	"fmt"
	"time"
)

// FerryFlight is a movement of an unairworthy aircraft under a special
// flight permit. Status is only ever changed through validated transitions;
// every other field may be edited directly.
type FerryFlight struct {
	ID               string       `bson:"_id,omitempty"`
	OriginAirport    string       `bson:"originAirport"`
	DestAirport      string       `bson:"destAirport"`
	Purpose          string       `bson:"purpose"`
	Status           FlightStatus `bson:"status"`
	AircraftID       string       `bson:"aircraftId"`
	OrganizationID   string       `bson:"organizationId"`
	PilotID          string       `bson:"pilotId,omitempty"`
	MechanicID       string       `bson:"mechanicId,omitempty"`
	CreatedBy        string       `bson:"createdBy"`
	PlannedDeparture *time.Time   `bson:"plannedDeparture,omitempty"`
	ActualDeparture  *time.Time   `bson:"actualDeparture,omitempty"`
	ActualArrival    *time.Time   `bson:"actualArrival,omitempty"`
	CreatedAt        time.Time    `bson:"createdAt"`
	UpdatedAt        time.Time    `bson:"updatedAt"`
}

// Validate checks the entity-level invariants.
func (f *FerryFlight) Validate() error {
	if !IsKnownStatus(f.Status) {
		return fmt.Errorf("unknown flight status %q", f.Status)
	}
	if f.ActualDeparture != nil && f.ActualArrival != nil {
		if !f.ActualArrival.After(*f.ActualDeparture) {
			return fmt.Errorf("actual arrival %s must be after actual departure %s",
				f.ActualArrival.Format(time.RFC3339), f.ActualDeparture.Format(time.RFC3339))
		}
	}
	return nil
}

// FlightUpdate is a partial field set for UpdateFlight. Nil pointers mean
// "leave unchanged". Status edits are validated against the transition table.
type FlightUpdate struct {
	OriginAirport    *string
	DestAirport      *string
	Purpose          *string
	Status           *FlightStatus
	PilotID          *string
	MechanicID       *string
	PlannedDeparture *time.Time
	ActualDeparture  *time.Time
	ActualArrival    *time.Time
}
