package entity

import "time"

// MechanicSignoff is a mechanic's attestation that the aircraft is safe for
// the specific ferry flight. Sign-offs are append-only; the first sign-off
// for a flight advances the flight to inspection_complete.
type MechanicSignoff struct {
	ID                   string    `bson:"_id,omitempty"`
	FlightID             string    `bson:"flightId"`
	MechanicID           string    `bson:"mechanicId"`
	SafetyStatement      string    `bson:"safetyStatement"`
	OperatingLimitations string    `bson:"operatingLimitations,omitempty"`
	SignedAt             time.Time `bson:"signedAt"`
}
