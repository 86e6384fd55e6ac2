package entity

import "time"

// PermitStatus is the lifecycle state of an FAA special flight permit. It
// transitions independently of the flight's own status.
type PermitStatus string

const (
	PermitDraft     PermitStatus = "draft"
	PermitSubmitted PermitStatus = "submitted"
	PermitApproved  PermitStatus = "approved"
	PermitDenied    PermitStatus = "denied"
	PermitExpired   PermitStatus = "expired"
)

var permitTransitions = map[PermitStatus][]PermitStatus{
	PermitDraft:     {PermitSubmitted},
	PermitSubmitted: {PermitApproved, PermitDenied},
	PermitApproved:  {PermitExpired},
	PermitDenied:    {},
	PermitExpired:   {},
}

// IsValidPermitTransition reports whether the permit may move between the
// two statuses. Same-status is a no-op and always valid.
func IsValidPermitTransition(from, to PermitStatus) bool {
	if from == to {
		_, ok := permitTransitions[from]
		return ok
	}
	for _, next := range permitTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Permit submission channels
const (
	SubmissionChannelEmail  = "email"
	SubmissionChannelPortal = "portal"
	SubmissionChannelFax    = "fax"
)

// FAAPermit is a special flight permit application for one ferry flight.
// Practically one permit is active at a time; the latest permit's status is
// read by flight-level guards.
type FAAPermit struct {
	ID                   string       `bson:"_id,omitempty"`
	FlightID             string       `bson:"flightId"`
	Status               PermitStatus `bson:"status"`
	SubmissionChannel    string       `bson:"submissionChannel,omitempty"`
	FSDOOffice           string       `bson:"fsdoOffice,omitempty"`
	SubmittedAt          *time.Time   `bson:"submittedAt,omitempty"`
	PermitNumber         string       `bson:"permitNumber,omitempty"`
	ExpiresAt            *time.Time   `bson:"expiresAt,omitempty"`
	OperatingLimitations string       `bson:"operatingLimitations,omitempty"`
	FAAQuestions         string       `bson:"faaQuestions,omitempty"`
	FAAResponse          string       `bson:"faaResponse,omitempty"`
	CreatedBy            string       `bson:"createdBy"`
	CreatedAt            time.Time    `bson:"createdAt"`
	UpdatedAt            time.Time    `bson:"updatedAt"`
}
