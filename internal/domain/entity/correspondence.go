package entity

import "time"

// Correspondence process status
const (
	CorrespondencePending   = "PENDING"
	CorrespondenceMatched   = "MATCHED"
	CorrespondenceUnmatched = "UNMATCHED"
	CorrespondenceFailed    = "FAILED"
)

// FAACorrespondence is an inbound email from an FSDO/MIDO office, fetched
// from the permit mailbox and matched to a permit by permit number or
// flight reference.
type FAACorrespondence struct {
	ID            string    `bson:"_id,omitempty"`
	MessageID     string    `bson:"messageId"`
	From          string    `bson:"from"`
	Subject       string    `bson:"subject"`
	Body          string    `bson:"body"`
	ReceivedAt    time.Time `bson:"receivedAt"`
	ProcessStatus string    `bson:"processStatus"`
	PermitID      string    `bson:"permitId,omitempty"`
	ErrorDetail   string    `bson:"errorDetail,omitempty"`
	ProcessedAt   time.Time `bson:"processedAt,omitempty"`
}
