package entity

import "time"

// Document types (closed set)
const (
	DocTypeRegistration      = "registration"
	DocTypeAirworthiness     = "airworthiness"
	DocTypeLogbook           = "logbook"
	DocTypePermit            = "permit"
	DocTypeInsurance         = "insurance"
	DocTypeMechanicStatement = "mechanic_statement"
	DocTypeWeightBalance     = "weight_balance"
	DocTypeOther             = "other"
)

// Document is a file record tied to one ferry flight. Only metadata is kept
// here; file bytes live in external storage.
type Document struct {
	ID          string    `bson:"_id,omitempty"`
	FlightID    string    `bson:"flightId"`
	Type        string    `bson:"type"`
	Category    string    `bson:"category,omitempty"`
	Description string    `bson:"description,omitempty"`
	FileName    string    `bson:"fileName"`
	SizeBytes   int64     `bson:"sizeBytes"`
	MimeType    string    `bson:"mimeType"`
	UploadedBy  string    `bson:"uploadedBy"`
	CreatedAt   time.Time `bson:"createdAt"`
}
