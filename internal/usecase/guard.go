package usecase

import (
	"context"
	"fmt"

	"ferryflight-service/internal/domain/entity"
	"ferryflight-service/internal/domain/repository"
	"ferryflight-service/pkg/utils"
)

// GuardResult is the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// requiredDocuments maps each flight status to the document types expected
// before leaving it. The document guard is advisory: it is surfaced to the
// user but does not block transitions.
var requiredDocuments = map[entity.FlightStatus][]string{
	entity.StatusDraft:              {},
	entity.StatusInspectionPending:  {entity.DocTypeRegistration, entity.DocTypeAirworthiness},
	entity.StatusInspectionComplete: {entity.DocTypeRegistration, entity.DocTypeAirworthiness, entity.DocTypeLogbook, entity.DocTypeMechanicStatement},
	entity.StatusFAASubmitted:       {entity.DocTypeRegistration, entity.DocTypeAirworthiness, entity.DocTypeLogbook, entity.DocTypeMechanicStatement, entity.DocTypeInsurance},
	entity.StatusFAAQuestions:       {entity.DocTypeRegistration, entity.DocTypeAirworthiness, entity.DocTypeLogbook, entity.DocTypeMechanicStatement, entity.DocTypeInsurance},
	entity.StatusPermitIssued:       {entity.DocTypeRegistration, entity.DocTypeAirworthiness, entity.DocTypeLogbook, entity.DocTypeMechanicStatement, entity.DocTypeInsurance, entity.DocTypePermit},
	entity.StatusScheduled:          {entity.DocTypeRegistration, entity.DocTypeAirworthiness, entity.DocTypeLogbook, entity.DocTypeMechanicStatement, entity.DocTypeInsurance, entity.DocTypePermit},
	entity.StatusInProgress:         {entity.DocTypeRegistration, entity.DocTypeAirworthiness, entity.DocTypeLogbook, entity.DocTypeMechanicStatement, entity.DocTypeInsurance, entity.DocTypePermit},
	entity.StatusCompleted:          {},
	entity.StatusAborted:            {},
	entity.StatusDenied:             {},
}

var docTypeLabels = map[string]string{
	entity.DocTypeRegistration:      "Aircraft Registration",
	entity.DocTypeAirworthiness:     "Airworthiness Certificate",
	entity.DocTypeLogbook:           "Maintenance Logbook",
	entity.DocTypeMechanicStatement: "Mechanic's Safety Statement",
	entity.DocTypeInsurance:         "Proof of Insurance",
	entity.DocTypePermit:            "FAA Ferry Permit",
}

// RequiredDocumentTypes returns the document types expected at a status.
func RequiredDocumentTypes(status entity.FlightStatus) []string {
	required := requiredDocuments[status]
	out := make([]string, len(required))
	copy(out, required)
	return out
}

// MissingDocumentLabels computes which required document labels are not
// satisfied by the given documents. An empty result means all present.
func MissingDocumentLabels(status entity.FlightStatus, docs []*entity.Document) []string {
	var missing []string
	for _, required := range requiredDocuments[status] {
		found := false
		for _, doc := range docs {
			if utils.MatchesDocType(doc.Type, required) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, docTypeLabels[required])
		}
	}
	return missing
}

// CanCreatePermit is the named precondition on the inspection_complete →
// faa_submitted edge: a permit may only be created once inspection has
// finished.
func CanCreatePermit(status entity.FlightStatus) GuardResult {
	if status != entity.StatusInspectionComplete {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("permit can only be created once inspection is complete (current status: %s)", status),
		}
	}
	return GuardResult{Allowed: true}
}

// GuardEvaluator answers readiness questions for a flight by reading the
// current snapshots of its related entities.
type GuardEvaluator struct {
	flightRepo   repository.FlightRepository
	documentRepo repository.DocumentRepository
}

// NewGuardEvaluator creates a new guard evaluator
func NewGuardEvaluator(flightRepo repository.FlightRepository, documentRepo repository.DocumentRepository) *GuardEvaluator {
	return &GuardEvaluator{
		flightRepo:   flightRepo,
		documentRepo: documentRepo,
	}
}

// MissingDocuments returns the labels of required documents not yet present
// for the flight's current status. Display-only; never blocks a mutation.
func (g *GuardEvaluator) MissingDocuments(ctx context.Context, flightID string) ([]string, error) {
	flight, err := g.flightRepo.FindByID(ctx, flightID)
	if err != nil {
		return nil, &entity.PersistenceError{Op: "read flight", Err: err}
	}
	if flight == nil {
		return nil, &entity.NotFoundError{Entity: "flight", ID: flightID}
	}

	docs, err := g.documentRepo.FindByFlight(ctx, flightID)
	if err != nil {
		return nil, &entity.PersistenceError{Op: "list documents", Err: err}
	}

	return MissingDocumentLabels(flight.Status, docs), nil
}
