package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferryflight-service/internal/domain/entity"
)

func docsOfTypes(flightID string, types ...string) []*entity.Document {
	docs := make([]*entity.Document, 0, len(types))
	for _, typ := range types {
		docs = append(docs, &entity.Document{FlightID: flightID, Type: typ, FileName: typ + ".pdf"})
	}
	return docs
}

func TestRequiredDocumentTypes(t *testing.T) {
	assert.Empty(t, RequiredDocumentTypes(entity.StatusDraft))
	assert.Equal(t,
		[]string{entity.DocTypeRegistration, entity.DocTypeAirworthiness},
		RequiredDocumentTypes(entity.StatusInspectionPending))
	assert.Len(t, RequiredDocumentTypes(entity.StatusFAASubmitted), 5)
	assert.Len(t, RequiredDocumentTypes(entity.StatusPermitIssued), 6)
	assert.Empty(t, RequiredDocumentTypes(entity.StatusCompleted))
	assert.Empty(t, RequiredDocumentTypes(entity.FlightStatus("bogus")))
}

func TestMissingDocumentLabels(t *testing.T) {
	tests := []struct {
		name    string
		status  entity.FlightStatus
		docs    []*entity.Document
		missing []string
	}{
		{
			name:    "draft needs nothing",
			status:  entity.StatusDraft,
			docs:    nil,
			missing: nil,
		},
		{
			name:   "faa submitted with two of five",
			status: entity.StatusFAASubmitted,
			docs:   docsOfTypes("f1", "registration", "airworthiness"),
			missing: []string{
				"Maintenance Logbook",
				"Mechanic's Safety Statement",
				"Proof of Insurance",
			},
		},
		{
			name:   "synonyms satisfy requirements",
			status: entity.StatusInspectionPending,
			docs:   docsOfTypes("f1", "Reg Cert", "AW Cert scan"),
		},
		{
			name:   "all present",
			status: entity.StatusFAASubmitted,
			docs: docsOfTypes("f1",
				"registration", "airworthiness", "maintenance log",
				"mechanic statement", "insurance"),
		},
		{
			name:    "unrelated docs do not count",
			status:  entity.StatusInspectionPending,
			docs:    docsOfTypes("f1", "photo", "receipt"),
			missing: []string{"Aircraft Registration", "Airworthiness Certificate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.missing, MissingDocumentLabels(tt.status, tt.docs))
		})
	}
}

func TestCanCreatePermit(t *testing.T) {
	assert.True(t, CanCreatePermit(entity.StatusInspectionComplete).Allowed)

	for _, status := range entity.AllStatuses {
		if status == entity.StatusInspectionComplete {
			continue
		}
		result := CanCreatePermit(status)
		assert.False(t, result.Allowed, "status %s", status)
		assert.Contains(t, result.Reason, string(status))
	}
}

func TestGuardEvaluatorMissingDocuments(t *testing.T) {
	ctx := context.Background()
	flight := &entity.FerryFlight{ID: "f1", Status: entity.StatusInspectionPending}
	flightRepo := newMemFlightRepo(flight)
	docRepo := &memDocumentRepo{}
	require.NoError(t, docRepo.Save(ctx, &entity.Document{FlightID: "f1", Type: "registration", FileName: "reg.pdf"}))

	g := NewGuardEvaluator(flightRepo, docRepo)

	missing, err := g.MissingDocuments(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Airworthiness Certificate"}, missing)

	_, err = g.MissingDocuments(ctx, "nope")
	var notFound *entity.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
