package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferryflight-service/internal/domain/entity"
)

func TestCreateFlight(t *testing.T) {
	ctx := context.Background()
	flightRepo := newMemFlightRepo()
	auditRepo := &memAuditRepo{}
	service := NewFlightService(flightRepo, auditRepo, nopLogger{})

	flight := &entity.FerryFlight{
		OriginAirport:  "KPAO",
		DestAirport:    "KSQL",
		Purpose:        "engine overhaul ferry",
		AircraftID:     "ac-1",
		OrganizationID: "org-1",
		// Caller-supplied status is ignored; new flights always start in
		// draft.
		Status: entity.StatusPermitIssued,
	}
	require.NoError(t, service.CreateFlight(ctx, owner, flight))

	assert.NotEmpty(t, flight.ID)
	assert.Equal(t, entity.StatusDraft, flight.Status)
	assert.Equal(t, "user-1", flight.CreatedBy)
	assert.False(t, flight.CreatedAt.IsZero())

	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, entity.ActionFlightCreated, auditRepo.entries[0].Action)

	t.Run("viewer cannot create", func(t *testing.T) {
		viewer := entity.Actor{UserID: "v1", Role: entity.RoleViewer}
		var authErr *entity.AuthorizationError
		err := service.CreateFlight(ctx, viewer, &entity.FerryFlight{OrganizationID: "org-1"})
		assert.ErrorAs(t, err, &authErr)
	})
}

func TestGetFlight(t *testing.T) {
	ctx := context.Background()
	service := NewFlightService(newMemFlightRepo(draftFlight("f1")), &memAuditRepo{}, nopLogger{})

	flight, err := service.GetFlight(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "f1", flight.ID)

	var notFound *entity.NotFoundError
	_, err = service.GetFlight(ctx, "ghost")
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "flight", notFound.Entity)
}

func TestListFlights(t *testing.T) {
	ctx := context.Background()
	other := draftFlight("f2")
	other.OrganizationID = "org-2"
	service := NewFlightService(newMemFlightRepo(draftFlight("f1"), other), &memAuditRepo{}, nopLogger{})

	flights, err := service.ListFlights(ctx, "org-1")
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "f1", flights[0].ID)
}

func TestAddDocument(t *testing.T) {
	ctx := context.Background()
	docRepo := &memDocumentRepo{}
	service := NewDocumentService(docRepo, newMemFlightRepo(draftFlight("f1")), nopLogger{})

	mech := entity.Actor{UserID: "m1", Role: entity.RoleMechanic}
	doc := &entity.Document{Type: entity.DocTypeRegistration, FileName: "reg.pdf"}
	require.NoError(t, service.AddDocument(ctx, mech, "f1", doc))

	assert.Equal(t, "f1", doc.FlightID)
	assert.Equal(t, "m1", doc.UploadedBy)

	docs, err := service.ListDocuments(ctx, "f1")
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	var notFound *entity.NotFoundError
	err = service.AddDocument(ctx, mech, "ghost", &entity.Document{Type: entity.DocTypeOther})
	assert.ErrorAs(t, err, &notFound)

	var authErr *entity.AuthorizationError
	viewer := entity.Actor{UserID: "v1", Role: entity.RoleViewer}
	err = service.AddDocument(ctx, viewer, "f1", &entity.Document{Type: entity.DocTypeOther})
	assert.ErrorAs(t, err, &authErr)
}
