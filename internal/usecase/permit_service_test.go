package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferryflight-service/internal/domain/entity"
)

func newPermitFixture(flight *entity.FerryFlight) (*PermitService, *memPermitRepo, *memAuditRepo) {
	permitRepo := &memPermitRepo{}
	auditRepo := &memAuditRepo{}
	service := NewPermitService(permitRepo, newMemFlightRepo(flight), auditRepo, nopLogger{})
	return service, permitRepo, auditRepo
}

func inspectedFlight(id string) *entity.FerryFlight {
	flight := draftFlight(id)
	flight.Status = entity.StatusInspectionComplete
	return flight
}

func TestCreatePermit(t *testing.T) {
	ctx := context.Background()

	t.Run("opens a draft permit once inspection is complete", func(t *testing.T) {
		service, permitRepo, auditRepo := newPermitFixture(inspectedFlight("f1"))

		permit, err := service.CreatePermit(ctx, owner, "f1")
		require.NoError(t, err)
		assert.Equal(t, entity.PermitDraft, permit.Status)
		assert.Equal(t, "f1", permit.FlightID)
		assert.Equal(t, "user-1", permit.CreatedBy)

		require.Len(t, permitRepo.permits, 1)
		require.Len(t, auditRepo.entries, 1)
		assert.Equal(t, entity.ActionPermitCreated, auditRepo.entries[0].Action)
	})

	t.Run("blocked before inspection completes", func(t *testing.T) {
		service, permitRepo, _ := newPermitFixture(draftFlight("f1"))

		_, err := service.CreatePermit(ctx, owner, "f1")
		require.Error(t, err)
		assert.ErrorContains(t, err, "inspection")
		assert.Empty(t, permitRepo.permits)
	})

	t.Run("mechanic cannot create permits", func(t *testing.T) {
		service, _, _ := newPermitFixture(inspectedFlight("f1"))

		var authErr *entity.AuthorizationError
		_, err := service.CreatePermit(ctx, entity.Actor{UserID: "m1", Role: entity.RoleMechanic}, "f1")
		assert.ErrorAs(t, err, &authErr)
	})

	t.Run("missing flight", func(t *testing.T) {
		service, _, _ := newPermitFixture(inspectedFlight("f1"))

		var notFound *entity.NotFoundError
		_, err := service.CreatePermit(ctx, owner, "ghost")
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestPermitLifecycle(t *testing.T) {
	ctx := context.Background()
	service, permitRepo, auditRepo := newPermitFixture(inspectedFlight("f1"))

	permit, err := service.CreatePermit(ctx, owner, "f1")
	require.NoError(t, err)

	// Decision before submission is out of order.
	err = service.RecordDecision(ctx, owner, permit.ID, true, "SFP-2026-00411", nil, "")
	require.Error(t, err)

	require.NoError(t, service.SubmitPermit(ctx, owner, permit.ID, entity.SubmissionChannelEmail, "SJC FSDO"))

	stored, _ := permitRepo.FindByID(ctx, permit.ID)
	assert.Equal(t, entity.PermitSubmitted, stored.Status)
	assert.Equal(t, "SJC FSDO", stored.FSDOOffice)
	assert.NotNil(t, stored.SubmittedAt)

	// Double submission is rejected.
	require.Error(t, service.SubmitPermit(ctx, owner, permit.ID, entity.SubmissionChannelEmail, "SJC FSDO"))

	expiry := time.Now().AddDate(0, 0, 30)
	require.NoError(t, service.RecordDecision(ctx, owner, permit.ID, true, "SFP-2026-00411", &expiry, "day VFR only"))

	stored, _ = permitRepo.FindByID(ctx, permit.ID)
	assert.Equal(t, entity.PermitApproved, stored.Status)
	assert.Equal(t, "SFP-2026-00411", stored.PermitNumber)
	assert.Equal(t, "day VFR only", stored.OperatingLimitations)

	latest, err := service.LatestPermit(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, permit.ID, latest.ID)

	// created, submitted, approved
	assert.Len(t, auditRepo.entries, 3)
}

func TestRecordDecisionDenied(t *testing.T) {
	ctx := context.Background()
	service, permitRepo, _ := newPermitFixture(inspectedFlight("f1"))

	permit, err := service.CreatePermit(ctx, owner, "f1")
	require.NoError(t, err)
	require.NoError(t, service.SubmitPermit(ctx, owner, permit.ID, entity.SubmissionChannelPortal, "OAK FSDO"))
	require.NoError(t, service.RecordDecision(ctx, owner, permit.ID, false, "", nil, ""))

	stored, _ := permitRepo.FindByID(ctx, permit.ID)
	assert.Equal(t, entity.PermitDenied, stored.Status)
	assert.Empty(t, stored.PermitNumber)

	// Denial is terminal for the permit; the flight starts over with a
	// fresh one.
	require.Error(t, service.SubmitPermit(ctx, owner, permit.ID, entity.SubmissionChannelPortal, "OAK FSDO"))
}

func TestIsValidPermitTransition(t *testing.T) {
	assert.True(t, entity.IsValidPermitTransition(entity.PermitDraft, entity.PermitSubmitted))
	assert.True(t, entity.IsValidPermitTransition(entity.PermitSubmitted, entity.PermitApproved))
	assert.True(t, entity.IsValidPermitTransition(entity.PermitSubmitted, entity.PermitDenied))
	assert.True(t, entity.IsValidPermitTransition(entity.PermitApproved, entity.PermitExpired))
	assert.True(t, entity.IsValidPermitTransition(entity.PermitDraft, entity.PermitDraft))
	assert.False(t, entity.IsValidPermitTransition(entity.PermitDraft, entity.PermitApproved))
	assert.False(t, entity.IsValidPermitTransition(entity.PermitDenied, entity.PermitSubmitted))
	assert.False(t, entity.IsValidPermitTransition(entity.PermitExpired, entity.PermitSubmitted))
}
