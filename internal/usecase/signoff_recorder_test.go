package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferryflight-service/internal/domain/entity"
)

var mechanic = entity.Actor{UserID: "m1", Role: entity.RoleMechanic}

func newRecorderFixture(flight *entity.FerryFlight) (*SignoffRecorder, *memFlightRepo, *memSignoffRepo, *memAuditRepo) {
	flightRepo := newMemFlightRepo(flight)
	auditRepo := &memAuditRepo{}
	signoffRepo := &memSignoffRepo{}
	engine := NewWorkflowEngine(flightRepo, auditRepo, nil, nopLogger{}, nil)
	recorder := NewSignoffRecorder(signoffRepo, flightRepo, engine, nopLogger{}, nil)
	return recorder, flightRepo, signoffRepo, auditRepo
}

func TestRecordSignoff(t *testing.T) {
	ctx := context.Background()

	t.Run("first signoff from inspection_pending advances the flight", func(t *testing.T) {
		flight := draftFlight("f1")
		flight.Status = entity.StatusInspectionPending
		recorder, flightRepo, signoffRepo, auditRepo := newRecorderFixture(flight)

		err := recorder.RecordSignoff(ctx, mechanic, "f1", &entity.MechanicSignoff{
			SafetyStatement: "safe for one-time ferry flight",
		})
		require.NoError(t, err)

		stored, _ := flightRepo.FindByID(ctx, "f1")
		assert.Equal(t, entity.StatusInspectionComplete, stored.Status)

		require.Len(t, signoffRepo.signoffs, 1)
		assert.Equal(t, "m1", signoffRepo.signoffs[0].MechanicID)
		assert.False(t, signoffRepo.signoffs[0].SignedAt.IsZero())

		require.Len(t, auditRepo.entries, 1)
		from, to, ok := auditRepo.entries[0].StatusChange()
		require.True(t, ok)
		assert.Equal(t, entity.StatusInspectionPending, from)
		assert.Equal(t, entity.StatusInspectionComplete, to)
	})

	t.Run("first signoff from draft steps through inspection_pending", func(t *testing.T) {
		recorder, flightRepo, _, auditRepo := newRecorderFixture(draftFlight("f1"))

		err := recorder.RecordSignoff(ctx, mechanic, "f1", &entity.MechanicSignoff{
			SafetyStatement: "safe for one-time ferry flight",
		})
		require.NoError(t, err)

		stored, _ := flightRepo.FindByID(ctx, "f1")
		assert.Equal(t, entity.StatusInspectionComplete, stored.Status)

		// Both hops are audited separately.
		require.Len(t, auditRepo.entries, 2)
		_, to1, _ := auditRepo.entries[0].StatusChange()
		_, to2, _ := auditRepo.entries[1].StatusChange()
		assert.Equal(t, entity.StatusInspectionPending, to1)
		assert.Equal(t, entity.StatusInspectionComplete, to2)
	})

	t.Run("second signoff does not move the flight again", func(t *testing.T) {
		flight := draftFlight("f1")
		flight.Status = entity.StatusInspectionPending
		recorder, flightRepo, signoffRepo, auditRepo := newRecorderFixture(flight)

		require.NoError(t, recorder.RecordSignoff(ctx, mechanic, "f1", &entity.MechanicSignoff{SafetyStatement: "first"}))
		require.NoError(t, recorder.RecordSignoff(ctx, mechanic, "f1", &entity.MechanicSignoff{SafetyStatement: "second"}))

		stored, _ := flightRepo.FindByID(ctx, "f1")
		assert.Equal(t, entity.StatusInspectionComplete, stored.Status)
		assert.Len(t, signoffRepo.signoffs, 2)
		assert.Len(t, auditRepo.entries, 1)
	})

	t.Run("signoff past inspection leaves status alone", func(t *testing.T) {
		flight := draftFlight("f1")
		flight.Status = entity.StatusFAASubmitted
		recorder, flightRepo, _, auditRepo := newRecorderFixture(flight)

		require.NoError(t, recorder.RecordSignoff(ctx, mechanic, "f1", &entity.MechanicSignoff{SafetyStatement: "late extra check"}))

		stored, _ := flightRepo.FindByID(ctx, "f1")
		assert.Equal(t, entity.StatusFAASubmitted, stored.Status)
		assert.Empty(t, auditRepo.entries)
	})

	t.Run("pilot cannot sign off", func(t *testing.T) {
		flight := draftFlight("f1")
		flight.Status = entity.StatusInspectionPending
		recorder, _, signoffRepo, _ := newRecorderFixture(flight)

		pilot := entity.Actor{UserID: "p1", Role: entity.RolePilot}
		err := recorder.RecordSignoff(ctx, pilot, "f1", &entity.MechanicSignoff{SafetyStatement: "looks fine"})

		var authErr *entity.AuthorizationError
		require.ErrorAs(t, err, &authErr)
		assert.Empty(t, signoffRepo.signoffs)
	})

	t.Run("missing flight", func(t *testing.T) {
		recorder, _, _, _ := newRecorderFixture(draftFlight("f1"))

		var notFound *entity.NotFoundError
		err := recorder.RecordSignoff(ctx, mechanic, "ghost", &entity.MechanicSignoff{SafetyStatement: "x"})
		assert.ErrorAs(t, err, &notFound)
	})
}
