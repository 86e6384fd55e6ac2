package usecase

import (
	"context"
	"time"

	"ferryflight-service/internal/domain/entity"
	"ferryflight-service/internal/domain/repository"
	"ferryflight-service/pkg/logger"
	"ferryflight-service/pkg/metrics"
)

// SignoffRecorder appends mechanic sign-offs and handles the implicit
// transition their first occurrence triggers. The auto-advance goes through
// the same Transition primitive as direct callers, so the state machine
// stays the single source of legality and auditing.
type SignoffRecorder struct {
	signoffRepo repository.SignoffRepository
	flightRepo  repository.FlightRepository
	engine      *WorkflowEngine
	logger      logger.Logger
	metrics     *metrics.Metrics
}

// NewSignoffRecorder creates a new sign-off recorder
func NewSignoffRecorder(
	signoffRepo repository.SignoffRepository,
	flightRepo repository.FlightRepository,
	engine *WorkflowEngine,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *SignoffRecorder {
	return &SignoffRecorder{
		signoffRepo: signoffRepo,
		flightRepo:  flightRepo,
		engine:      engine,
		logger:      logger,
		metrics:     metrics,
	}
}

// RecordSignoff inserts a sign-off for the flight. Only mechanics (and
// admins) may sign. If this is the flight's first sign-off and the flight
// is still in a pre-inspection status, the flight advances to
// inspection_complete.
func (r *SignoffRecorder) RecordSignoff(ctx context.Context, actor entity.Actor, flightID string, signoff *entity.MechanicSignoff) error {
	if err := actor.Authorize(entity.PermCreateSignoff); err != nil {
		return err
	}

	flight, err := r.flightRepo.FindByID(ctx, flightID)
	if err != nil {
		return &entity.PersistenceError{Op: "read flight", Err: err}
	}
	if flight == nil {
		return &entity.NotFoundError{Entity: "flight", ID: flightID}
	}

	signoff.FlightID = flightID
	signoff.MechanicID = actor.UserID
	if signoff.SignedAt.IsZero() {
		signoff.SignedAt = time.Now()
	}
	if err := r.signoffRepo.Save(ctx, signoff); err != nil {
		return &entity.PersistenceError{Op: "write signoff", Err: err}
	}

	if r.metrics != nil {
		r.metrics.SignoffsRecorded.Inc()
	}
	r.logger.Info("Mechanic sign-off recorded", "flightId", flightID, "mechanicId", actor.UserID)

	count, err := r.signoffRepo.CountByFlight(ctx, flightID)
	if err != nil {
		return &entity.PersistenceError{Op: "count signoffs", Err: err}
	}
	if count == 1 {
		return r.handleFirstSignoff(ctx, actor, flightID, flight.Status)
	}
	return nil
}

// handleFirstSignoff is the SignoffRecorded event handler. The transition
// table has no draft → inspection_complete edge, so from draft the flight
// steps through inspection_pending first; each hop is audited. The implicit
// transition is system-initiated, so it runs with a privileged actor rather
// than the mechanic's own role.
func (r *SignoffRecorder) handleFirstSignoff(ctx context.Context, actor entity.Actor, flightID string, status entity.FlightStatus) error {
	autoActor := entity.Actor{UserID: actor.UserID, Role: entity.RoleAdmin}

	switch status {
	case entity.StatusDraft:
		if err := r.engine.Transition(ctx, autoActor, flightID, entity.StatusInspectionPending, &status); err != nil {
			return err
		}
		pending := entity.StatusInspectionPending
		return r.engine.Transition(ctx, autoActor, flightID, entity.StatusInspectionComplete, &pending)
	case entity.StatusInspectionPending:
		return r.engine.Transition(ctx, autoActor, flightID, entity.StatusInspectionComplete, &status)
	default:
		// Already past inspection; nothing to advance.
		return nil
	}
}
