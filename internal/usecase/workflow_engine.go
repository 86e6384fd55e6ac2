package usecase

import (
	"context"
	"time"

	"ferryflight-service/internal/domain/entity"
	"ferryflight-service/internal/domain/repository"
	"ferryflight-service/pkg/logger"
	"ferryflight-service/pkg/metrics"
)

// WorkflowEngine orchestrates validated status transitions and field-level
// updates for ferry flights, writing one audit entry per effective change.
type WorkflowEngine struct {
	flightRepo repository.FlightRepository
	auditRepo  repository.AuditLogRepository
	notifier   repository.NotificationRepository
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewWorkflowEngine creates a new workflow engine. The notifier and metrics
// may be nil (tests, offline tooling).
func NewWorkflowEngine(
	flightRepo repository.FlightRepository,
	auditRepo repository.AuditLogRepository,
	notifier repository.NotificationRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *WorkflowEngine {
	return &WorkflowEngine{
		flightRepo: flightRepo,
		auditRepo:  auditRepo,
		notifier:   notifier,
		logger:     logger,
		metrics:    metrics,
	}
}

// ValidNextStatuses returns the statuses reachable from the given status.
func (e *WorkflowEngine) ValidNextStatuses(status entity.FlightStatus) []entity.FlightStatus {
	return entity.ValidNextStatuses(status)
}

// Transition moves a flight to the target status. When expectedCurrent is
// non-nil it acts as an optimistic-concurrency precondition: the transition
// is rejected with StatusConflictError if the stored status has moved on.
// A same-status request succeeds without side effects.
func (e *WorkflowEngine) Transition(ctx context.Context, actor entity.Actor, flightID string, target entity.FlightStatus, expectedCurrent *entity.FlightStatus) error {
	if err := actor.Authorize(entity.PermTransitionFlight); err != nil {
		return err
	}

	started := time.Now()

	flight, err := e.flightRepo.FindByID(ctx, flightID)
	if err != nil {
		return &entity.PersistenceError{Op: "read flight", Err: err}
	}
	if flight == nil {
		return &entity.NotFoundError{Entity: "flight", ID: flightID}
	}

	current := flight.Status
	if expectedCurrent != nil && *expectedCurrent != current {
		e.rejected("conflict")
		return &entity.StatusConflictError{Expected: *expectedCurrent, Actual: current}
	}

	if current == target {
		// Idempotent no-op: no status write, no audit entry.
		return nil
	}

	if !entity.IsValidTransition(current, target) {
		e.rejected("invalid_edge")
		return &entity.InvalidTransitionError{From: current, To: target}
	}

	if err := e.flightRepo.UpdateStatus(ctx, flightID, target); err != nil {
		e.rejected("persistence")
		return &entity.PersistenceError{Op: "write flight status", Err: err}
	}

	entry := &entity.AuditLog{
		FlightID:   flightID,
		UserID:     actor.UserID,
		Action:     entity.ActionStatusChanged,
		EntityType: "ferry_flight",
		EntityID:   flightID,
		Changes: map[string]entity.FieldChange{
			"status": {From: string(current), To: string(target)},
		},
	}
	if _, err := e.auditRepo.Append(ctx, entry); err != nil {
		return &entity.PersistenceError{Op: "append audit log", Err: err}
	}

	e.logger.Info("Flight status changed",
		"flightId", flightID,
		"from", current,
		"to", target,
		"userId", actor.UserID)

	if e.metrics != nil {
		e.metrics.Transitions.WithLabelValues(string(current), string(target)).Inc()
		e.metrics.TransitionDuration.Observe(time.Since(started).Seconds())
	}

	if e.notifier != nil {
		event := &repository.StatusChangeEvent{
			FlightID:   flightID,
			FromStatus: current,
			ToStatus:   target,
			ActorID:    actor.UserID,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := e.notifier.SendStatusChange(ctx, event); err != nil {
			// Notification failures never fail the transition.
			e.logger.Warn("Status change notification failed", "flightId", flightID, "error", err)
			if e.metrics != nil {
				e.metrics.Errors.WithLabelValues("notify").Inc()
			}
		} else if e.metrics != nil {
			e.metrics.NotificationsSent.Inc()
		}
	}

	return nil
}

// UpdateFlight applies a partial field set. Every changed field is recorded
// as a {from,to} diff in a single audit entry; the action label becomes
// status_changed when the status field is among the changes. An update that
// changes nothing, or one with no known acting user, writes no audit entry.
func (e *WorkflowEngine) UpdateFlight(ctx context.Context, actor entity.Actor, flightID string, update entity.FlightUpdate) error {
	if err := actor.Authorize(entity.PermEditFlight); err != nil {
		return err
	}

	flight, err := e.flightRepo.FindByID(ctx, flightID)
	if err != nil {
		return &entity.PersistenceError{Op: "read flight", Err: err}
	}
	if flight == nil {
		return &entity.NotFoundError{Entity: "flight", ID: flightID}
	}

	fields := make(map[string]interface{})
	changes := make(map[string]entity.FieldChange)

	applyString := func(name string, current string, next *string) {
		if next != nil && *next != current {
			fields[name] = *next
			changes[name] = entity.FieldChange{From: current, To: *next}
		}
	}
	applyTime := func(name string, current *time.Time, next *time.Time) {
		if next == nil {
			return
		}
		if current != nil && current.Equal(*next) {
			return
		}
		fields[name] = *next
		var from interface{}
		if current != nil {
			from = current.Format(time.RFC3339)
		}
		changes[name] = entity.FieldChange{From: from, To: next.Format(time.RFC3339)}
	}

	applyString("originAirport", flight.OriginAirport, update.OriginAirport)
	applyString("destAirport", flight.DestAirport, update.DestAirport)
	applyString("purpose", flight.Purpose, update.Purpose)
	applyString("pilotId", flight.PilotID, update.PilotID)
	applyString("mechanicId", flight.MechanicID, update.MechanicID)
	applyTime("plannedDeparture", flight.PlannedDeparture, update.PlannedDeparture)
	applyTime("actualDeparture", flight.ActualDeparture, update.ActualDeparture)
	applyTime("actualArrival", flight.ActualArrival, update.ActualArrival)

	action := entity.ActionFlightUpdated
	if update.Status != nil && *update.Status != flight.Status {
		// Status never bypasses the transition table, even through a
		// general field edit.
		if !entity.IsValidTransition(flight.Status, *update.Status) {
			return &entity.InvalidTransitionError{From: flight.Status, To: *update.Status}
		}
		fields["status"] = *update.Status
		changes["status"] = entity.FieldChange{From: string(flight.Status), To: string(*update.Status)}
		action = entity.ActionStatusChanged
	}

	if len(fields) == 0 {
		// Deliberate no-op: nothing changed, nothing logged.
		return nil
	}

	updated := *flight
	if v, ok := fields["actualDeparture"].(time.Time); ok {
		updated.ActualDeparture = &v
	}
	if v, ok := fields["actualArrival"].(time.Time); ok {
		updated.ActualArrival = &v
	}
	if err := updated.Validate(); err != nil {
		return err
	}

	if err := e.flightRepo.UpdateFields(ctx, flightID, fields); err != nil {
		return &entity.PersistenceError{Op: "write flight fields", Err: err}
	}

	if actor.UserID == "" {
		// No acting user known: the write stands but is not attributed.
		return nil
	}

	entry := &entity.AuditLog{
		FlightID:   flightID,
		UserID:     actor.UserID,
		Action:     action,
		EntityType: "ferry_flight",
		EntityID:   flightID,
		Changes:    changes,
	}
	if _, err := e.auditRepo.Append(ctx, entry); err != nil {
		return &entity.PersistenceError{Op: "append audit log", Err: err}
	}

	e.logger.Info("Flight updated", "flightId", flightID, "fields", len(fields), "action", action)
	return nil
}

func (e *WorkflowEngine) rejected(reason string) {
	if e.metrics != nil {
		e.metrics.TransitionsRejected.WithLabelValues(reason).Inc()
	}
}
