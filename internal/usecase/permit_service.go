package usecase

import (
	"context"
	"fmt"
	"time"

	"ferryflight-service/internal/domain/entity"
	"ferryflight-service/internal/domain/repository"
	"ferryflight-service/pkg/logger"
)

// PermitService manages FAA special flight permits. Permit status moves
// independently of the flight's own status; flight-level guards read the
// latest permit's status.
type PermitService struct {
	permitRepo repository.PermitRepository
	flightRepo repository.FlightRepository
	auditRepo  repository.AuditLogRepository
	logger     logger.Logger
}

// NewPermitService creates a new permit service
func NewPermitService(
	permitRepo repository.PermitRepository,
	flightRepo repository.FlightRepository,
	auditRepo repository.AuditLogRepository,
	logger logger.Logger,
) *PermitService {
	return &PermitService{
		permitRepo: permitRepo,
		flightRepo: flightRepo,
		auditRepo:  auditRepo,
		logger:     logger,
	}
}

// CreatePermit opens a draft permit for the flight. Permit creation is only
// offered once inspection is complete.
func (s *PermitService) CreatePermit(ctx context.Context, actor entity.Actor, flightID string) (*entity.FAAPermit, error) {
	if err := actor.Authorize(entity.PermCreatePermit); err != nil {
		return nil, err
	}

	flight, err := s.flightRepo.FindByID(ctx, flightID)
	if err != nil {
		return nil, &entity.PersistenceError{Op: "read flight", Err: err}
	}
	if flight == nil {
		return nil, &entity.NotFoundError{Entity: "flight", ID: flightID}
	}

	if guard := CanCreatePermit(flight.Status); !guard.Allowed {
		return nil, fmt.Errorf("permit creation blocked: %s", guard.Reason)
	}

	permit := &entity.FAAPermit{
		FlightID:  flightID,
		Status:    entity.PermitDraft,
		CreatedBy: actor.UserID,
	}
	if err := s.permitRepo.Create(ctx, permit); err != nil {
		return nil, &entity.PersistenceError{Op: "write permit", Err: err}
	}

	s.audit(ctx, actor, flightID, permit.ID, entity.ActionPermitCreated, nil)
	s.logger.Info("Permit created", "flightId", flightID, "permitId", permit.ID)
	return permit, nil
}

// SubmitPermit marks the permit submitted to the given FSDO/MIDO office.
func (s *PermitService) SubmitPermit(ctx context.Context, actor entity.Actor, permitID, channel, office string) error {
	if err := actor.Authorize(entity.PermCreatePermit); err != nil {
		return err
	}

	permit, err := s.getPermit(ctx, permitID)
	if err != nil {
		return err
	}
	if !entity.IsValidPermitTransition(permit.Status, entity.PermitSubmitted) {
		return fmt.Errorf("permit %s cannot be submitted from status %q", permitID, permit.Status)
	}

	now := time.Now()
	from := permit.Status
	permit.Status = entity.PermitSubmitted
	permit.SubmissionChannel = channel
	permit.FSDOOffice = office
	permit.SubmittedAt = &now
	if err := s.permitRepo.Update(ctx, permit); err != nil {
		return &entity.PersistenceError{Op: "write permit", Err: err}
	}

	s.audit(ctx, actor, permit.FlightID, permit.ID, entity.ActionPermitUpdated, map[string]entity.FieldChange{
		"status": {From: string(from), To: string(entity.PermitSubmitted)},
	})
	s.logger.Info("Permit submitted", "permitId", permitID, "office", office, "channel", channel)
	return nil
}

// RecordDecision records the FAA's approval or denial of a submitted permit.
// On approval the permit number, expiry and operating limitations are set.
func (s *PermitService) RecordDecision(ctx context.Context, actor entity.Actor, permitID string, approved bool, permitNumber string, expiresAt *time.Time, limitations string) error {
	if err := actor.Authorize(entity.PermCreatePermit); err != nil {
		return err
	}

	permit, err := s.getPermit(ctx, permitID)
	if err != nil {
		return err
	}

	target := entity.PermitDenied
	if approved {
		target = entity.PermitApproved
	}
	if !entity.IsValidPermitTransition(permit.Status, target) {
		return fmt.Errorf("permit %s cannot move from %q to %q", permitID, permit.Status, target)
	}

	from := permit.Status
	permit.Status = target
	if approved {
		permit.PermitNumber = permitNumber
		permit.ExpiresAt = expiresAt
		permit.OperatingLimitations = limitations
	}
	if err := s.permitRepo.Update(ctx, permit); err != nil {
		return &entity.PersistenceError{Op: "write permit", Err: err}
	}

	s.audit(ctx, actor, permit.FlightID, permit.ID, entity.ActionPermitUpdated, map[string]entity.FieldChange{
		"status": {From: string(from), To: string(target)},
	})
	s.logger.Info("Permit decision recorded", "permitId", permitID, "status", target)
	return nil
}

// RecordFAAExchange appends question/response free text from FAA
// correspondence onto the permit.
func (s *PermitService) RecordFAAExchange(ctx context.Context, permitID, questions, response string) error {
	permit, err := s.getPermit(ctx, permitID)
	if err != nil {
		return err
	}
	if questions != "" {
		permit.FAAQuestions = questions
	}
	if response != "" {
		permit.FAAResponse = response
	}
	if err := s.permitRepo.Update(ctx, permit); err != nil {
		return &entity.PersistenceError{Op: "write permit", Err: err}
	}
	return nil
}

// LatestPermit returns the most recent permit for a flight, or nil.
func (s *PermitService) LatestPermit(ctx context.Context, flightID string) (*entity.FAAPermit, error) {
	permit, err := s.permitRepo.FindLatestByFlight(ctx, flightID)
	if err != nil {
		return nil, &entity.PersistenceError{Op: "read permit", Err: err}
	}
	return permit, nil
}

func (s *PermitService) getPermit(ctx context.Context, permitID string) (*entity.FAAPermit, error) {
	permit, err := s.permitRepo.FindByID(ctx, permitID)
	if err != nil {
		return nil, &entity.PersistenceError{Op: "read permit", Err: err}
	}
	if permit == nil {
		return nil, &entity.NotFoundError{Entity: "permit", ID: permitID}
	}
	return permit, nil
}

func (s *PermitService) audit(ctx context.Context, actor entity.Actor, flightID, permitID, action string, changes map[string]entity.FieldChange) {
	entry := &entity.AuditLog{
		FlightID:   flightID,
		UserID:     actor.UserID,
		Action:     action,
		EntityType: "faa_permit",
		EntityID:   permitID,
		Changes:    changes,
	}
	if _, err := s.auditRepo.Append(ctx, entry); err != nil {
		s.logger.Error("Failed to append permit audit entry", "permitId", permitID, "error", err)
	}
}
