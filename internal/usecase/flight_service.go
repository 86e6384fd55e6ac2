package usecase

import (
	"context"
	"time"

	"ferryflight-service/internal/domain/entity"
	"ferryflight-service/internal/domain/repository"
	"ferryflight-service/pkg/logger"
)

// FlightService handles ferry flight creation and reads.
type FlightService struct {
	flightRepo repository.FlightRepository
	auditRepo  repository.AuditLogRepository
	logger     logger.Logger
}

// NewFlightService creates a new flight service
func NewFlightService(flightRepo repository.FlightRepository, auditRepo repository.AuditLogRepository, logger logger.Logger) *FlightService {
	return &FlightService{
		flightRepo: flightRepo,
		auditRepo:  auditRepo,
		logger:     logger,
	}
}

// CreateFlight opens a new ferry flight in draft for the actor's
// organization.
func (s *FlightService) CreateFlight(ctx context.Context, actor entity.Actor, flight *entity.FerryFlight) error {
	if err := actor.Authorize(entity.PermCreateFlight); err != nil {
		return err
	}

	flight.Status = entity.StatusDraft
	flight.CreatedBy = actor.UserID
	flight.CreatedAt = time.Now()
	flight.UpdatedAt = flight.CreatedAt
	if err := flight.Validate(); err != nil {
		return err
	}

	if err := s.flightRepo.Create(ctx, flight); err != nil {
		return &entity.PersistenceError{Op: "write flight", Err: err}
	}

	entry := &entity.AuditLog{
		FlightID:   flight.ID,
		UserID:     actor.UserID,
		Action:     entity.ActionFlightCreated,
		EntityType: "ferry_flight",
		EntityID:   flight.ID,
	}
	if _, err := s.auditRepo.Append(ctx, entry); err != nil {
		s.logger.Error("Failed to append creation audit entry", "flightId", flight.ID, "error", err)
	}

	s.logger.Info("Ferry flight created", "flightId", flight.ID, "origin", flight.OriginAirport, "dest", flight.DestAirport)
	return nil
}

// GetFlight returns a flight by id.
func (s *FlightService) GetFlight(ctx context.Context, id string) (*entity.FerryFlight, error) {
	flight, err := s.flightRepo.FindByID(ctx, id)
	if err != nil {
		return nil, &entity.PersistenceError{Op: "read flight", Err: err}
	}
	if flight == nil {
		return nil, &entity.NotFoundError{Entity: "flight", ID: id}
	}
	return flight, nil
}

// ListFlights returns the organization's flights.
func (s *FlightService) ListFlights(ctx context.Context, orgID string) ([]*entity.FerryFlight, error) {
	flights, err := s.flightRepo.FindByOrganization(ctx, orgID)
	if err != nil {
		return nil, &entity.PersistenceError{Op: "list flights", Err: err}
	}
	return flights, nil
}
