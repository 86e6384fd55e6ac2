package usecase

import (
	"context"
	"fmt"
	"time"

	"ferryflight-service/internal/domain/entity"
	"ferryflight-service/internal/domain/repository"
	"ferryflight-service/pkg/logger"
)

// DiscrepancyService manages defect records. Discrepancies are visible to
// mechanics and owners but are not consulted by transition guards.
type DiscrepancyService struct {
	discrepancyRepo repository.DiscrepancyRepository
	flightRepo      repository.FlightRepository
	logger          logger.Logger
}

// NewDiscrepancyService creates a new discrepancy service
func NewDiscrepancyService(discrepancyRepo repository.DiscrepancyRepository, flightRepo repository.FlightRepository, logger logger.Logger) *DiscrepancyService {
	return &DiscrepancyService{
		discrepancyRepo: discrepancyRepo,
		flightRepo:      flightRepo,
		logger:          logger,
	}
}

// CreateDiscrepancy records a defect against a flight.
func (s *DiscrepancyService) CreateDiscrepancy(ctx context.Context, actor entity.Actor, flightID string, d *entity.Discrepancy) error {
	if err := actor.Authorize(entity.PermManageDiscrepancy); err != nil {
		return err
	}

	switch d.Severity {
	case entity.SeverityMinor, entity.SeverityMajor, entity.SeverityCritical:
	default:
		return fmt.Errorf("unknown discrepancy severity %q", d.Severity)
	}

	flight, err := s.flightRepo.FindByID(ctx, flightID)
	if err != nil {
		return &entity.PersistenceError{Op: "read flight", Err: err}
	}
	if flight == nil {
		return &entity.NotFoundError{Entity: "flight", ID: flightID}
	}

	d.FlightID = flightID
	d.CreatedBy = actor.UserID
	d.CreatedAt = time.Now()
	if err := s.discrepancyRepo.Save(ctx, d); err != nil {
		return &entity.PersistenceError{Op: "write discrepancy", Err: err}
	}

	s.logger.Info("Discrepancy recorded", "flightId", flightID, "severity", d.Severity, "affectsSafety", d.AffectsSafety)
	return nil
}

// ListDiscrepancies returns the flight's defect records.
func (s *DiscrepancyService) ListDiscrepancies(ctx context.Context, flightID string) ([]*entity.Discrepancy, error) {
	list, err := s.discrepancyRepo.FindByFlight(ctx, flightID)
	if err != nil {
		return nil, &entity.PersistenceError{Op: "list discrepancies", Err: err}
	}
	return list, nil
}

// DeleteDiscrepancy removes a defect record.
func (s *DiscrepancyService) DeleteDiscrepancy(ctx context.Context, actor entity.Actor, id string) error {
	if err := actor.Authorize(entity.PermManageDiscrepancy); err != nil {
		return err
	}
	if err := s.discrepancyRepo.Delete(ctx, id); err != nil {
		return &entity.PersistenceError{Op: "delete discrepancy", Err: err}
	}
	return nil
}
