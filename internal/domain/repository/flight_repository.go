package repository

import (
	"context"

	"ferryflight-service/internal/domain/entity"
)

// FlightRepository defines the interface for ferry flight storage
type FlightRepository interface {
	Create(ctx context.Context, flight *entity.FerryFlight) error
	FindByID(ctx context.Context, id string) (*entity.FerryFlight, error)
	FindByOrganization(ctx context.Context, orgID string) ([]*entity.FerryFlight, error)
	UpdateStatus(ctx context.Context, id string, status entity.FlightStatus) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
}
