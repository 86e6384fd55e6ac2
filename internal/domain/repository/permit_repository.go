package repository

import (
	"context"

	"ferryflight-service/internal/domain/entity"
)

// PermitRepository defines the interface for FAA permit storage
type PermitRepository interface {
	Create(ctx context.Context, permit *entity.FAAPermit) error
	FindByID(ctx context.Context, id string) (*entity.FAAPermit, error)
	// FindLatestByFlight returns the most recently created permit for the
	// flight, or nil when none exists.
	FindLatestByFlight(ctx context.Context, flightID string) (*entity.FAAPermit, error)
	FindByPermitNumber(ctx context.Context, permitNumber string) (*entity.FAAPermit, error)
	Update(ctx context.Context, permit *entity.FAAPermit) error
}
