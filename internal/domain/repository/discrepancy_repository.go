package repository

import (
	"context"

	"ferryflight-service/internal/domain/entity"
)

// DiscrepancyRepository defines the interface for defect records
type DiscrepancyRepository interface {
	Save(ctx context.Context, discrepancy *entity.Discrepancy) error
	FindByFlight(ctx context.Context, flightID string) ([]*entity.Discrepancy, error)
	Delete(ctx context.Context, id string) error
}
