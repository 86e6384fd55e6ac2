package repository

import (
	"context"

	"ferryflight-service/internal/domain/entity"
)

// SignoffRepository defines the interface for mechanic sign-offs.
// Sign-offs are append-only; there is no update or delete.
type SignoffRepository interface {
	Save(ctx context.Context, signoff *entity.MechanicSignoff) error
	// FindByFlight returns sign-offs for a flight ordered newest first.
	FindByFlight(ctx context.Context, flightID string) ([]*entity.MechanicSignoff, error)
	CountByFlight(ctx context.Context, flightID string) (int64, error)
}
