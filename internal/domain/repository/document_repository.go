package repository

import (
	"context"

	"ferryflight-service/internal/domain/entity"
)

// DocumentRepository defines the interface for flight document records
type DocumentRepository interface {
	Save(ctx context.Context, doc *entity.Document) error
	FindByFlight(ctx context.Context, flightID string) ([]*entity.Document, error)
	Delete(ctx context.Context, id string) error
}
