package repository

import (
	"context"

	"ferryflight-service/internal/domain/entity"
)

// CorrespondenceRepository defines the interface for inbound FAA email
type CorrespondenceRepository interface {
	Save(ctx context.Context, msg *entity.FAACorrespondence) error
	FindByMessageIDs(ctx context.Context, messageIDs []string) (map[string]*entity.FAACorrespondence, error)
	FindUnprocessed(ctx context.Context, limit int) ([]*entity.FAACorrespondence, error)
	// GetLastReceived returns the newest stored message, or nil when empty.
	GetLastReceived(ctx context.Context) (*entity.FAACorrespondence, error)
	MarkProcessed(ctx context.Context, id, status, permitID, errorDetail string) error
}
