package repository

import (
	"context"

	"ferryflight-service/internal/domain/entity"
)

// AuditLogRepository defines the interface for the append-only audit trail.
// Entries are immutable once written; the interface deliberately has no
// update or delete.
type AuditLogRepository interface {
	// Append writes one entry and returns its id.
	Append(ctx context.Context, entry *entity.AuditLog) (string, error)
	// FindByFlight returns entries for a flight ordered by creation time.
	FindByFlight(ctx context.Context, flightID string) ([]*entity.AuditLog, error)
	FindByUser(ctx context.Context, userID string) ([]*entity.AuditLog, error)
	FindByAction(ctx context.Context, action string) ([]*entity.AuditLog, error)
}
