package usecase

import (
	"context"
	"fmt"
	"time"

	"ferryflight-service/internal/domain/entity"
	"ferryflight-service/internal/domain/repository"
)

// TimelineEntry is one human-readable line of a flight's history.
type TimelineEntry struct {
	At          time.Time
	UserID      string
	Action      string
	Description string
}

// Timeline reconstructs a flight's history from its audit trail.
type Timeline struct {
	auditRepo repository.AuditLogRepository
}

// NewTimeline creates a new timeline builder
func NewTimeline(auditRepo repository.AuditLogRepository) *Timeline {
	return &Timeline{auditRepo: auditRepo}
}

// ForFlight renders the flight's audit entries in creation order. Status
// changes render as "label(from) → label(to)"; unknown statuses degrade to
// "unknown"; anything else renders its raw action label.
func (t *Timeline) ForFlight(ctx context.Context, flightID string) ([]TimelineEntry, error) {
	logs, err := t.auditRepo.FindByFlight(ctx, flightID)
	if err != nil {
		return nil, &entity.PersistenceError{Op: "read audit log", Err: err}
	}

	entries := make([]TimelineEntry, 0, len(logs))
	for _, log := range logs {
		entries = append(entries, TimelineEntry{
			At:          log.CreatedAt,
			UserID:      log.UserID,
			Action:      log.Action,
			Description: describe(log),
		})
	}
	return entries, nil
}

func describe(log *entity.AuditLog) string {
	if from, to, ok := log.StatusChange(); ok {
		return fmt.Sprintf("%s → %s", entity.StatusLabel(from), entity.StatusLabel(to))
	}
	return log.Action
}
