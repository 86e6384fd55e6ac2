package repository

import (
	"context"
	"encoding/json"
	"time"

	"ferryflight-service/internal/domain/entity"
	"ferryflight-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAuditLogRepository implements the AuditLogRepository interface.
// The table is append-only: this type exposes no update or delete.
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GORM audit log repository
func NewGormAuditLogRepository(db *gorm.DB) repository.AuditLogRepository {
	return &GormAuditLogRepository{
		db: db,
	}
}

// AuditLogs GORM model for database mapping
type AuditLogs struct {
	ID         string    `gorm:"column:id;primaryKey"`
	FlightID   string    `gorm:"column:flight_id;index"`
	UserID     string    `gorm:"column:user_id;index"`
	Action     string    `gorm:"column:action;index"`
	EntityType string    `gorm:"column:entity_type"`
	EntityID   string    `gorm:"column:entity_id"`
	Changes    string    `gorm:"column:changes;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

// TableName overrides the default table name
func (AuditLogs) TableName() string {
	return "audit_logs"
}

// Append inserts one entry and returns its id
func (r *GormAuditLogRepository) Append(ctx context.Context, entry *entity.AuditLog) (string, error) {
	changes := ""
	if entry.Changes != nil {
		data, err := json.Marshal(entry.Changes)
		if err != nil {
			return "", err
		}
		changes = string(data)
	}

	model := AuditLogs{
		ID:         uuid.NewString(),
		FlightID:   entry.FlightID,
		UserID:     entry.UserID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Changes:    changes,
		CreatedAt:  time.Now(),
	}

	result := r.db.WithContext(ctx).Create(&model)
	if result.Error != nil {
		return "", result.Error
	}

	entry.ID = model.ID
	entry.CreatedAt = model.CreatedAt
	return model.ID, nil
}

// FindByFlight returns a flight's entries ordered by creation time
func (r *GormAuditLogRepository) FindByFlight(ctx context.Context, flightID string) ([]*entity.AuditLog, error) {
	return r.find(ctx, "flight_id = ?", flightID)
}

// FindByUser returns a user's entries ordered by creation time
func (r *GormAuditLogRepository) FindByUser(ctx context.Context, userID string) ([]*entity.AuditLog, error) {
	return r.find(ctx, "user_id = ?", userID)
}

// FindByAction returns entries with the given action label
func (r *GormAuditLogRepository) FindByAction(ctx context.Context, action string) ([]*entity.AuditLog, error) {
	return r.find(ctx, "action = ?", action)
}

func (r *GormAuditLogRepository) find(ctx context.Context, query string, arg string) ([]*entity.AuditLog, error) {
	var models []AuditLogs
	result := r.db.WithContext(ctx).Where(query, arg).Order("created_at ASC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	var entries []*entity.AuditLog
	for _, model := range models {
		entries = append(entries, &entity.AuditLog{
			ID:         model.ID,
			FlightID:   model.FlightID,
			UserID:     model.UserID,
			Action:     model.Action,
			EntityType: model.EntityType,
			EntityID:   model.EntityID,
			Changes:    decodeChanges(model.Changes),
			CreatedAt:  model.CreatedAt,
		})
	}
	return entries, nil
}

// decodeChanges tolerates both payload shapes: a map keyed by field name,
// or a legacy flat {from,to} pair, which is wrapped under "status".
func decodeChanges(raw string) map[string]entity.FieldChange {
	if raw == "" {
		return nil
	}

	var nested map[string]entity.FieldChange
	if err := json.Unmarshal([]byte(raw), &nested); err == nil {
		if _, flat := nested["from"]; !flat {
			return nested
		}
	}

	var flat entity.FieldChange
	if err := json.Unmarshal([]byte(raw), &flat); err == nil {
		return map[string]entity.FieldChange{"status": flat}
	}
	return nil
}
