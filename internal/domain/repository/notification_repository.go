package repository

import (
	"context"

	"ferryflight-service/internal/domain/entity"
)

// StatusChangeEvent is the payload sent to the ops webhook after a
// successful transition.
type StatusChangeEvent struct {
	FlightID   string              `json:"flightId"`
	FromStatus entity.FlightStatus `json:"fromStatus"`
	ToStatus   entity.FlightStatus `json:"toStatus"`
	ActorID    string              `json:"actorId,omitempty"`
	OccurredAt string              `json:"occurredAt"`
}

// NotificationRepository delivers status-change events to interested
// parties. Delivery failures never fail the transition.
type NotificationRepository interface {
	SendStatusChange(ctx context.Context, event *StatusChangeEvent) error
}
