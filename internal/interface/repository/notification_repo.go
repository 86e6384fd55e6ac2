package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ferryflight-service/internal/domain/repository"
	"ferryflight-service/pkg/logger"
)

// WebhookNotificationRepository delivers status-change events to the ops
// webhook endpoint.
type WebhookNotificationRepository struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	client      *http.Client
}

// NewWebhookNotificationRepository creates a new webhook notifier
func NewWebhookNotificationRepository(baseURL, bearerToken string, logger logger.Logger) repository.NotificationRepository {
	return &WebhookNotificationRepository{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// SendStatusChange posts one status-change event
func (r *WebhookNotificationRepository) SendStatusChange(ctx context.Context, event *repository.StatusChangeEvent) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/ferry-flights/status-events", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusAccepted {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("ops webhook returned status %d: %v", resp.StatusCode, errorBody)
	}

	r.logger.Info("Status change event delivered",
		"flightId", event.FlightID,
		"from", event.FromStatus,
		"to", event.ToStatus)

	return nil
}
