package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"astrafin-backoffice/internal/core/domain"
)

// NotificationService posts workflow events to a back-office webhook
// (chat channel, ticketing bridge). Disabled when no URL is configured.
type NotificationService struct {
	webhookURL string
	enabled    bool
	client     *http.Client
}

// NewNotificationService creates a new notification service
func NewNotificationService() *NotificationService {
	url := os.Getenv("NOTIFY_WEBHOOK_URL")
	return &NotificationService{
		webhookURL: url,
		enabled:    url != "",
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// IsEnabled checks if notification is enabled
func (s *NotificationService) IsEnabled() bool {
	return s.enabled
}

// send posts a message to the webhook
func (s *NotificationService) send(message string) error {
	if !s.enabled {
		return nil
	}

	payload, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		return err
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return nil
}

// NotifySubmitted sends notification when an entity enters the validation pipeline
func (s *NotificationService) NotifySubmitted(resource domain.Resource, entityID uint, status domain.ValidationStatus) {
	s.send(fmt.Sprintf("📥 %s #%d submitted, now %s", resource, entityID, status))
}

// NotifyValidated sends notification when a validation tier passes
func (s *NotificationService) NotifyValidated(resource domain.Resource, entityID uint, status domain.ValidationStatus) {
	s.send(fmt.Sprintf("✅ %s #%d validated, now %s", resource, entityID, status))
}

// NotifyRejected sends notification when an entity is rejected
func (s *NotificationService) NotifyRejected(resource domain.Resource, entityID uint, reason string) {
	s.send(fmt.Sprintf("❌ %s #%d rejected: %s", resource, entityID, reason))
}

// NotifyPendingDigest sends the daily digest of entities awaiting validation
func (s *NotificationService) NotifyPendingDigest(counts map[domain.Resource]int64) {
	total := int64(0)
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return
	}

	message := fmt.Sprintf("⏳ %d record(s) awaiting validation:\n", total)
	for _, resource := range domain.Resources {
		if counts[resource] > 0 {
			message += fmt.Sprintf("- %s: %d\n", resource, counts[resource])
		}
	}
	s.send(message)
}
