package repository

import (
	"gorm.io/gorm"

	"github.com/dltpay/paygate/app/models"
)

// webhookEventRepository implements the WebhookEventRepository interface
type webhookEventRepository struct {
	db *gorm.DB
}

// NewWebhookEventRepository creates a new webhook event repository instance
func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &webhookEventRepository{db: db}
}

// Create appends a raw event to the audit log
func (r *webhookEventRepository) Create(event *models.WebhookEvent) error {
	if event.EventType == "" {
		event.EventType = models.EVENT_TYPE_UNKNOWN
	}
	return r.db.Create(event).Error
}

// List retrieves a paginated list of raw events, newest first
func (r *webhookEventRepository) List(offset, limit int) ([]models.WebhookEvent, error) {
	var events []models.WebhookEvent
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&events).Error
	return events, err
}

// Count returns the total number of logged events
func (r *webhookEventRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.WebhookEvent{}).Count(&count).Error
	return count, err
}
