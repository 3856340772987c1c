package models

import "time"

const EVENT_TYPE_UNKNOWN = "unknown"

// WebhookEvent stores every inbound provider callback verbatim. The table
// is an append-only audit trail; rows are never updated or deleted.
type WebhookEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventType string    `gorm:"type:varchar(100);not null;index" json:"event_type"`
	Payload   string    `gorm:"type:longtext;not null" json:"payload"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
