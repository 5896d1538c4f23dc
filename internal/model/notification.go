package model

import "github.com/google/uuid"

type NotificationSeverity string

const (
	SeverityInfo     NotificationSeverity = "INFO"
	SeverityWarning  NotificationSeverity = "WARNING"
	SeverityCritical NotificationSeverity = "CRITICAL"
)

// Notification is an in-app alert row created by the scheduled checks.
// Delivery (email/push) is out of scope; clients poll or listen on the
// websocket.
type Notification struct {
	BaseModel
	KitchenID     uuid.UUID            `gorm:"type:uuid;not null;index" json:"kitchen_id"`
	Type          string               `gorm:"type:varchar(50);not null" json:"type"`
	Title         string               `json:"title"`
	Message       string               `gorm:"not null" json:"message"`
	Severity      NotificationSeverity `gorm:"type:varchar(10);default:'INFO'" json:"severity"`
	RelatedItemID *uuid.UUID           `gorm:"type:uuid" json:"related_item_id,omitempty"`
	IsRead        bool                 `gorm:"default:false" json:"is_read"`
}
