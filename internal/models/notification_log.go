package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

// NotificationLog records every assignment email the dispatcher attempted,
// whether it was delivered or not. Delivery failures never reach the request
// that triggered them; this table is where they become observable.
type NotificationLog struct {
	ID             int            `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipientEmail string         `gorm:"type:varchar(250);not null" json:"recipient_email"`
	Subject        string         `gorm:"type:varchar(500)" json:"subject"`
	InwardNo       string         `gorm:"type:varchar(20);index" json:"inward_no"`
	Status         string         `gorm:"type:varchar(20);not null" json:"status"`
	Error          string         `gorm:"type:text" json:"error,omitempty"`
	Payload        datatypes.JSON `json:"payload"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}
