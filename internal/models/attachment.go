package models

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is a scanned letter stored in S3 for an inward entry.
type Attachment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InwardID      string    `gorm:"type:char(12);not null;index" json:"inward_id"`
	FileName      string    `gorm:"type:varchar(255);not null" json:"file_name"`
	FileExtension string    `gorm:"type:varchar(50)" json:"file_extension"`
	ContentType   string    `gorm:"type:varchar(255)" json:"content_type"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Attachment) TableName() string {
	return "attachments"
}
