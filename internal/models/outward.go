package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Outward represents an outgoing response or dispatch, optionally answering
// an inward entry via LinkedInwardID.
type Outward struct {
	ID        string `gorm:"type:char(12);primaryKey" json:"id"`
	OutwardNo string `gorm:"type:varchar(20);uniqueIndex;not null" json:"outward_no"`

	Subject         string    `gorm:"type:varchar(500);not null" json:"subject"`
	MeansOfDispatch string    `gorm:"type:varchar(100);not null" json:"means_of_dispatch"`
	ToWhom          string    `gorm:"type:varchar(250);not null" json:"to_whom"`
	SentBy          string    `gorm:"type:varchar(250);not null" json:"sent_by"`
	SentAt          time.Time `gorm:"not null" json:"sent_at"`

	FileReference string          `gorm:"type:varchar(250)" json:"file_reference"`
	PostalTariff  decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"postal_tariff"`
	CaseClosed    bool            `gorm:"not null;default:false" json:"case_closed"`

	// Nullable: an outward entry links at most one inward entry.
	LinkedInwardID *string `gorm:"type:char(12);index" json:"linked_inward_id"`
	Inward         *Inward `gorm:"foreignKey:LinkedInwardID;references:ID" json:"inward,omitempty"`

	CreatedByTeam   string `gorm:"type:varchar(50);not null" json:"created_by_team"`
	TeamMemberEmail string `gorm:"type:varchar(250);not null" json:"team_member_email"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Outward) TableName() string {
	return "outward"
}
