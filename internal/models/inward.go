package models

import (
	"time"
)

// Status is the assignment lifecycle of an inward entry. The wire values are
// the exact strings the clients have always sent.
type Status string

const (
	StatusUnassigned Status = "Unassigned"
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Valid reports whether s is one of the four defined statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusUnassigned, StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Inward represents an incoming piece of correspondence.
type Inward struct {
	ID       string `gorm:"type:char(12);primaryKey" json:"id"`
	InwardNo string `gorm:"type:varchar(20);uniqueIndex;not null" json:"inward_no"`

	Subject        string    `gorm:"type:varchar(500);not null" json:"subject"`
	MeansOfReceipt string    `gorm:"type:varchar(100);not null" json:"means_of_receipt"`
	FromWhom       string    `gorm:"type:varchar(250);not null" json:"from_whom"`
	ReceivedAt     time.Time `gorm:"not null" json:"received_at"`
	FileReference  string    `gorm:"type:varchar(250)" json:"file_reference"`

	AssignedTeam           string     `gorm:"type:varchar(50)" json:"assigned_team"`
	AssignedToEmail        string     `gorm:"type:varchar(250)" json:"assigned_to_email"`
	AssignmentInstructions string     `gorm:"type:text" json:"assignment_instructions"`
	AssignmentStatus       Status     `gorm:"type:varchar(20);not null;default:'Unassigned'" json:"assignment_status"`
	AssignmentDate         *time.Time `json:"assignment_date"`
	CompletionDate         *time.Time `json:"completion_date"`
	DueDate                *time.Time `json:"due_date"`

	Attachments []*Attachment `gorm:"foreignKey:InwardID;references:ID" json:"attachments,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Inward) TableName() string {
	return "inward"
}
