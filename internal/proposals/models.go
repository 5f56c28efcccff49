package proposals

import "time"

// Proposal is a state-submitted project proposal moving through the
// Submitted → Assigned → review → Accepted lifecycle. Acceptance spawns a
// Project and ends the proposal's life; Rejected proposals stay on record.
type Proposal struct {
	ID              uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string     `gorm:"type:varchar(300);not null" json:"title"`
	Description     string     `gorm:"not null" json:"description"`
	ProjectType     string     `gorm:"type:varchar(100);not null" json:"project_type"`
	EstimatedBudget int64      `gorm:"not null" json:"estimated_budget"`
	Timeline        string     `gorm:"type:varchar(100);not null" json:"timeline"`
	State           string     `gorm:"type:varchar(100);not null;index" json:"state"`
	District        string     `gorm:"type:varchar(100);not null" json:"district"`
	Village         *string    `gorm:"type:varchar(100)" json:"village"`
	Status          string     `gorm:"type:varchar(50);default:'Submitted'" json:"status"`
	SubmittedBy     string     `gorm:"type:varchar(50);not null" json:"submitted_by"`
	AssignedAgency  *string    `gorm:"type:varchar(50);index" json:"assigned_agency"`
	AssignedDate    *time.Time `json:"assigned_date"`
	ReviewedBy      *string    `gorm:"type:varchar(50)" json:"reviewed_by"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	CreatedAt       time.Time  `json:"created_at"`

	SubmittedByName    string `gorm:"-" json:"submitted_by_name,omitempty"`
	SubmitterState     string `gorm:"-" json:"submitter_state,omitempty"`
	AssignedAgencyName string `gorm:"-" json:"assigned_agency_name,omitempty"`
	ReviewedByName     string `gorm:"-" json:"reviewed_by_name,omitempty"`
}

// TableName overrides the default name
func (Proposal) TableName() string {
	return "proposals"
}
