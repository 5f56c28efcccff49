package village

import "time"

// NeedsAssessment is an append-only record of a village's stated need.
// There is no downstream transition logic; needs are read-only once filed.
type NeedsAssessment struct {
	ID                    uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Village               string    `gorm:"type:varchar(100);not null;index" json:"village"`
	State                 string    `gorm:"type:varchar(100);not null;index" json:"state"`
	District              string    `gorm:"type:varchar(100);not null" json:"district"`
	NeedsType             string    `gorm:"type:varchar(100);not null" json:"needs_type"`
	Description           string    `gorm:"not null" json:"description"`
	Priority              string    `gorm:"type:varchar(20);not null" json:"priority"`
	ExpectedBeneficiaries int       `json:"expected_beneficiaries"`
	EstimatedCost         int64     `json:"estimated_cost"`
	Justification         string    `json:"justification"`
	SubmittedBy           string    `gorm:"type:varchar(50);not null" json:"submitted_by"`
	Status                string    `gorm:"type:varchar(50);default:'Submitted'" json:"status"`
	CreatedAt             time.Time `json:"created_at"`

	SubmittedByName string `gorm:"-" json:"submitted_by_name,omitempty"`
}

// TableName overrides the default name
func (NeedsAssessment) TableName() string {
	return "needs_assessment"
}

// Feedback is an append-only project feedback record from a village committee
type Feedback struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID    string    `gorm:"type:varchar(50);not null;index" json:"project_id"`
	FeedbackType string    `gorm:"type:varchar(50);not null" json:"feedback_type"`
	Content      string    `gorm:"not null" json:"content"`
	Rating       *int      `json:"rating"`
	Village      string    `gorm:"type:varchar(100);not null" json:"village"`
	State        string    `gorm:"type:varchar(100);not null;index" json:"state"`
	SubmittedBy  string    `gorm:"type:varchar(50);not null" json:"submitted_by"`
	CreatedAt    time.Time `json:"created_at"`

	ProjectName     string `gorm:"-" json:"project_name,omitempty"`
	SubmittedByName string `gorm:"-" json:"submitted_by_name,omitempty"`
}

// TableName overrides the default name
func (Feedback) TableName() string {
	return "feedback"
}
