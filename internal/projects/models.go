package projects

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project is a sanctioned scheme project. Rows are written by three actors:
// state admins create them, the assigned agency reports progress, and the
// ministry approves funds. The Version column is the optimistic-concurrency
// guard between the latter two.
type Project struct {
	ID                     string     `gorm:"type:varchar(50);primaryKey" json:"id"`
	Name                   string     `gorm:"type:varchar(300);not null" json:"name"`
	Description            string     `json:"description"`
	Type                   string     `gorm:"type:varchar(100);not null" json:"type"`
	State                  string     `gorm:"type:varchar(100);not null;index" json:"state"`
	District               string     `gorm:"type:varchar(100);not null" json:"district"`
	Village                string     `gorm:"type:varchar(100);not null;index" json:"village"`
	BudgetAllocated        int64      `gorm:"not null" json:"budget_allocated"`
	BudgetUtilized         int64      `gorm:"default:0" json:"budget_utilized"`
	ProgressPercentage     int        `gorm:"default:0" json:"progress_percentage"`
	Status                 string     `gorm:"type:varchar(50);default:'Planning'" json:"status"`
	StartDate              *string    `gorm:"type:date" json:"start_date"`
	ExpectedCompletion     *string    `gorm:"type:date" json:"expected_completion"`
	ActualCompletion       *string    `gorm:"type:date" json:"actual_completion"`
	ImplementingAgency     *string    `gorm:"type:varchar(50);index" json:"implementing_agency"`
	ApprovedBy             *string    `gorm:"type:varchar(50)" json:"approved_by"`
	ApprovalStatus         string     `gorm:"type:varchar(50);default:'Pending'" json:"approval_status"`
	ApprovalDate           *time.Time `json:"approval_date"`
	ApprovedAmount         *int64     `json:"approved_amount"`
	SubmittedBy            *string    `gorm:"type:varchar(50)" json:"submitted_by"`
	Objectives             string     `json:"objectives"`
	ExpectedBeneficiaries  int        `json:"expected_beneficiaries"`
	ImplementationStrategy string     `json:"implementation_strategy"`
	MonitoringPlan         string     `json:"monitoring_plan"`
	RiskAssessment         string     `json:"risk_assessment"`
	SustainabilityPlan     string     `json:"sustainability_plan"`
	Version                int        `gorm:"default:0" json:"-"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`

	AgencyName string      `gorm:"-" json:"agency_name,omitempty"`
	Milestones []Milestone `gorm:"foreignKey:ProjectID" json:"milestones"`
}

// TableName overrides the default name
func (Project) TableName() string {
	return "projects"
}

// Milestone is one phase of a project's delivery plan
type Milestone struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID   string    `gorm:"type:varchar(50);not null;index" json:"project_id"`
	Phase       string    `gorm:"type:varchar(100);not null" json:"phase"`
	Description string    `json:"description"`
	Status      string    `gorm:"type:varchar(50);default:'Pending'" json:"status"`
	PlannedDate *string   `gorm:"type:date" json:"planned_date"`
	ActualDate  *string   `gorm:"type:date" json:"actual_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName overrides the default name
func (Milestone) TableName() string {
	return "milestones"
}

// Milestone statuses
const (
	MilestonePending    = "Pending"
	MilestoneInProgress = "In Progress"
	MilestoneCompleted  = "Completed"
)

// ProgressHistory is the append-only audit trail of progress updates. Rows
// are never mutated or deleted.
type ProgressHistory struct {
	ID                 uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID          string         `gorm:"type:varchar(50);not null;index" json:"project_id"`
	ProgressPercentage int            `gorm:"not null" json:"progress_percentage"`
	Status             string         `gorm:"type:varchar(50);not null" json:"status"`
	Milestone          string         `gorm:"type:varchar(200)" json:"milestone"`
	Notes              string         `json:"notes"`
	Issues             string         `json:"issues"`
	NextSteps          string         `json:"next_steps"`
	FilesCount         int            `gorm:"default:0" json:"files_count"`
	Attachments        datatypes.JSON `json:"attachments,omitempty"`
	UpdateDate         time.Time      `gorm:"autoCreateTime" json:"update_date"`
	UpdatedBy          string         `gorm:"type:varchar(50);not null" json:"updated_by"`

	ProjectName string `gorm:"-" json:"project_name,omitempty"`
}

// TableName overrides the default name
func (ProgressHistory) TableName() string {
	return "progress_history"
}

// NewProjectID generates a project id in the portal's PROJ_ namespace
func NewProjectID() string {
	return fmt.Sprintf("PROJ_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
