package agencies

import "time"

// Agency is an implementing organization profile. Agency-role user accounts
// share ids with their agency record.
type Agency struct {
	ID            string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(200);not null" json:"name"`
	Type          string    `gorm:"type:varchar(100);not null" json:"type"`
	ContactPerson string    `gorm:"type:varchar(200)" json:"contact_person"`
	Email         string    `gorm:"type:varchar(200)" json:"email"`
	Phone         string    `gorm:"type:varchar(20)" json:"phone"`
	LicenseNo     string    `gorm:"type:varchar(100)" json:"license_no"`
	CreatedAt     time.Time `json:"created_at"`

	AssignedProjectsCount  int64 `gorm:"-" json:"assignedProjectsCount"`
	CompletedProjectsCount int64 `gorm:"-" json:"completedProjectsCount"`
}

// TableName overrides the default name
func (Agency) TableName() string {
	return "agencies"
}
